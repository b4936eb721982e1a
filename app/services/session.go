package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"result-portal/app/models"
)

// AdminStore is the credential storage the session issuer reads and writes.
type AdminStore interface {
	GetByUsername(username string) (*models.Admin, error)
	UpdatePassword(id string, hashedPassword string) error
}

type SessionClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// SessionIssuer verifies admin credentials and mints signed session tokens.
// It holds no per-session state; a token is valid until its own expiry.
type SessionIssuer struct {
	Admins AdminStore
	Secret []byte
	Expiry time.Duration
}

func NewSessionIssuer(admins AdminStore, secret []byte, expiry time.Duration) *SessionIssuer {
	return &SessionIssuer{Admins: admins, Secret: secret, Expiry: expiry}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// IssueSession returns a signed token for the admin, or ErrInvalidCredentials.
// Unknown usernames and wrong passwords are deliberately indistinguishable.
func (s *SessionIssuer) IssueSession(username, password string) (string, error) {
	admin, err := s.Admins.GetByUsername(username)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, admin.Password) {
		return "", ErrInvalidCredentials
	}

	claims := SessionClaims{
		Username: admin.Username,
		Role:     "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.Expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "result-portal",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.Secret)
}

// ChangeSecret re-verifies the current password before storing a new hash.
// Tokens issued before the change remain valid until they expire.
func (s *SessionIssuer) ChangeSecret(username, currentPassword, newPassword string) error {
	if newPassword == "" {
		return ErrInvalidInput
	}

	admin, err := s.Admins.GetByUsername(username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !CheckPasswordHash(currentPassword, admin.Password) {
		return ErrInvalidCredentials
	}

	hashed, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.Admins.UpdatePassword(admin.ID, hashed)
}

// ValidateToken checks signature and expiry and returns the embedded claims.
func ValidateToken(tokenString string, secret []byte) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
