package database

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"result-portal/app/models"
	"result-portal/app/services"
)

var ErrDuplicateUsername = errors.New("admin with this username already exists")

// AdminStore persists admin credentials in PostgreSQL.
type AdminStore struct {
	DB *sql.DB
}

func NewAdminStore(db *sql.DB) *AdminStore {
	return &AdminStore{DB: db}
}

func (s *AdminStore) GetByUsername(username string) (*models.Admin, error) {
	admin := &models.Admin{}
	query := `SELECT id, username, password, created_at, updated_at
			  FROM admins WHERE username = $1`

	err := s.DB.QueryRow(query, username).Scan(
		&admin.ID, &admin.Username, &admin.Password,
		&admin.CreatedAt, &admin.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return admin, nil
}

func (s *AdminStore) Create(username, hashedPassword string) (*models.Admin, error) {
	admin := &models.Admin{
		ID:       uuid.NewString(),
		Username: username,
		Password: hashedPassword,
	}

	query := `INSERT INTO admins (id, username, password, created_at, updated_at)
			  VALUES ($1, $2, $3, NOW(), NOW())
			  RETURNING created_at, updated_at`

	err := s.DB.QueryRow(query, admin.ID, admin.Username, admin.Password).
		Scan(&admin.CreatedAt, &admin.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return admin, nil
}

func (s *AdminStore) UpdatePassword(id string, hashedPassword string) error {
	query := `UPDATE admins SET password = $1, updated_at = NOW() WHERE id = $2`
	_, err := s.DB.Exec(query, hashedPassword, id)
	return err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
