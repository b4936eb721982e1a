package services

import (
	"context"
	"fmt"
	"time"

	"result-portal/app/models"
)

// memResultStore is an in-memory ResultStore for service tests.
type memResultStore struct {
	results   map[string]*models.StudentResult
	insertErr error
	queries   int
}

func newMemResultStore() *memResultStore {
	return &memResultStore{results: make(map[string]*models.StudentResult)}
}

func (s *memResultStore) Insert(r *models.StudentResult) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	for _, existing := range s.results {
		if existing.RollNumber == r.RollNumber {
			return ErrDuplicateRollNumber
		}
	}
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	clone := *r
	s.results[r.ID] = &clone
	return nil
}

func (s *memResultStore) GetByID(id string) (*models.StudentResult, error) {
	s.queries++
	r, ok := s.results[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *r
	return &clone, nil
}

func (s *memResultStore) GetByRollAndName(rollNumber int, name string) (*models.StudentResult, error) {
	s.queries++
	for _, r := range s.results {
		if r.RollNumber == rollNumber && r.Name == name {
			clone := *r
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memResultStore) GetAll() ([]*models.StudentResult, error) {
	s.queries++
	var out []*models.StudentResult
	for _, r := range s.results {
		clone := *r
		out = append(out, &clone)
	}
	return out, nil
}

func (s *memResultStore) Update(r *models.StudentResult) error {
	if _, ok := s.results[r.ID]; !ok {
		return ErrNotFound
	}
	r.UpdatedAt = time.Now()
	clone := *r
	s.results[r.ID] = &clone
	return nil
}

func (s *memResultStore) Delete(id string) error {
	if _, ok := s.results[id]; !ok {
		return ErrNotFound
	}
	delete(s.results, id)
	return nil
}

// memAdminStore is an in-memory AdminStore for session tests.
type memAdminStore struct {
	admins map[string]*models.Admin
}

func newMemAdminStore() *memAdminStore {
	return &memAdminStore{admins: make(map[string]*models.Admin)}
}

func (s *memAdminStore) add(username, password string) {
	hash, err := HashPassword(password)
	if err != nil {
		panic(err)
	}
	s.admins[username] = &models.Admin{
		ID:       fmt.Sprintf("admin-%d", len(s.admins)+1),
		Username: username,
		Password: hash,
	}
}

func (s *memAdminStore) GetByUsername(username string) (*models.Admin, error) {
	admin, ok := s.admins[username]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *admin
	return &clone, nil
}

func (s *memAdminStore) UpdatePassword(id string, hashedPassword string) error {
	for _, admin := range s.admins {
		if admin.ID == id {
			admin.Password = hashedPassword
			return nil
		}
	}
	return ErrNotFound
}

// recordingAssetHost counts uploads and destroys per public ID.
type recordingAssetHost struct {
	uploads    int
	destroyed  []string
	uploadErr  error
	destroyErr error
}

func (h *recordingAssetHost) Upload(_ context.Context, _ []byte, folder string) (*UploadedAsset, error) {
	if h.uploadErr != nil {
		return nil, h.uploadErr
	}
	h.uploads++
	id := fmt.Sprintf("%s/asset-%d", folder, h.uploads)
	return &UploadedAsset{
		PublicID: id,
		URL:      "https://assets.example.com/" + id,
	}, nil
}

func (h *recordingAssetHost) Destroy(_ context.Context, publicID string) error {
	h.destroyed = append(h.destroyed, publicID)
	if h.destroyErr != nil {
		return h.destroyErr
	}
	return nil
}

func (h *recordingAssetHost) destroyCount(publicID string) int {
	n := 0
	for _, id := range h.destroyed {
		if id == publicID {
			n++
		}
	}
	return n
}

func validImage() *UploadedImage {
	return NewImageFromBytes([]byte("fake-png-bytes"), "image/png")
}
