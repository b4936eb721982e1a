package services

import (
	"fmt"
	"strconv"
	"strings"

	"result-portal/app/models"
)

// ResultStore is the persisted result storage used by the lookup and
// mutation services. A miss is reported as ErrNotFound, an insert that
// violates roll number uniqueness as ErrDuplicateRollNumber.
type ResultStore interface {
	Insert(r *models.StudentResult) error
	GetByID(id string) (*models.StudentResult, error)
	GetByRollAndName(rollNumber int, name string) (*models.StudentResult, error)
	GetAll() ([]*models.StudentResult, error)
	Update(r *models.StudentResult) error
	Delete(id string) error
}

// LookupService answers anonymous "find my result" queries. Every request
// is counted against the caller's rate window before anything else; hits
// are served from the TTL cache without touching the store.
type LookupService struct {
	Results ResultStore
	Cache   *ResultCache
	Limiter *RateLimiter
}

func NewLookupService(results ResultStore, cache *ResultCache, limiter *RateLimiter) *LookupService {
	return &LookupService{Results: results, Cache: cache, Limiter: limiter}
}

func (s *LookupService) FindResult(rollNumber, name, clientID string) (*models.StudentResult, error) {
	if !s.Limiter.Allow(clientID) {
		return nil, ErrRateLimited
	}

	rollNumber = strings.TrimSpace(rollNumber)
	name = strings.TrimSpace(name)
	if rollNumber == "" || name == "" {
		return nil, ErrInvalidInput
	}

	roll, err := strconv.Atoi(rollNumber)
	if err != nil {
		return nil, ErrInvalidInput
	}

	key := lookupKey(roll, name)
	if cached, ok := s.Cache.Get(key); ok {
		return cached, nil
	}

	result, err := s.Results.GetByRollAndName(roll, name)
	if err != nil {
		return nil, err
	}

	s.Cache.Set(key, result)
	return result, nil
}

func lookupKey(rollNumber int, name string) string {
	return fmt.Sprintf("%d|%s", rollNumber, name)
}
