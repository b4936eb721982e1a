package database

import (
	"database/sql"
	"errors"

	"result-portal/app/models"
	"result-portal/app/services"
)

// ResultStore persists student results in PostgreSQL. Roll number
// uniqueness is enforced by the schema; violations surface as
// services.ErrDuplicateRollNumber.
type ResultStore struct {
	DB *sql.DB
}

func NewResultStore(db *sql.DB) *ResultStore {
	return &ResultStore{DB: db}
}

func (s *ResultStore) Insert(r *models.StudentResult) error {
	query := `INSERT INTO student_results (id, roll_number, name, marks, image_url, image_public_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			  RETURNING created_at, updated_at`

	err := s.DB.QueryRow(query,
		r.ID, r.RollNumber, r.Name, r.Marks,
		r.ResultImage.ImageURL, r.ResultImage.PublicID,
	).Scan(&r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return services.ErrDuplicateRollNumber
		}
		return err
	}
	return nil
}

func (s *ResultStore) GetByID(id string) (*models.StudentResult, error) {
	query := `SELECT id, roll_number, name, marks, image_url, image_public_id, created_at, updated_at
			  FROM student_results WHERE id = $1`
	return s.scanOne(s.DB.QueryRow(query, id))
}

func (s *ResultStore) GetByRollAndName(rollNumber int, name string) (*models.StudentResult, error) {
	query := `SELECT id, roll_number, name, marks, image_url, image_public_id, created_at, updated_at
			  FROM student_results WHERE roll_number = $1 AND name = $2`
	return s.scanOne(s.DB.QueryRow(query, rollNumber, name))
}

func (s *ResultStore) GetAll() ([]*models.StudentResult, error) {
	query := `SELECT id, roll_number, name, marks, image_url, image_public_id, created_at, updated_at
			  FROM student_results ORDER BY created_at DESC`

	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.StudentResult
	for rows.Next() {
		r := &models.StudentResult{}
		if err := rows.Scan(
			&r.ID, &r.RollNumber, &r.Name, &r.Marks,
			&r.ResultImage.ImageURL, &r.ResultImage.PublicID,
			&r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *ResultStore) Update(r *models.StudentResult) error {
	query := `UPDATE student_results
			  SET roll_number = $1, name = $2, marks = $3, image_url = $4, image_public_id = $5, updated_at = NOW()
			  WHERE id = $6`

	res, err := s.DB.Exec(query,
		r.RollNumber, r.Name, r.Marks,
		r.ResultImage.ImageURL, r.ResultImage.PublicID, r.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return services.ErrDuplicateRollNumber
		}
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *ResultStore) Delete(id string) error {
	res, err := s.DB.Exec(`DELETE FROM student_results WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *ResultStore) scanOne(row *sql.Row) (*models.StudentResult, error) {
	r := &models.StudentResult{}
	err := row.Scan(
		&r.ID, &r.RollNumber, &r.Name, &r.Marks,
		&r.ResultImage.ImageURL, &r.ResultImage.PublicID,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return r, nil
}
