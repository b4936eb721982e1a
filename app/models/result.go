package models

import "time"

// ResultImage references the scanned result sheet stored on the external
// image host. PublicID is the handle used to delete the asset later.
type ResultImage struct {
	ImageURL string `json:"imageUrl"`
	PublicID string `json:"publicId"`
}

// StudentResult is one published exam result. RollNumber is unique across
// all live records.
type StudentResult struct {
	ID          string      `json:"id"`
	RollNumber  int         `json:"rollNumber"`
	Name        string      `json:"name"`
	Marks       int         `json:"marks"`
	ResultImage ResultImage `json:"resultImage"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
