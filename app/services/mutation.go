package services

import (
	"bytes"
	"context"
	"log"

	"github.com/google/uuid"

	"result-portal/app/models"
)

const (
	// MaxImageSize is the upload cap for result sheets (5MB).
	MaxImageSize = 5 * 1024 * 1024

	// ResultAssetFolder is the asset host folder result images go into.
	ResultAssetFolder = "students"
)

var acceptedImageTypes = map[string]bool{
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// UploadedAsset is the handle pair returned by the asset host.
type UploadedAsset struct {
	PublicID string
	URL      string
}

// AssetHost stores result images externally. Destroy removes a previously
// uploaded asset by its public ID.
type AssetHost interface {
	Upload(ctx context.Context, data []byte, folder string) (*UploadedAsset, error)
	Destroy(ctx context.Context, publicID string) error
}

// UploadedImage carries a validated file from the HTTP boundary.
type UploadedImage struct {
	Data        []byte
	Size        int64
	ContentType string
}

// CreateResultCommand is the typed form of a result upload request.
type CreateResultCommand struct {
	RollNumber int
	Name       string
	Marks      int
	Image      *UploadedImage
}

// UpdateResultCommand holds a partial edit; nil fields keep the stored value.
type UpdateResultCommand struct {
	ID         string
	RollNumber *int
	Name       *string
	Marks      *int
	Image      *UploadedImage
}

// MutationService coordinates result writes with the external asset host.
// Within one call the asset step always completes before the record step;
// across calls there is no transaction, last write wins.
type MutationService struct {
	Results ResultStore
	Assets  AssetHost
}

func NewMutationService(results ResultStore, assets AssetHost) *MutationService {
	return &MutationService{Results: results, Assets: assets}
}

func (s *MutationService) CreateResult(ctx context.Context, cmd CreateResultCommand) (*models.StudentResult, error) {
	if cmd.RollNumber <= 0 || cmd.Name == "" || cmd.Marks < 0 || cmd.Marks > 100 {
		return nil, ErrInvalidInput
	}
	if err := validateImage(cmd.Image); err != nil {
		return nil, err
	}

	// Upload first; the record only ever references a confirmed asset.
	asset, err := s.Assets.Upload(ctx, cmd.Image.Data, ResultAssetFolder)
	if err != nil {
		return nil, ErrAssetUpload
	}

	result := &models.StudentResult{
		ID:         uuid.NewString(),
		RollNumber: cmd.RollNumber,
		Name:       cmd.Name,
		Marks:      cmd.Marks,
		ResultImage: models.ResultImage{
			ImageURL: asset.URL,
			PublicID: asset.PublicID,
		},
	}

	if err := s.Results.Insert(result); err != nil {
		// The asset is already stored; try not to orphan it.
		if destroyErr := s.Assets.Destroy(ctx, asset.PublicID); destroyErr != nil {
			log.Printf("Failed to clean up asset %s after insert error: %v", asset.PublicID, destroyErr)
		}
		return nil, err
	}
	return result, nil
}

func (s *MutationService) UpdateResult(ctx context.Context, cmd UpdateResultCommand) (*models.StudentResult, error) {
	existing, err := s.Results.GetByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.RollNumber != nil {
		if *cmd.RollNumber <= 0 {
			return nil, ErrInvalidInput
		}
		existing.RollNumber = *cmd.RollNumber
	}
	if cmd.Name != nil {
		if *cmd.Name == "" {
			return nil, ErrInvalidInput
		}
		existing.Name = *cmd.Name
	}
	if cmd.Marks != nil {
		if *cmd.Marks < 0 || *cmd.Marks > 100 {
			return nil, ErrInvalidInput
		}
		existing.Marks = *cmd.Marks
	}

	if cmd.Image != nil {
		if err := validateImage(cmd.Image); err != nil {
			return nil, err
		}

		// New image goes up before the old one comes down.
		asset, err := s.Assets.Upload(ctx, cmd.Image.Data, ResultAssetFolder)
		if err != nil {
			return nil, ErrAssetUpload
		}

		if oldID := existing.ResultImage.PublicID; oldID != "" {
			if err := s.Assets.Destroy(ctx, oldID); err != nil {
				log.Printf("Failed to delete replaced asset %s: %v", oldID, err)
			}
		}

		existing.ResultImage = models.ResultImage{
			ImageURL: asset.URL,
			PublicID: asset.PublicID,
		}
	}

	if err := s.Results.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteResult removes the external asset, then the record. An asset-host
// failure is logged and does not block record deletion.
func (s *MutationService) DeleteResult(ctx context.Context, id string) error {
	existing, err := s.Results.GetByID(id)
	if err != nil {
		return err
	}

	if publicID := existing.ResultImage.PublicID; publicID != "" {
		if err := s.Assets.Destroy(ctx, publicID); err != nil {
			log.Printf("Failed to delete asset %s for result %s: %v", publicID, id, err)
		}
	}

	return s.Results.Delete(id)
}

func (s *MutationService) GetResult(id string) (*models.StudentResult, error) {
	return s.Results.GetByID(id)
}

func (s *MutationService) ListResults() ([]*models.StudentResult, error) {
	return s.Results.GetAll()
}

func validateImage(img *UploadedImage) error {
	if img == nil || len(img.Data) == 0 {
		return ErrInvalidInput
	}
	if img.Size > MaxImageSize || int64(len(img.Data)) > MaxImageSize {
		return ErrInvalidInput
	}
	if !acceptedImageTypes[img.ContentType] {
		return ErrInvalidInput
	}
	return nil
}

// NewImageFromBytes is a convenience for callers that already hold the bytes.
func NewImageFromBytes(data []byte, contentType string) *UploadedImage {
	return &UploadedImage{
		Data:        bytes.Clone(data),
		Size:        int64(len(data)),
		ContentType: contentType,
	}
}
