package cloudinary

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"result-portal/app/services"
)

// Client implements services.AssetHost on top of Cloudinary.
type Client struct {
	cld *cloudinary.Cloudinary
}

// New builds a client from a CLOUDINARY_URL-style connection string.
func New(cloudinaryURL string) (*Client, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("cloudinary config: %w", err)
	}
	return &Client{cld: cld}, nil
}

func (c *Client) Upload(ctx context.Context, data []byte, folder string) (*services.UploadedAsset, error) {
	resp, err := c.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:       folder,
		ResourceType: "auto",
	})
	if err != nil {
		log.Printf("Error during image upload: %v", err)
		return nil, err
	}

	return &services.UploadedAsset{
		PublicID: resp.PublicID,
		URL:      resp.SecureURL,
	}, nil
}

func (c *Client) Destroy(ctx context.Context, publicID string) error {
	resp, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		log.Printf("Error during image deletion: %v", err)
		return err
	}
	if resp.Result != "ok" {
		return fmt.Errorf("failed to delete image %s: %s", publicID, resp.Result)
	}
	return nil
}
