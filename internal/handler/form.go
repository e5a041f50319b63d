package handler

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"
)

// maxImageSize caps uploaded images at 5MB, same limit the storefront forms
// enforce client-side.
const maxImageSize = 5 << 20

// Uploader stores images on the media host. Satisfied by *media.Store;
// handlers accept the interface so tests can fake the upload.
type Uploader interface {
	Upload(ctx context.Context, folder string, body io.Reader, size int64, contentType string) (url string, key string, err error)
	Delete(ctx context.Context, key string) error
}

// Revalidator tells the storefront to rebuild cached pages.
// Satisfied by *revalidate.Client.
type Revalidator interface {
	Fire(ctx context.Context, paths, tags []string) error
}

// imageFile pulls the named file out of the multipart form and checks type
// and size. Returns nil without error when the field is absent, so update
// handlers can treat the image as optional.
func imageFile(c *gin.Context, field string) (*multipart.FileHeader, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	if fh.Size > maxImageSize {
		return nil, fmt.Errorf("ukuran gambar maksimal 5MB")
	}
	ct := fh.Header.Get("Content-Type")
	if ct != "image/jpeg" && ct != "image/png" {
		return nil, fmt.Errorf("gambar harus berformat JPEG atau PNG")
	}
	return fh, nil
}

// uploadImage opens and stores a validated multipart file.
func uploadImage(c *gin.Context, up Uploader, folder string, fh *multipart.FileHeader) (string, string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	return up.Upload(c.Request.Context(), folder, f, fh.Size, fh.Header.Get("Content-Type"))
}
