package storage

import (
	"context"
	"io"
)

// Upload is a file submitted with a form.
type Upload struct {
	Filename string
	File     io.ReadSeeker
	Size     int64
}

// ImageStorage persists post images and returns their path relative to the media root.
type ImageStorage interface {
	Save(ctx context.Context, upload *Upload) (string, error)
	// Delete removes an image previously returned by Save.
	Delete(ctx context.Context, name string) error
}
