package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"

	"yatube/internal/config"
	"yatube/internal/errs"
	storagePort "yatube/internal/ports/storage"
)

// ImageDir is the directory under the media root that holds post images.
const ImageDir = "posts"

var allowedTypes = map[string]string{
	".gif":  "image/gif",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// ImageStorageDisk keeps post images on the local filesystem.
type ImageStorageDisk struct {
	root    string
	maxSize int64
}

func NewImageStorageDisk(root string, maxSize int64) *ImageStorageDisk {
	return &ImageStorageDisk{root: root, maxSize: maxSize}
}

// image is an upload on its way through validation.
type image struct {
	*storagePort.Upload
	ext         string
	contentType string
}

// Save validates the upload and writes it as posts/<uuid><ext>. The returned
// path is relative to the media root, with forward slashes.
func (st *ImageStorageDisk) Save(ctx context.Context, upload *storagePort.Upload) (string, error) {
	img := &image{Upload: upload}
	err := runImageValFns(img,
		st.extensionValid,
		st.belowMaxSize,
		st.contentTypeValid,
		st.contentTypeExtensionMatch,
	)
	if err != nil {
		return "", err
	}

	name := uuid.Must(uuid.NewV4()).String() + img.ext
	dir := filepath.Join(st.root, ImageDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating image dir: %w", err)
	}
	full := filepath.Join(dir, name)
	if err := writeFile(full, img.File); err != nil {
		if rmErr := os.Remove(full); rmErr != nil && !os.IsNotExist(rmErr) {
			config.Logger.Warn("could not remove partial image", zap.String("name", name), zap.Error(rmErr))
		}
		return "", err
	}

	config.Logger.Info("image stored", zap.String("name", name), zap.String("contentType", img.contentType))
	return path.Join(ImageDir, name), nil
}

// Delete removes a stored image. A missing file is not an error.
func (st *ImageStorageDisk) Delete(ctx context.Context, name string) error {
	clean := path.Clean("/" + name)
	if !strings.HasPrefix(clean, "/"+ImageDir+"/") {
		return errs.Errorf(errs.EINVALID, "Image %q is outside the image directory.", name)
	}
	err := os.Remove(filepath.Join(st.root, filepath.FromSlash(clean)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing image file: %w", err)
	}
	config.Logger.Info("image removed", zap.String("name", name))
	return nil
}

func writeFile(name string, src io.Reader) error {
	dst, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("creating image file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("writing image file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("closing image file: %w", err)
	}
	return nil
}

type imageValFn func(img *image) error

func runImageValFns(img *image, fns ...imageValFn) error {
	for _, fn := range fns {
		if err := fn(img); err != nil {
			return err
		}
	}
	return nil
}

func (st *ImageStorageDisk) extensionValid(img *image) error {
	ext := strings.ToLower(filepath.Ext(img.Filename))
	if _, ok := allowedTypes[ext]; !ok {
		return errs.Errorf(errs.EINVALID, "File extension %q is not allowed. Allowed extensions are: gif, png, jpg, jpeg.", strings.TrimPrefix(ext, "."))
	}
	img.ext = ext
	return nil
}

func (st *ImageStorageDisk) belowMaxSize(img *image) error {
	size, err := img.File.Seek(0, io.SeekEnd)
	if err != nil {
		return err
	}
	if _, err := img.File.Seek(0, io.SeekStart); err != nil {
		return err
	}
	if st.maxSize > 0 && size > st.maxSize {
		return errs.Errorf(errs.EINVALID, "Image %s exceeds the upload size limit of %d bytes.", img.Filename, st.maxSize)
	}
	return nil
}

func (st *ImageStorageDisk) contentTypeValid(img *image) error {
	buffer := make([]byte, 512)
	n, err := img.File.Read(buffer)
	if err != nil && err != io.EOF {
		return err
	}
	if _, err := img.File.Seek(0, io.SeekStart); err != nil {
		return err
	}
	contentType := http.DetectContentType(buffer[:n])
	switch contentType {
	case "image/gif", "image/png", "image/jpeg":
		img.contentType = contentType
		return nil
	}
	return errs.Errorf(errs.EINVALID, "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
}

func (st *ImageStorageDisk) contentTypeExtensionMatch(img *image) error {
	if allowedTypes[img.ext] != img.contentType {
		return errs.Errorf(errs.EINVALID, "Image %s content type %s does not match its extension.", img.Filename, img.contentType)
	}
	return nil
}
