// Package storage keeps employee photos and their thumbnails on disk.
package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"math"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"hrms-portal/internal/util"
	"hrms-portal/pkg/apierror"
)

const (
	originalName  = "original"
	thumbnailName = "thumb.jpg"
)

// Photo describes a stored employee photo.
type Photo struct {
	EmployeeID  string
	Filename    string
	ContentType string
	Size        int64
	Width       int
	Height      int
}

type PhotoStore struct {
	validator *PathValidator
	maxSize   int64
	thumbSize int
}

func NewPhotoStore(root string, maxSize int64, thumbSize int) (*PhotoStore, error) {
	validator, err := NewPathValidator(root)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(validator.RootAbs(), 0o755); err != nil {
		return nil, fmt.Errorf("create photo root: %w", err)
	}
	if thumbSize <= 0 {
		thumbSize = 256
	}

	return &PhotoStore{validator: validator, maxSize: maxSize, thumbSize: thumbSize}, nil
}

func (s *PhotoStore) RootAbs() string {
	return s.validator.RootAbs()
}

func employeeDir(employeeID string) string {
	return path.Join("employees", employeeID)
}

// Save stores the upload and a JPEG thumbnail whose longest side is the
// configured size. Uploads that are not decodable images are rejected.
func (s *PhotoStore) Save(employeeID, filename string, r io.Reader) (Photo, error) {
	name, err := util.SanitizeFilename(filename, false)
	if err != nil {
		return Photo{}, err
	}
	if !util.IsPhotoExtension(name) {
		return Photo{}, apierror.New("UNSUPPORTED_TYPE", "Photo must be a JPEG, PNG, GIF, WEBP or BMP image", name, http.StatusUnsupportedMediaType)
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return Photo{}, fmt.Errorf("read photo: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return Photo{}, apierror.New("PAYLOAD_TOO_LARGE", "Photo exceeds the maximum upload size", name, http.StatusRequestEntityTooLarge)
	}

	contentType := util.DetectMIME(data)
	if !util.IsPhotoMIME(contentType) {
		return Photo{}, apierror.New("UNSUPPORTED_TYPE", "Photo content is not a supported image", contentType, http.StatusUnsupportedMediaType)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Photo{}, apierror.New("UNSUPPORTED_TYPE", "cannot decode image", err.Error(), http.StatusUnsupportedMediaType)
	}
	bounds := src.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return Photo{}, apierror.New("UNSUPPORTED_TYPE", "invalid image dimensions", name, http.StatusUnsupportedMediaType)
	}

	dir, err := s.validator.ResolvePath(employeeDir(employeeID))
	if err != nil {
		return Photo{}, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Photo{}, fmt.Errorf("create photo directory: %w", err)
	}

	if err := writeFile(filepath.Join(dir, originalName+filepath.Ext(name)), data); err != nil {
		return Photo{}, err
	}
	if err := s.writeThumbnail(src, filepath.Join(dir, thumbnailName)); err != nil {
		return Photo{}, err
	}

	return Photo{
		EmployeeID:  employeeID,
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
	}, nil
}

// OpenThumbnail returns the thumbnail of an employee photo.
func (s *PhotoStore) OpenThumbnail(employeeID string) (*os.File, os.FileInfo, error) {
	resolved, err := s.validator.ResolvePath(path.Join(employeeDir(employeeID), thumbnailName))
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(resolved)
	if os.IsNotExist(err) {
		return nil, nil, apierror.NotFound("Photo not found")
	}
	if err != nil {
		return nil, nil, err
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, nil, err
	}
	return file, info, nil
}

// Remove deletes every stored file of an employee. A missing directory is
// not an error.
func (s *PhotoStore) Remove(employeeID string) error {
	resolved, err := s.validator.ResolvePath(employeeDir(employeeID))
	if err != nil {
		return err
	}
	if err := os.RemoveAll(resolved); err != nil {
		return fmt.Errorf("remove photos of %q: %w", employeeID, err)
	}
	return nil
}

func (s *PhotoStore) writeThumbnail(src image.Image, thumbPath string) error {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	scale := float64(s.thumbSize) / float64(max(width, height))
	if scale > 1 {
		scale = 1
	}

	targetWidth := max(int(math.Round(float64(width)*scale)), 1)
	targetHeight := max(int(math.Round(float64(height)*scale)), 1)

	dst := image.NewRGBA(image.Rect(0, 0, targetWidth, targetHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 90}); err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	return writeFile(thumbPath, buf.Bytes())
}

// writeFile writes through a temporary file so readers never see a partial
// photo.
func writeFile(dst string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(dst), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("store %s: %w", filepath.Base(dst), err)
	}
	_ = os.Chtimes(dst, time.Now().UTC(), time.Now().UTC())
	return nil
}
