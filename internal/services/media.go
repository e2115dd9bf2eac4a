package services

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Size ceilings enforced before anything is written.
const (
	MaxThumbnailSize = 2_000_000
	MaxAvatarSize    = 500_000
)

var (
	ErrFileTooLarge = errors.New("file too large")
	ErrFileNotFound = errors.New("file not found")
)

// MediaService owns the upload directory. Records reference stored
// files by filename only; nothing here guarantees a record and its file
// stay in sync across crashes.
type MediaService struct {
	dir string
}

func NewMediaService(dir string) (*MediaService, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}
	return &MediaService{dir: dir}, nil
}

func (s *MediaService) Dir() string {
	return s.dir
}

// Save writes the uploaded file under a collision-resistant name built
// from the original base name, a random suffix and the original
// extension. The size check happens before any write.
func (s *MediaService) Save(file *multipart.FileHeader, maxSize int64) (string, error) {
	if file.Size > maxSize {
		return "", ErrFileTooLarge
	}

	ext := filepath.Ext(file.Filename)
	base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
	storedName := base + uuid.New().String() + ext

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, storedName))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return storedName, nil
}

// Delete removes a stored file. Callers treat failure as advisory.
func (s *MediaService) Delete(name string) error {
	err := os.Remove(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return ErrFileNotFound
	}
	return err
}

// DeleteQuietly is the fire-and-forget variant used when replacing or
// removing a record's prior file: the failure is logged, never bubbled.
func (s *MediaService) DeleteQuietly(name string) {
	if name == "" {
		return
	}
	if err := s.Delete(name); err != nil {
		log.Printf("could not delete old upload %s: %v", name, err)
	}
}
