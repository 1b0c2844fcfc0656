package stores

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"portfolio-views/internal/shared/filestorages"
	"portfolio-views/internal/shared/ulid"
)

var ErrUploadNotFound = errors.New("upload not found")

const (
	UploadFolderProfiles = "profiles"
	UploadFolderResumes  = "resumes"
	UploadFolderProjects = "projects"

	uploadsDir = "uploads"
)

// UploadStore keeps user supplied binaries. Save returns the public URL path
// under which Open can later find the file, e.g. "/uploads/profiles/<ulid>.png".
//
//go:generate mockgen -source=upload_store.go -destination=./mocks/upload_store_mock.go -package=mocks
type UploadStore interface {
	Save(ctx context.Context, folder string, originalName string, r io.Reader) (string, error)
	Open(ctx context.Context, urlPath string) (io.ReadCloser, error)
}

type uploadStore struct {
	fileStorage filestorages.FileStorage
}

func NewUploadStore(fileStorage filestorages.FileStorage) UploadStore {
	return &uploadStore{fileStorage: fileStorage}
}

func (s *uploadStore) Save(ctx context.Context, folder string, originalName string, r io.Reader) (string, error) {
	key := path.Join(uploadsDir, folder, ulid.NewULID()+UploadExtension(originalName))

	if _, err := s.fileStorage.Put(ctx, key, r, filestorages.PutOptions{AllowOverwrite: false}); err != nil {
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return "/" + key, nil
}

func (s *uploadStore) Open(ctx context.Context, urlPath string) (io.ReadCloser, error) {
	// cleaning against "/" first keeps dot segments from leaving the uploads tree
	key := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if !strings.HasPrefix(key, uploadsDir+"/") {
		key = path.Join(uploadsDir, key)
	}
	// only names produced by Save are served
	name := path.Base(key)
	if !ulid.IsULID(strings.TrimSuffix(name, path.Ext(name))) {
		return nil, ErrUploadNotFound
	}

	readCloser, err := s.fileStorage.Get(ctx, key)
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) || errors.Is(err, filestorages.ErrInvalidKey) {
			return nil, ErrUploadNotFound
		}
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	return readCloser, nil
}

// UploadExtension returns the lower-cased extension of a client file name, including the dot.
func UploadExtension(originalName string) string {
	return strings.ToLower(filepath.Ext(originalName))
}
