package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"yatube/internal/config"
	"yatube/internal/core/apperr"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const (
	uploadDir     = "posts"
	MaxUploadSize = 5 << 20
)

// FileStorage writes images under Root/posts and returns paths relative to
// Root, e.g. "posts/small.gif".
type FileStorage struct {
	Root string
}

func NewFileStorage(root string) *FileStorage {
	return &FileStorage{Root: root}
}

// Save checks that content is an image and stores it. An existing file with
// the same name is never overwritten; the new one gets a random suffix.
func (s *FileStorage) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(content, MaxUploadSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return "", apperr.NewValidationError("image", "The submitted file is empty.")
	}
	if len(data) > MaxUploadSize {
		return "", apperr.NewValidationError("image", "The submitted file is too large.")
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		config.Logger.Info("Rejected non-image upload", zap.String("filename", filename), zap.String("mime", mtype.String()))
		return "", apperr.NewValidationError("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	}

	name := cleanName(filename, mtype.Extension())
	dir := filepath.Join(s.Root, uploadDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	f, name, err := createUnique(dir, name)
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close upload: %w", err)
	}

	rel := path.Join(uploadDir, name)
	config.Logger.Info("Stored image", zap.String("path", rel), zap.String("mime", mtype.String()))
	return rel, nil
}

// Delete removes a stored upload by the path Save returned.
func (s *FileStorage) Delete(_ context.Context, rel string) error {
	clean := path.Clean("/" + rel)
	if !strings.HasPrefix(clean, "/"+uploadDir+"/") {
		return fmt.Errorf("refusing to delete %q outside %s/", rel, uploadDir)
	}
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(clean)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete upload: %w", err)
	}
	config.Logger.Info("Removed image", zap.String("path", rel))
	return nil
}

func cleanName(filename, ext string) string {
	name := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "image" + ext
	}
	return name
}

func createUnique(dir, name string) (*os.File, string, error) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := name
	for i := 0; i < 5; i++ {
		f, err := os.OpenFile(filepath.Join(dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, candidate, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, "", fmt.Errorf("create upload: %w", err)
		}
		candidate = stem + "_" + uuid.Must(uuid.NewV4()).String()[:7] + ext
	}
	return nil, "", fmt.Errorf("create upload %s: too many name collisions", name)
}
