package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/appfrabric/roilux/internal/core/domain"
	"github.com/appfrabric/roilux/internal/pkg/metrics"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MediaKind selects the upload directory and the accepted MIME family
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// dir is the subdirectory holding uploads of this kind
func (k MediaKind) dir() string {
	return string(k) + "s"
}

func (k MediaKind) mismatch() string {
	if k == MediaImage {
		return "File must be an image"
	}
	return "File must be a video"
}

// MediaFile describes a stored upload
type MediaFile struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
}

// MediaService stores catalog images and videos on disk
type MediaService struct {
	root string
	log  *zap.SugaredLogger
}

// NewMediaService creates the images/ and videos/ directories under root
func NewMediaService(root string, log *zap.SugaredLogger) (*MediaService, error) {
	for _, kind := range []MediaKind{MediaImage, MediaVideo} {
		if err := os.MkdirAll(filepath.Join(root, kind.dir()), 0o755); err != nil {
			return nil, fmt.Errorf("create %s upload dir: %w", kind, err)
		}
	}
	return &MediaService{root: root, log: log}, nil
}

// Save sniffs the content of src and stores it under a fresh name.  The
// declared content type of the upload is not trusted.
func (s *MediaService) Save(ctx context.Context, kind MediaKind, src io.ReadSeeker) (*MediaFile, error) {
	file, err := s.save(ctx, kind, src)
	metrics.UploadsTotal.WithLabelValues(string(kind), metrics.Result(err)).Inc()
	return file, err
}

func (s *MediaService) save(ctx context.Context, kind MediaKind, src io.ReadSeeker) (*MediaFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, fmt.Errorf("detect content type: %w", err)
	}
	if !strings.HasPrefix(mtype.String(), string(kind)+"/") {
		return nil, domain.NewValidationError("file", kind.mismatch())
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	name := uuid.NewString() + mtype.Extension()
	dst := filepath.Join(s.root, kind.dir(), name)

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return nil, errors.Join(domain.ErrPersistence, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		return nil, errors.Join(domain.ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, errors.Join(domain.ErrPersistence, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return nil, errors.Join(domain.ErrPersistence, err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return nil, errors.Join(domain.ErrPersistence, err)
	}

	s.log.Infow("📁 Media uploaded", "kind", kind, "file", name, "type", mtype.String())
	return &MediaFile{
		Filename: name,
		URL:      fmt.Sprintf("/api/%s/%s", kind.dir(), name),
		MimeType: mtype.String(),
	}, nil
}

// Path resolves a stored upload.  Names that are not a plain file name
// are treated as absent.
func (s *MediaService) Path(kind MediaKind, name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", domain.ErrNotFound
	}

	path := filepath.Join(s.root, kind.dir(), name)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", domain.ErrNotFound
	}
	return path, nil
}
