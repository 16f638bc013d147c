package services

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"sightd/internal/providers"
	"sightd/internal/store"
	"sightd/internal/structures"
)

var (
	ErrPhotoNotFound = errors.New("photo not found")
	ErrInvalidPhoto  = errors.New("invalid photo")
)

var photoTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type PhotoServiceInterface interface {
	Save(r io.Reader) (string, error)
	Resolve(imageName string) (string, error)
}

// PhotoService keeps captured photos in picturesDir. Names that are not
// found there fall back to bundled images in imagesDir, matched by stem.
type PhotoService struct {
	picturesDir string
	imagesDir   string
	maxSize     int64
	fileManager *store.FileManager
	logger      providers.Logger
	now         func() time.Time
}

func NewPhotoService(conf *structures.Config, fileManager *store.FileManager, logger providers.Logger) PhotoServiceInterface {
	return &PhotoService{
		picturesDir: conf.Store.PicturesDir,
		imagesDir:   conf.Store.ImagesDir,
		maxSize:     conf.Store.MaxPhotoSize,
		fileManager: fileManager,
		logger:      logger,
		now:         time.Now,
	}
}

// Save stores an uploaded image and returns the imageName to put on a sight.
func (ps *PhotoService) Save(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, ps.maxSize+1))
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty body", ErrInvalidPhoto)
	}
	if int64(len(data)) > ps.maxSize {
		return "", fmt.Errorf("%w: larger than %d bytes", ErrInvalidPhoto, ps.maxSize)
	}

	contentType := http.DetectContentType(data)
	ext, ok := photoTypes[contentType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported content type %s", ErrInvalidPhoto, contentType)
	}

	prefix := strings.ToUpper(strings.TrimPrefix(contentType, "image/"))
	name := fmt.Sprintf("%s_%s_%s%s", prefix, ps.now().Format("20060102_150405"), uuid.NewString()[:8], ext)
	if err := ps.fileManager.WriteFile(filepath.Join(ps.picturesDir, name), data); err != nil {
		return "", err
	}
	ps.logger.Infof(providers.TypePost, "Photo %s stored (%d bytes)", name, len(data))
	return name, nil
}

// Resolve returns the file backing imageName.
func (ps *PhotoService) Resolve(imageName string) (string, error) {
	if !isPlainName(imageName) {
		return "", ErrPhotoNotFound
	}

	captured := filepath.Join(ps.picturesDir, imageName)
	if isRegularFile(captured) {
		return captured, nil
	}

	if ps.imagesDir == "" {
		return "", ErrPhotoNotFound
	}
	stem := strings.TrimSuffix(imageName, filepath.Ext(imageName))
	entries, err := os.ReadDir(ps.imagesDir)
	if err != nil {
		return "", ErrPhotoNotFound
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())) == stem {
			return filepath.Join(ps.imagesDir, e.Name()), nil
		}
	}
	return "", ErrPhotoNotFound
}

func isPlainName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
