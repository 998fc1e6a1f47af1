package images

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/foodiehub/foodiehub/config"
	"github.com/foodiehub/foodiehub/services/directory"
	"github.com/foodiehub/foodiehub/services/logging"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrNotFound             = errors.New("image not found")
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrFileTooLarge         = errors.New("file size more than 10MB, please upload a smaller size file")
	ErrInvalidFileName      = errors.New("invalid file name")
)

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// ContentType maps a file name to the MIME type it is served with.
func ContentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

type Upload struct {
	Body             io.Reader
	OriginalFileName string
	Size             int64
	Name             string
	Description      *string
}

type Service struct {
	db      *gorm.DB
	storage Storage
	cities  *directory.CityRepository
	maxSize int64
	logger  *logging.Service
}

func NewService(db *gorm.DB, storage Storage, cities *directory.CityRepository, cfg config.StorageConfig, logger *logging.Service) *Service {
	return &Service{
		db:      db,
		storage: storage,
		cities:  cities,
		maxSize: cfg.MaxUploadSize,
		logger:  logger,
	}
}

func (s *Service) validate(fileName string, size int64) (string, error) {
	ext := filepath.Ext(fileName)
	if _, ok := contentTypes[ext]; !ok {
		return "", ErrUnsupportedExtension
	}
	if size > s.maxSize {
		return "", ErrFileTooLarge
	}
	return ext, nil
}

// Upload stores the file under "<slug>_<uuid><ext>" and records its metadata.
// baseURL is prefixed to storage paths that are not absolute URLs.
func (s *Service) Upload(ctx context.Context, upload Upload, baseURL string) (*Image, error) {
	ext, err := s.validate(upload.OriginalFileName, upload.Size)
	if err != nil {
		return nil, err
	}

	base := slug.Make(upload.Name)
	if base == "" {
		base = "image"
	}
	name := fmt.Sprintf("%s_%s%s", base, uuid.NewString(), ext)

	location, err := s.storage.Put(ctx, name, io.LimitReader(upload.Body, s.maxSize+1), upload.Size, ContentType(name))
	if err != nil {
		s.logger.Error("failed to store image", zap.String("file_name", name), zap.Error(err))
		return nil, err
	}

	image := &Image{
		ID:              uuid.NewString(),
		FileName:        name,
		FileDescription: upload.Description,
		FileExtension:   ext,
		FileSizeInBytes: upload.Size,
		FilePath:        absolute(baseURL, location),
	}
	if err := s.db.WithContext(ctx).Create(image).Error; err != nil {
		if delErr := s.storage.Delete(ctx, name); delErr != nil {
			s.logger.Warn("failed to remove orphaned image", zap.String("file_name", name), zap.Error(delErr))
		}
		return nil, fmt.Errorf("failed to record image: %w", err)
	}

	s.logger.Info("image uploaded", zap.String("file_name", name), zap.Int64("size", upload.Size))
	return image, nil
}

func absolute(baseURL, location string) string {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return location
	}
	return strings.TrimRight(baseURL, "/") + location
}

func (s *Service) Get(ctx context.Context, fileName string) (*Image, error) {
	var image Image
	err := s.db.WithContext(ctx).Where("file_name = ?", fileName).First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &image, nil
}

// Open streams a stored file. The caller closes the reader.
func (s *Service) Open(ctx context.Context, fileName string) (io.ReadCloser, string, error) {
	if !safeName(fileName) {
		return nil, "", ErrNotFound
	}

	body, err := s.storage.Open(ctx, fileName)
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	return body, ContentType(fileName), nil
}

func (s *Service) Delete(ctx context.Context, fileName string) error {
	image, err := s.Get(ctx, fileName)
	if err != nil {
		return err
	}

	if err := s.storage.Delete(ctx, image.FileName); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(image).Error; err != nil {
		return fmt.Errorf("failed to delete image record: %w", err)
	}

	s.logger.Info("image deleted", zap.String("file_name", fileName))
	return nil
}

func (s *Service) Page(ctx context.Context, page, pageSize int) ([]Image, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = directory.DefaultPageSize
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&Image{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var images []Image
	err := s.db.WithContext(ctx).Order("file_name").Offset((page - 1) * pageSize).Limit(pageSize).Find(&images).Error
	if err != nil {
		return nil, 0, err
	}
	return images, total, nil
}

// SaveCityImage stores the file as "<cityID>_<name>" and points the city at
// it. It returns the stored location.
func (s *Service) SaveCityImage(ctx context.Context, cityID string, upload Upload) (string, error) {
	if _, err := s.cities.GetByID(ctx, cityID); err != nil {
		return "", err
	}

	original := filepath.Base(upload.OriginalFileName)
	if !safeName(original) {
		return "", ErrInvalidFileName
	}
	if _, err := s.validate(original, upload.Size); err != nil {
		return "", err
	}

	name := cityID + "_" + original
	location, err := s.storage.Put(ctx, name, io.LimitReader(upload.Body, s.maxSize+1), upload.Size, ContentType(name))
	if err != nil {
		return "", err
	}

	if err := s.cities.SetImageURL(ctx, cityID, location); err != nil {
		return "", err
	}
	return location, nil
}

func safeName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}
