package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/JohirU-coder/landlord-property-service/internal/logger"
	"github.com/JohirU-coder/landlord-property-service/internal/model"
	"github.com/JohirU-coder/landlord-property-service/internal/repository"
)

type PhotoStore interface {
	Upload(ctx context.Context, propertyID int64, filename, contentType string, src io.Reader) (*model.Photo, error)
	Latest(ctx context.Context, propertyID int64) (*model.Photo, []byte, error)
}

type PhotoService struct {
	photos     PhotoStore
	properties PropertyStore
}

func NewPhotoService(ph PhotoStore, ps PropertyStore) *PhotoService {
	return &PhotoService{photos: ph, properties: ps}
}

func (s *PhotoService) ensureProperty(ctx context.Context, propertyID int64) error {
	exists, err := s.properties.Exists(ctx, propertyID)
	if err != nil {
		return errInternal("failed to look up property", err)
	}
	if !exists {
		return errPropertyNotFound(propertyID)
	}
	return nil
}

// Upload stores a photo for an existing property.
func (s *PhotoService) Upload(ctx context.Context, propertyID int64, filename, contentType string, src io.Reader) (*model.Photo, error) {
	if err := s.ensureProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("property_%d_%s", propertyID, filename)
	photo, err := s.photos.Upload(ctx, propertyID, name, contentType, src)
	if err != nil {
		return nil, errInternal("failed to store photo", err)
	}
	logger.Log.WithField("property_id", propertyID).Infof("photo %s stored", photo.ID)
	return photo, nil
}

// Latest returns the newest photo of the property.
func (s *PhotoService) Latest(ctx context.Context, propertyID int64) (*model.Photo, []byte, error) {
	if err := s.ensureProperty(ctx, propertyID); err != nil {
		return nil, nil, err
	}

	photo, data, err := s.photos.Latest(ctx, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, &AppError{
				StatusCode: http.StatusNotFound,
				Code:       ErrCodePhotoNotFound,
				Message:    fmt.Sprintf("no photo for property %d", propertyID),
			}
		}
		return nil, nil, errInternal("failed to load photo", err)
	}
	return photo, data, nil
}
