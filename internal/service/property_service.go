package service

import (
	"context"
	"errors"
	"math"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/JohirU-coder/landlord-property-service/internal/logger"
	"github.com/JohirU-coder/landlord-property-service/internal/model"
	"github.com/JohirU-coder/landlord-property-service/internal/repository"
)

type PropertyStore interface {
	CreateTable(ctx context.Context) error
	Create(ctx context.Context, p *model.Property) error
	GetByID(ctx context.Context, id int64) (*model.PropertyListItem, error)
	Exists(ctx context.Context, id int64) (bool, error)
	FindDuplicate(ctx context.Context, address, zipCode string) (int64, error)
	Search(ctx context.Context, params model.SearchParams) ([]model.PropertyListItem, error)
	Count(ctx context.Context, params model.SearchParams) (int, error)
	Stats(ctx context.Context) (*model.PropertyStats, error)
}

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// PropertyService holds the listing rules. Requests reaching it are
// already validated.
type PropertyService struct {
	properties PropertyStore
	users      UserStore
}

func NewPropertyService(ps PropertyStore, us UserStore) *PropertyService {
	return &PropertyService{
		properties: ps,
		users:      us,
	}
}

func (s *PropertyService) SetupDatabase(ctx context.Context) error {
	if err := s.properties.CreateTable(ctx); err != nil {
		if errors.Is(err, repository.ErrDuplicateAddresses) {
			logger.Log.WithError(err).Error("unique address index could not be built over existing rows")
			return &AppError{
				StatusCode: http.StatusConflict,
				Code:       ErrCodeDatabaseSetup,
				Message:    "existing properties share an address and zip code; remove the duplicates and retry",
				Err:        err,
			}
		}
		return &AppError{
			StatusCode: http.StatusInternalServerError,
			Code:       ErrCodeDatabaseSetup,
			Message:    err.Error(),
			Err:        err,
		}
	}
	logger.Log.Info("properties schema is in place")
	return nil
}

// CreateProperty checks the landlord, rejects duplicates and inserts the
// listing. Each step stops the request on failure.
func (s *PropertyService) CreateProperty(ctx context.Context, req *model.CreatePropertyRequest) (*model.Property, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"landlord_id": req.LandlordID,
		"zip_code":    req.ZipCode,
	})

	// 1) Landlord must exist and hold the landlord role.
	user, err := s.users.GetByID(ctx, req.LandlordID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errLandlordNotFound(req.LandlordID)
		}
		return nil, errInternal("failed to look up landlord", err)
	}
	if !user.IsLandlord() {
		return nil, errNotALandlord(req.LandlordID)
	}

	// 2) Address + zip must be new.
	existingID, err := s.properties.FindDuplicate(ctx, req.Address, req.ZipCode)
	switch {
	case err == nil:
		return nil, errDuplicate(existingID)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, errInternal("failed to check for duplicate property", err)
	}

	// 3) Insert.
	p := req.Property()
	if err := s.properties.Create(ctx, p); err != nil {
		switch {
		case repository.IsForeignKeyViolation(err):
			return nil, errInvalidLandlordID(err)
		case repository.IsUniqueViolation(err):
			// Lost a race with a concurrent create of the same address.
			if id, lookupErr := s.properties.FindDuplicate(ctx, req.Address, req.ZipCode); lookupErr == nil {
				return nil, errDuplicate(id)
			}
			return nil, errDuplicate(0)
		}
		return nil, errInternal("failed to create property", err)
	}

	log.WithField("property_id", p.ID).Info("property created")
	return p, nil
}

func (s *PropertyService) GetProperty(ctx context.Context, id int64) (*model.PropertyDetail, error) {
	item, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errPropertyNotFound(id)
		}
		return nil, errInternal("failed to fetch property", err)
	}
	detail := item.Detail()
	return &detail, nil
}

// SearchProperties runs the page and count queries concurrently and waits
// for both.
func (s *PropertyService) SearchProperties(ctx context.Context, params model.SearchParams) (*model.SearchResult, error) {
	var (
		page  []model.PropertyListItem
		total int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = s.properties.Search(gctx, params)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.properties.Count(gctx, params)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, errInternal("failed to search properties", err)
	}

	if page == nil {
		page = []model.PropertyListItem{}
	}
	return &model.SearchResult{
		Properties: page,
		Pagination: model.NewPagination(total, params.Limit, params.Offset),
		FiltersApplied: model.FiltersApplied{
			SearchFilters: params.SearchFilters,
			SortBy:        params.SortBy,
		},
	}, nil
}

func (s *PropertyService) Stats(ctx context.Context) (*model.PropertyStats, error) {
	stats, err := s.properties.Stats(ctx)
	if err != nil {
		return nil, errInternal("failed to compute property statistics", err)
	}
	stats.VerificationRate = verificationRate(stats.VerifiedProperties, stats.TotalProperties)
	return stats, nil
}

// verificationRate is the verified share as a whole percentage.
func verificationRate(verified, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(verified) * 100 / float64(total)))
}
