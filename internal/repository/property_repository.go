package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/JohirU-coder/landlord-property-service/internal/model"
)

type PropertyRepository struct {
	DB *sqlx.DB
}

func NewPropertyRepository(db *sqlx.DB) *PropertyRepository {
	return &PropertyRepository{DB: db}
}

// Create inserts the property as unverified and fills p with the stored row.
func (r *PropertyRepository) Create(ctx context.Context, p *model.Property) error {
	const q = `
		INSERT INTO properties
			(address, city, state, zip_code, rent_amount, bedrooms, bathrooms,
			 square_feet, description, landlord_id, landlord_verified)
		VALUES
			($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, FALSE)
		RETURNING id, address, city, state, zip_code, rent_amount, bedrooms,
			bathrooms, square_feet, description, landlord_id, landlord_verified,
			created_at, updated_at`

	err := r.DB.QueryRowxContext(ctx, q,
		p.Address,
		p.City,
		p.State,
		p.ZipCode,
		p.RentAmount,
		p.Bedrooms,
		p.Bathrooms,
		p.SquareFeet,
		p.Description,
		p.LandlordID,
	).StructScan(p)
	if err != nil {
		return fmt.Errorf("PropertyRepository.Create: %w", err)
	}
	return nil
}

// GetByID returns the property with its landlord's display fields.
func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*model.PropertyListItem, error) {
	q := "SELECT" + propertyColumns + "," + landlordColumns + propertyFromJoin + " WHERE p.id = $1"

	var item model.PropertyListItem
	if err := r.DB.GetContext(ctx, &item, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("PropertyRepository.GetByID: %w", err)
	}
	return &item, nil
}

func (r *PropertyRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	const q = `SELECT EXISTS(SELECT 1 FROM properties WHERE id = $1)`
	if err := r.DB.GetContext(ctx, &exists, q, id); err != nil {
		return false, fmt.Errorf("PropertyRepository.Exists: %w", err)
	}
	return exists, nil
}

// FindDuplicate returns the id of a property with the same address and zip
// code, compared case-insensitively, or ErrNotFound.
func (r *PropertyRepository) FindDuplicate(ctx context.Context, address, zipCode string) (int64, error) {
	const q = `
		SELECT id FROM properties
		WHERE LOWER(address) = LOWER($1) AND LOWER(zip_code) = LOWER($2)
		ORDER BY id
		LIMIT 1`

	var id int64
	if err := r.DB.GetContext(ctx, &id, q, address, zipCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("PropertyRepository.FindDuplicate: %w", err)
	}
	return id, nil
}

// Search returns one page of properties matching params.
func (r *PropertyRepository) Search(ctx context.Context, params model.SearchParams) ([]model.PropertyListItem, error) {
	q, args, _, _ := buildSearchQueries(params)

	list := []model.PropertyListItem{}
	if err := r.DB.SelectContext(ctx, &list, q, args...); err != nil {
		return nil, fmt.Errorf("PropertyRepository.Search: %w", err)
	}
	return list, nil
}

// Count returns how many properties match the filters of params,
// ignoring its pagination.
func (r *PropertyRepository) Count(ctx context.Context, params model.SearchParams) (int, error) {
	_, _, q, args := buildSearchQueries(params)

	var total int
	if err := r.DB.GetContext(ctx, &total, q, args...); err != nil {
		return 0, fmt.Errorf("PropertyRepository.Count: %w", err)
	}
	return total, nil
}

// Stats aggregates over properties that have a rent amount. Averages, min
// and max are NULL when there is nothing to aggregate.
func (r *PropertyRepository) Stats(ctx context.Context) (*model.PropertyStats, error) {
	const q = `
		SELECT
			COUNT(*)                                    AS total_properties,
			COUNT(*) FILTER (WHERE landlord_verified)   AS verified_properties,
			ROUND(AVG(rent_amount), 2)                  AS average_rent,
			MIN(rent_amount)                            AS min_rent,
			MAX(rent_amount)                            AS max_rent,
			ROUND(AVG(bedrooms), 1)                     AS average_bedrooms,
			ROUND(AVG(bathrooms), 1)                    AS average_bathrooms,
			ROUND(AVG(square_feet))::INTEGER            AS average_square_feet,
			COUNT(DISTINCT city)                        AS unique_cities,
			COUNT(DISTINCT state)                       AS unique_states
		FROM properties
		WHERE rent_amount IS NOT NULL`

	var stats model.PropertyStats
	if err := r.DB.GetContext(ctx, &stats, q); err != nil {
		return nil, fmt.Errorf("PropertyRepository.Stats: %w", err)
	}
	return &stats, nil
}
