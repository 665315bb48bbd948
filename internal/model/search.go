package model

const (
	SortRentAsc  = "rent_asc"
	SortRentDesc = "rent_desc"
	SortNewest   = "newest"
	SortOldest   = "oldest"
	SortSqftAsc  = "sqft_asc"
	SortSqftDesc = "sqft_desc"

	DefaultSort   = SortNewest
	DefaultLimit  = 20
	MaxLimit      = 100
	DefaultOffset = 0
)

// SearchFilters holds the optional search predicates. A nil field imposes
// no constraint. The JSON form is echoed back as filters_applied.
type SearchFilters struct {
	City             *string  `json:"city,omitempty" validate:"omitnil,max=100"`
	State            *string  `json:"state,omitempty" validate:"omitnil,max=50"`
	ZipCode          *string  `json:"zip_code,omitempty" validate:"omitnil,zipcode"`
	MinRent          *float64 `json:"min_rent,omitempty" validate:"omitnil,gte=0,lte=50000"`
	MaxRent          *float64 `json:"max_rent,omitempty" validate:"omitnil,gte=0,lte=50000"`
	MinBedrooms      *int     `json:"min_bedrooms,omitempty" validate:"omitnil,gte=0,lte=20"`
	MaxBedrooms      *int     `json:"max_bedrooms,omitempty" validate:"omitnil,gte=0,lte=20"`
	MinBathrooms     *float64 `json:"min_bathrooms,omitempty" validate:"omitnil,gte=0,lte=20"`
	MaxBathrooms     *float64 `json:"max_bathrooms,omitempty" validate:"omitnil,gte=0,lte=20"`
	MinSqft          *int     `json:"min_sqft,omitempty" validate:"omitnil,gte=0,lte=50000"`
	MaxSqft          *int     `json:"max_sqft,omitempty" validate:"omitnil,gte=0,lte=50000"`
	LandlordVerified *bool    `json:"landlord_verified,omitempty"`
}

type SearchParams struct {
	SearchFilters
	SortBy string `json:"sort_by" validate:"oneof=rent_asc rent_desc newest oldest sqft_asc sqft_desc"`
	Limit  int    `json:"limit" validate:"gte=1,lte=100"`
	Offset int    `json:"offset" validate:"gte=0"`
}

func DefaultSearchParams() SearchParams {
	return SearchParams{
		SortBy: DefaultSort,
		Limit:  DefaultLimit,
		Offset: DefaultOffset,
	}
}

type Pagination struct {
	TotalCount  int  `json:"total_count"`
	TotalPages  int  `json:"total_pages"`
	CurrentPage int  `json:"current_page"`
	Limit       int  `json:"limit"`
	Offset      int  `json:"offset"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// NewPagination derives page metadata. limit must be positive.
func NewPagination(total, limit, offset int) Pagination {
	return Pagination{
		TotalCount:  total,
		TotalPages:  (total + limit - 1) / limit,
		CurrentPage: offset/limit + 1,
		Limit:       limit,
		Offset:      offset,
		HasNext:     offset+limit < total,
		HasPrevious: offset > 0,
	}
}

type FiltersApplied struct {
	SearchFilters
	SortBy string `json:"sort_by"`
}

type SearchResult struct {
	Properties     []PropertyListItem `json:"properties"`
	Pagination     Pagination         `json:"pagination"`
	FiltersApplied FiltersApplied     `json:"filters_applied"`
}
