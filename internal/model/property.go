package model

import "time"

type Property struct {
	ID               int64     `db:"id" json:"id"`
	Address          string    `db:"address" json:"address"`
	City             string    `db:"city" json:"city"`
	State            string    `db:"state" json:"state"`
	ZipCode          string    `db:"zip_code" json:"zip_code"`
	RentAmount       *float64  `db:"rent_amount" json:"rent_amount"`
	Bedrooms         *int      `db:"bedrooms" json:"bedrooms"`
	Bathrooms        *float64  `db:"bathrooms" json:"bathrooms"`
	SquareFeet       *int      `db:"square_feet" json:"square_feet"`
	Description      *string   `db:"description" json:"description"`
	LandlordID       int64     `db:"landlord_id" json:"landlord_id"`
	LandlordVerified bool      `db:"landlord_verified" json:"landlord_verified"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// PropertyListItem is a search row: the property plus the landlord's
// display fields flattened next to it.
type PropertyListItem struct {
	Property
	LandlordFirstName *string `db:"landlord_first_name" json:"landlord_first_name"`
	LandlordLastName  *string `db:"landlord_last_name" json:"landlord_last_name"`
	LandlordEmail     *string `db:"landlord_email" json:"landlord_email"`
}

type Landlord struct {
	ID        int64   `json:"id"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
}

// PropertyDetail is returned by the single-property lookup.
type PropertyDetail struct {
	Property
	Landlord Landlord `json:"landlord"`
}

// Detail nests the flattened landlord columns.
func (p PropertyListItem) Detail() PropertyDetail {
	return PropertyDetail{
		Property: p.Property,
		Landlord: Landlord{
			ID:        p.LandlordID,
			FirstName: p.LandlordFirstName,
			LastName:  p.LandlordLastName,
			Email:     p.LandlordEmail,
		},
	}
}

type PropertyStats struct {
	TotalProperties    int64    `db:"total_properties" json:"total_properties"`
	VerifiedProperties int64    `db:"verified_properties" json:"verified_properties"`
	VerificationRate   int      `db:"-" json:"verification_rate"`
	AverageRent        *float64 `db:"average_rent" json:"average_rent"`
	MinRent            *float64 `db:"min_rent" json:"min_rent"`
	MaxRent            *float64 `db:"max_rent" json:"max_rent"`
	AverageBedrooms    *float64 `db:"average_bedrooms" json:"average_bedrooms"`
	AverageBathrooms   *float64 `db:"average_bathrooms" json:"average_bathrooms"`
	AverageSquareFeet  *int64   `db:"average_square_feet" json:"average_square_feet"`
	UniqueCities       int64    `db:"unique_cities" json:"unique_cities"`
	UniqueStates       int64    `db:"unique_states" json:"unique_states"`
}
