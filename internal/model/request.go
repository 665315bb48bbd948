package model

import "strings"

// CreatePropertyRequest is the body of POST /properties. There is no
// landlord_verified field; new listings start unverified.
type CreatePropertyRequest struct {
	Address     string   `json:"address" validate:"required,max=255"`
	City        string   `json:"city" validate:"required,max=100"`
	State       string   `json:"state" validate:"required,min=2,max=50"`
	ZipCode     string   `json:"zip_code" validate:"required,zipcode"`
	RentAmount  *float64 `json:"rent_amount" validate:"omitnil,gt=0,lte=50000,decimals=2"`
	Bedrooms    *int     `json:"bedrooms" validate:"omitnil,gte=0,lte=20"`
	Bathrooms   *float64 `json:"bathrooms" validate:"omitnil,gte=0,lte=20,decimals=1"`
	SquareFeet  *int     `json:"square_feet" validate:"omitnil,gt=0,lte=50000"`
	Description *string  `json:"description" validate:"omitnil,max=2000"`
	LandlordID  int64    `json:"landlord_id" validate:"required,gt=0"`
}

// Normalize trims surrounding whitespace from every text field.
func (r *CreatePropertyRequest) Normalize() {
	r.Address = strings.TrimSpace(r.Address)
	r.City = strings.TrimSpace(r.City)
	r.State = strings.TrimSpace(r.State)
	r.ZipCode = strings.TrimSpace(r.ZipCode)
	if r.Description != nil {
		d := strings.TrimSpace(*r.Description)
		r.Description = &d
	}
}

// Property builds the row to insert.
func (r *CreatePropertyRequest) Property() *Property {
	return &Property{
		Address:     r.Address,
		City:        r.City,
		State:       r.State,
		ZipCode:     r.ZipCode,
		RentAmount:  r.RentAmount,
		Bedrooms:    r.Bedrooms,
		Bathrooms:   r.Bathrooms,
		SquareFeet:  r.SquareFeet,
		Description: r.Description,
		LandlordID:  r.LandlordID,
	}
}
