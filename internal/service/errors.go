package service

import (
	"fmt"
	"net/http"
)

const (
	ErrCodeInvalidPayload    = "invalid_payload"
	ErrCodeValidation        = "validation_error"
	ErrCodeInvalidID         = "invalid_id"
	ErrCodeInvalidLandlordID = "invalid_landlord_id"
	ErrCodeNotALandlord      = "not_a_landlord"
	ErrCodeLandlordNotFound  = "landlord_not_found"
	ErrCodePropertyNotFound  = "property_not_found"
	ErrCodePhotoNotFound     = "photo_not_found"
	ErrCodeDuplicateProperty = "duplicate_property"
	ErrCodeDatabaseSetup     = "database_setup_failed"
	ErrCodeInternal          = "internal_server_error"
)

// AppError carries everything a handler needs to answer a failed request.
// Err is logged, never sent to the client.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Details    any
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

type DuplicateDetails struct {
	ExistingPropertyID int64 `json:"existing_property_id"`
}

func errLandlordNotFound(id int64) *AppError {
	return &AppError{
		StatusCode: http.StatusNotFound,
		Code:       ErrCodeLandlordNotFound,
		Message:    fmt.Sprintf("landlord %d not found", id),
	}
}

func errNotALandlord(id int64) *AppError {
	return &AppError{
		StatusCode: http.StatusForbidden,
		Code:       ErrCodeNotALandlord,
		Message:    fmt.Sprintf("user %d is not a landlord", id),
	}
}

func errDuplicate(existingID int64) *AppError {
	return &AppError{
		StatusCode: http.StatusConflict,
		Code:       ErrCodeDuplicateProperty,
		Message:    "a property with this address and zip code already exists",
		Details:    DuplicateDetails{ExistingPropertyID: existingID},
	}
}

func errInvalidLandlordID(err error) *AppError {
	return &AppError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrCodeInvalidLandlordID,
		Message:    "invalid landlord_id",
		Err:        err,
	}
}

func errPropertyNotFound(id int64) *AppError {
	return &AppError{
		StatusCode: http.StatusNotFound,
		Code:       ErrCodePropertyNotFound,
		Message:    fmt.Sprintf("property %d not found", id),
	}
}

func errInternal(message string, err error) *AppError {
	return &AppError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrCodeInternal,
		Message:    message,
		Err:        err,
	}
}
