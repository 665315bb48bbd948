package validation

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/JohirU-coder/landlord-property-service/internal/model"
)

var zipCodePattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// FieldError is one entry of a validation_error response.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Errors is returned when input fails validation. It always holds at least
// one FieldError.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Message)
	}
	return strings.Join(parts, "; ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("zipcode", func(fl validator.FieldLevel) bool {
		return zipCodePattern.MatchString(fl.Field().String())
	})

	// decimals=N: no more than N digits after the decimal point.
	_ = v.RegisterValidation("decimals", func(fl validator.FieldLevel) bool {
		places, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		scale := math.Pow10(places)
		scaled := fl.Field().Float() * scale
		return math.Abs(scaled-math.Round(scaled)) < 1e-6
	})

	v.RegisterStructValidation(searchRangeValidation, model.SearchParams{})
	return v
}

// searchRangeValidation checks the min/max pairs. Bedrooms accept an equal
// bound; rent, bathrooms and square feet require max to exceed min.
func searchRangeValidation(sl validator.StructLevel) {
	p := sl.Current().Interface().(model.SearchParams)

	if p.MinRent != nil && p.MaxRent != nil && *p.MaxRent <= *p.MinRent {
		sl.ReportError(p.MaxRent, "max_rent", "MaxRent", "gtfield", "min_rent")
	}
	if p.MinBedrooms != nil && p.MaxBedrooms != nil && *p.MaxBedrooms < *p.MinBedrooms {
		sl.ReportError(p.MaxBedrooms, "max_bedrooms", "MaxBedrooms", "gtefield", "min_bedrooms")
	}
	if p.MinBathrooms != nil && p.MaxBathrooms != nil && *p.MaxBathrooms <= *p.MinBathrooms {
		sl.ReportError(p.MaxBathrooms, "max_bathrooms", "MaxBathrooms", "gtfield", "min_bathrooms")
	}
	if p.MinSqft != nil && p.MaxSqft != nil && *p.MaxSqft <= *p.MinSqft {
		sl.ReportError(p.MaxSqft, "max_sqft", "MaxSqft", "gtfield", "min_sqft")
	}
}

// Struct runs the validate tags of s and converts failures into Errors.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return formatValidationErrors(verrs)
	}
	return err
}

func formatValidationErrors(errs validator.ValidationErrors) Errors {
	details := make(Errors, 0, len(errs))
	for _, err := range errs {
		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("Field '%s' is required", err.Field())
		case "min":
			message = fmt.Sprintf("Field '%s' must be at least %s in length", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("Field '%s' must not exceed %s in length", err.Field(), err.Param())
		case "gt":
			message = fmt.Sprintf("Field '%s' must be greater than %s", err.Field(), err.Param())
		case "gte":
			message = fmt.Sprintf("Field '%s' must be at least %s", err.Field(), err.Param())
		case "lte":
			message = fmt.Sprintf("Field '%s' must not exceed %s", err.Field(), err.Param())
		case "gtfield":
			message = fmt.Sprintf("Field '%s' must be greater than '%s'", err.Field(), err.Param())
		case "gtefield":
			message = fmt.Sprintf("Field '%s' must be greater than or equal to '%s'", err.Field(), err.Param())
		case "oneof":
			message = fmt.Sprintf("Field '%s' must be one of [%s]", err.Field(), err.Param())
		case "zipcode":
			message = fmt.Sprintf("Field '%s' must be a 5-digit or ZIP+4 US zip code", err.Field())
		case "decimals":
			message = fmt.Sprintf("Field '%s' must have at most %s decimal places", err.Field(), err.Param())
		default:
			message = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", err.Field(), err.Tag())
		}
		details = append(details, FieldError{
			Field:   err.Field(),
			Message: message,
			Code:    "validation_" + err.Tag(),
		})
	}
	return details
}

// CreateProperty normalizes and validates a create request.
func CreateProperty(req *model.CreatePropertyRequest) error {
	req.Normalize()
	return Struct(req)
}

// SearchParams parses the search query string. Parse failures and bound
// violations are collected together so the caller sees every problem at
// once. Parameters that are absent or blank keep their defaults.
func SearchParams(q url.Values) (model.SearchParams, error) {
	p := model.DefaultSearchParams()
	var parseErrs Errors

	p.City = stringParam(q, "city")
	p.State = stringParam(q, "state")
	p.ZipCode = stringParam(q, "zip_code")

	p.MinRent = floatParam(q, "min_rent", &parseErrs)
	p.MaxRent = floatParam(q, "max_rent", &parseErrs)
	p.MinBedrooms = intParam(q, "min_bedrooms", &parseErrs)
	p.MaxBedrooms = intParam(q, "max_bedrooms", &parseErrs)
	p.MinBathrooms = floatParam(q, "min_bathrooms", &parseErrs)
	p.MaxBathrooms = floatParam(q, "max_bathrooms", &parseErrs)
	p.MinSqft = intParam(q, "min_sqft", &parseErrs)
	p.MaxSqft = intParam(q, "max_sqft", &parseErrs)
	p.LandlordVerified = boolParam(q, "landlord_verified", &parseErrs)

	if s := stringParam(q, "sort_by"); s != nil {
		p.SortBy = *s
	}
	if v := intParam(q, "limit", &parseErrs); v != nil {
		p.Limit = *v
	}
	if v := intParam(q, "offset", &parseErrs); v != nil {
		p.Offset = *v
	}

	// Fields that failed to parse are nil, so Struct only reports on the
	// ones that did parse.
	err := Struct(p)
	if err != nil {
		var verrs Errors
		if !errors.As(err, &verrs) {
			return p, err
		}
		parseErrs = append(parseErrs, verrs...)
	}
	if len(parseErrs) > 0 {
		return p, parseErrs
	}
	return p, nil
}

func stringParam(q url.Values, name string) *string {
	v := strings.TrimSpace(q.Get(name))
	if v == "" {
		return nil
	}
	return &v
}

func floatParam(q url.Values, name string, errs *Errors) *float64 {
	raw := stringParam(q, name)
	if raw == nil {
		return nil
	}
	v, err := strconv.ParseFloat(*raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		*errs = append(*errs, typeError(name, "a number"))
		return nil
	}
	return &v
}

func intParam(q url.Values, name string, errs *Errors) *int {
	raw := stringParam(q, name)
	if raw == nil {
		return nil
	}
	v, err := strconv.Atoi(*raw)
	if err != nil {
		*errs = append(*errs, typeError(name, "an integer"))
		return nil
	}
	return &v
}

func boolParam(q url.Values, name string, errs *Errors) *bool {
	raw := stringParam(q, name)
	if raw == nil {
		return nil
	}
	switch strings.ToLower(*raw) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	*errs = append(*errs, typeError(name, "true or false"))
	return nil
}

func typeError(field, want string) FieldError {
	return FieldError{
		Field:   field,
		Message: fmt.Sprintf("Field '%s' must be %s", field, want),
		Code:    "validation_type",
	}
}
