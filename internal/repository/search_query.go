package repository

import (
	"fmt"
	"strings"

	"github.com/JohirU-coder/landlord-property-service/internal/model"
)

const propertyColumns = `
	p.id, p.address, p.city, p.state, p.zip_code, p.rent_amount, p.bedrooms,
	p.bathrooms, p.square_feet, p.description, p.landlord_id,
	p.landlord_verified, p.created_at, p.updated_at`

const landlordColumns = `
	u.first_name AS landlord_first_name,
	u.last_name  AS landlord_last_name,
	u.email      AS landlord_email`

const propertyFromJoin = `
	FROM properties p
	JOIN users u ON u.id = p.landlord_id`

var searchOrderings = map[string]string{
	model.SortRentAsc:  "p.rent_amount ASC NULLS LAST, p.id ASC",
	model.SortRentDesc: "p.rent_amount DESC NULLS LAST, p.id DESC",
	model.SortNewest:   "p.created_at DESC, p.id DESC",
	model.SortOldest:   "p.created_at ASC, p.id ASC",
	model.SortSqftAsc:  "p.square_feet ASC NULLS LAST, p.id ASC",
	model.SortSqftDesc: "p.square_feet DESC NULLS LAST, p.id DESC",
}

// predicates collects WHERE clauses and their arguments in placeholder
// order. Each clause is a format string with a single %d for its
// placeholder number.
type predicates struct {
	clauses []string
	args    []interface{}
}

func (p *predicates) add(clause string, arg interface{}) {
	p.args = append(p.args, arg)
	p.clauses = append(p.clauses, fmt.Sprintf(clause, len(p.args)))
}

func (p *predicates) where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.clauses, " AND ")
}

func searchPredicates(f model.SearchFilters) *predicates {
	p := &predicates{}
	if f.City != nil {
		p.add("p.city ILIKE $%d", "%"+escapeLike(*f.City)+"%")
	}
	if f.State != nil {
		p.add("LOWER(p.state) = LOWER($%d)", *f.State)
	}
	if f.ZipCode != nil {
		p.add("p.zip_code = $%d", *f.ZipCode)
	}
	if f.MinRent != nil {
		p.add("p.rent_amount >= $%d", *f.MinRent)
	}
	if f.MaxRent != nil {
		p.add("p.rent_amount <= $%d", *f.MaxRent)
	}
	if f.MinBedrooms != nil {
		p.add("p.bedrooms >= $%d", *f.MinBedrooms)
	}
	if f.MaxBedrooms != nil {
		p.add("p.bedrooms <= $%d", *f.MaxBedrooms)
	}
	if f.MinBathrooms != nil {
		p.add("p.bathrooms >= $%d", *f.MinBathrooms)
	}
	if f.MaxBathrooms != nil {
		p.add("p.bathrooms <= $%d", *f.MaxBathrooms)
	}
	if f.MinSqft != nil {
		p.add("p.square_feet >= $%d", *f.MinSqft)
	}
	if f.MaxSqft != nil {
		p.add("p.square_feet <= $%d", *f.MaxSqft)
	}
	if f.LandlordVerified != nil {
		p.add("p.landlord_verified = $%d", *f.LandlordVerified)
	}
	return p
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// buildSearchQueries returns the page query and the count query for the
// same filters. Only the page query carries LIMIT/OFFSET.
func buildSearchQueries(params model.SearchParams) (page string, pageArgs []interface{}, count string, countArgs []interface{}) {
	p := searchPredicates(params.SearchFilters)

	orderBy, ok := searchOrderings[params.SortBy]
	if !ok {
		orderBy = searchOrderings[model.DefaultSort]
	}

	n := len(p.args)
	page = "SELECT" + propertyColumns + "," + landlordColumns + propertyFromJoin + p.where() +
		" ORDER BY " + orderBy +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)

	pageArgs = make([]interface{}, 0, n+2)
	pageArgs = append(pageArgs, p.args...)
	pageArgs = append(pageArgs, params.Limit, params.Offset)

	count = "SELECT COUNT(*)" + propertyFromJoin + p.where()
	countArgs = p.args
	return page, pageArgs, count, countArgs
}
