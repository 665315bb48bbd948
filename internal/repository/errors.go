package repository

import (
	"errors"

	"github.com/lib/pq"
)

var ErrNotFound = errors.New("not found")

const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

func pqErrorCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign key
// violation, e.g. a landlord deleted between the lookup and the insert.
func IsForeignKeyViolation(err error) bool {
	return pqErrorCode(err) == pqForeignKeyViolation
}

func IsUniqueViolation(err error) bool {
	return pqErrorCode(err) == pqUniqueViolation
}
