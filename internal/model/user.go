package model

const RoleLandlord = "landlord"

// User is a row of the externally owned users table. Only the columns this
// service reads are mapped.
type User struct {
	ID        int64   `db:"id" json:"id"`
	Role      string  `db:"role" json:"role"`
	FirstName *string `db:"first_name" json:"first_name"`
	LastName  *string `db:"last_name" json:"last_name"`
	Email     *string `db:"email" json:"email"`
}

func (u *User) IsLandlord() bool {
	return u.Role == RoleLandlord
}
