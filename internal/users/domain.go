package users

import "time"

// User is a directory record. Email is globally unique.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
	CreatedBy string
	UpdatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName concatenates first and last name.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
