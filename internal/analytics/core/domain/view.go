package domain

import "time"

type UserRef struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
}

// FullName joins first and last name with a single space, even when both are empty.
func (u UserRef) FullName() string {
	return u.FirstName + " " + u.LastName
}

type CountryRef struct {
	ID   int64
	Name string
	Code string
}

type BlogRef struct {
	ID        int64
	Title     string
	CreatedAt time.Time
	Author    *UserRef
	Country   *CountryRef
}

// ViewRecord is one row of blog_views joined with its blog, viewer and country.
// User and Country are nil when the view has no viewer / no country.
type ViewRecord struct {
	ID       int64
	Blog     BlogRef
	User     *UserRef
	Country  *CountryRef
	ViewedAt time.Time
	Duration int // seconds
}

type BlogRecord struct {
	ID        int64
	Title     string
	AuthorID  int64
	CountryID *int64
	CreatedAt time.Time
}
