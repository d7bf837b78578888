package models

import "time"

// Member represents a registered member of the association.
//
// ReferenceNumber is the externally visible identifier, assigned from a
// database sequence and never reused. FullName is a stored generated column
// (first_name || ' ' || last_name) and is never written by the application.
type Member struct {
	ID              int64        `json:"id" db:"id"`
	FirstName       string       `json:"first_name" db:"first_name" binding:"required"`
	LastName        string       `json:"last_name" db:"last_name" binding:"required"`
	FullName        string       `json:"full_name" db:"full_name"`
	City            string       `json:"city" db:"city" binding:"required"`
	StreetAddress   *string      `json:"street_address,omitempty" db:"street_address"`
	PostalCode      *string      `json:"postal_code,omitempty" db:"postal_code"`
	Phone           *string      `json:"phone,omitempty" db:"phone"`
	Email           *string      `json:"email,omitempty" db:"email"`
	Notes           *string      `json:"notes,omitempty" db:"notes"`
	NoPostalMail    bool         `json:"no_postal_mail" db:"no_postal_mail"`
	ReferenceNumber int64        `json:"reference_number" db:"reference_number"`
	CreatedAt       time.Time    `json:"created_at" db:"created_at"`
	ModifiedAt      time.Time    `json:"modified_at" db:"modified_at"`
	Memberships     []Membership `json:"memberships"`
}
