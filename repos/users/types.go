package users

import "time"

// Warning is an admin-issued note on a user record.
type Warning struct {
	Message  string    `firestore:"Message" json:"message"`
	IssuedBy string    `firestore:"IssuedBy" json:"issuedBy"`
	IssuedAt time.Time `firestore:"IssuedAt" json:"issuedAt"`
}

// User is an identity document. Users are never hard-deleted; admins
// deactivate or restrict them instead.
type User struct {
	ID              string    `firestore:"ID" json:"id"`
	Email           string    `firestore:"Email" json:"email"`
	CollegeID       string    `firestore:"CollegeID" json:"collegeId"`
	PasswordHash    string    `firestore:"PasswordHash" json:"-"`
	FullName        string    `firestore:"FullName" json:"fullName"`
	Department      string    `firestore:"Department" json:"department,omitempty"`
	YearOfStudy     int       `firestore:"YearOfStudy" json:"yearOfStudy,omitempty"`
	PrimaryRole     string    `firestore:"PrimaryRole" json:"primaryRole"`
	SecondaryRoles  []string  `firestore:"SecondaryRoles" json:"secondaryRoles,omitempty"`
	EmailVerified   bool      `firestore:"EmailVerified" json:"emailVerified"`
	IsActive        bool      `firestore:"IsActive" json:"isActive"`
	RestrictedUntil time.Time `firestore:"RestrictedUntil" json:"restrictedUntil,omitempty"`
	Warnings        []Warning `firestore:"Warnings" json:"warnings,omitempty"`
	LastLogin       time.Time `firestore:"LastLogin" json:"lastLogin,omitempty"`
	LoginCount      int       `firestore:"LoginCount" json:"loginCount"`
	CreatedAt       time.Time `firestore:"CreatedAt" json:"createdAt"`
}

// Restricted reports whether the user is currently under an admin
// restriction.
func (u *User) Restricted(now time.Time) bool {
	return !u.RestrictedUntil.IsZero() && now.Before(u.RestrictedUntil)
}
