package models

import "time"

// User represents a registered account.
type User struct {
	UserID       string    `json:"userId" badgerhold:"key"`
	Email        string    `json:"email"`
	PhoneNum     string    `json:"phoneNum,omitempty"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicProfile returns the user fields safe to expose over the API.
func (u *User) PublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"userId":    u.UserID,
		"email":     u.Email,
		"phoneNum":  u.PhoneNum,
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"createdAt": u.CreatedAt,
	}
}
