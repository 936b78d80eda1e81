package model

import "time"

// Treasurer represents a bookkeeping user account. Accounts start unapproved
// and cannot act until an administrator approves them. Credential and session
// handling live outside this service; only the approval state machine is
// modeled here.
type Treasurer struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	PhoneNumber  string    `json:"phoneNumber,omitempty"`
	ChurchBranch string    `json:"churchBranch,omitempty"`
	Position     string    `json:"position"`
	IsApproved   bool      `json:"isApproved"`
	IsAdmin      bool      `json:"isAdmin"`
	IsActive     bool      `json:"isActive"`
	DateCreated  time.Time `json:"dateCreated"`
}

// FullName returns "First Last" when both are set, otherwise the username.
func (t Treasurer) FullName() string {
	if t.FirstName != "" && t.LastName != "" {
		return t.FirstName + " " + t.LastName
	}
	return t.Username
}
