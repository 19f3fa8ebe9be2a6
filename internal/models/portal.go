package models

import "time"

// FAQ is a portal-owned FAQ entry
type FAQ struct {
	ID        int       `json:"id"`
	Category  string    `json:"category"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	SortOrder int       `json:"sort_order"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContactSubmission is a contact / quote request submitted through the
// marketing site
type ContactSubmission struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone,omitempty"`
	Suburb          string    `json:"suburb,omitempty"`
	ServiceType     string    `json:"service_type,omitempty"`
	PreferredMethod string    `json:"preferred_contact_method,omitempty"`
	Message         string    `json:"message"`
	CreatedAt       time.Time `json:"created_at"`
}
