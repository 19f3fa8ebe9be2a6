package models

// UserProfile is the authenticated user's profile as delivered by the API
// and persisted in the session store
type UserProfile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	UserType      string `json:"user_type"`
	ClientType    string `json:"client_type"`
	IsNDISClient  *bool  `json:"is_ndis_client,omitempty"`
	AuthProvider  string `json:"auth_provider"`
	EmailVerified bool   `json:"email_verified"`
	NDISNumber    string `json:"ndis_number,omitempty"`
	Phone         string `json:"phone,omitempty"`
}
