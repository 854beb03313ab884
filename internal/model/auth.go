package model

// LoginData holds email/password credentials.
type LoginData struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterData is the account creation payload as callers build it.
// CompanyID uses the internal camel-case name; the gateway renames it to
// company_id before transmission.
type RegisterData struct {
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Password  string         `json:"password"`
	Role      Role           `json:"role"`
	CompanyID string         `json:"companyId,omitempty"`
	Company   *CompanyCreate `json:"company,omitempty"`
}

// AuthResponse is what every credential exchange returns. It is the unit
// the session persists.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// SocialLoginRequest is the body of the Google sign-in exchange.
type SocialLoginRequest struct {
	Role Role `json:"role"`
}
