package models

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username,omitempty"`
	AppID    int32  `json:"app_id,omitempty"`
}

// RegisterRequest is the registration request body.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username,omitempty"`
}

// LoginResponse covers both server flavours: the token mode returns
// {"token": "..."}, the cookie mode returns {"status": "login_success"}
// and sets the session cookie. Some servers also embed the profile.
type LoginResponse struct {
	Token  string      `json:"token,omitempty"`
	Status string      `json:"status,omitempty"`
	User   *RawProfile `json:"user,omitempty"`
}

// UpdateProfileRequest changes only the fields that are non-nil.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}
