package models

import "time"

// UserProfile is the normalized user record. Optional string fields default
// to "" and missing timestamps stay nil.
type UserProfile struct {
	UserID    int64
	Email     string
	Username  string
	FirstName string
	LastName  string
	AvatarURL string
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// Clone returns a deep copy of p (nil-safe).
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	c := *p
	if p.CreatedAt != nil {
		t := *p.CreatedAt
		c.CreatedAt = &t
	}
	if p.UpdatedAt != nil {
		t := *p.UpdatedAt
		c.UpdatedAt = &t
	}
	return &c
}

// DisplayName is what the shell prints in its prompt.
func (p *UserProfile) DisplayName() string {
	if p == nil {
		return ""
	}
	if p.Username != "" {
		return p.Username
	}
	return p.Email
}

// RawProfile is the profile payload as the server sends it. A nil field
// means the server omitted it.
type RawProfile struct {
	UserID    *int64     `json:"user_id,omitempty"`
	Email     *string    `json:"email,omitempty"`
	Username  *string    `json:"username,omitempty"`
	FirstName *string    `json:"first_name,omitempty"`
	LastName  *string    `json:"last_name,omitempty"`
	AvatarURL *string    `json:"avatar_url,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
