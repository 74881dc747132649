package services

import (
	"time"

	"github.com/dmitrijs2005/gochat/internal/client/models"
)

// NormalizeProfile maps a server payload to the internal profile shape.
// It is total: a nil payload yields nil, every absent field yields its
// default ("" for strings, nil for timestamps, 0 for the id).
func NormalizeProfile(raw *models.RawProfile) *models.UserProfile {
	if raw == nil {
		return nil
	}
	return MergeProfile(&models.UserProfile{}, raw)
}

// MergeProfile returns a copy of base with every field present in raw
// applied on top. base may be nil.
func MergeProfile(base *models.UserProfile, raw *models.RawProfile) *models.UserProfile {
	p := base.Clone()
	if p == nil {
		p = &models.UserProfile{}
	}
	if raw == nil {
		return p
	}

	if raw.UserID != nil {
		p.UserID = *raw.UserID
	}
	setString(&p.Email, raw.Email)
	setString(&p.Username, raw.Username)
	setString(&p.FirstName, raw.FirstName)
	setString(&p.LastName, raw.LastName)
	setString(&p.AvatarURL, raw.AvatarURL)
	setTime(&p.CreatedAt, raw.CreatedAt)
	setTime(&p.UpdatedAt, raw.UpdatedAt)

	return p
}

// validProfile reports whether p identifies a user at all.
func validProfile(p *models.UserProfile) bool {
	return p != nil && (p.UserID != 0 || p.Username != "" || p.Email != "")
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setTime(dst **time.Time, src *time.Time) {
	if src != nil {
		t := *src
		*dst = &t
	}
}
