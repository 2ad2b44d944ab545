package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySessionID filters messages (or progress rows) by their session.
type BySessionID struct {
	SessionID uuid.UUID
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}

// OwnedByUser scopes a query to the caller's identity.
type OwnedByUser struct {
	UserID uuid.UUID
}

func (s OwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// Classified keeps sessions whose homework has been submitted. Title-only
// drafts still walking the setup dialogue stay out of listings.
type Classified struct{}

func (s Classified) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subject <> ''")
}

// ActiveOnly keeps sessions still being worked on.
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// BySubject filters progress rows by subject tag.
type BySubject struct {
	Subject string
}

func (s BySubject) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subject = ?", s.Subject)
}
