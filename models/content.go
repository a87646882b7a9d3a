package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Homepage content tables. Plain CRUD managed by super admins; no lifecycle.

// HeroContent is a homepage hero slide
type HeroContent struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Subtitle     *string   `json:"subtitle"`
	ImagePath    *string   `json:"image_path"`
	CtaText      *string   `json:"cta_text"`
	CtaLink      *string   `json:"cta_link"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (HeroContent) TableName() string { return "hero_content" }

func (h *HeroContent) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

// AboutUs is the single about-us block shown on the homepage
type AboutUs struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImagePath *string   `json:"image_path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AboutUs) TableName() string { return "about_us" }

func (a *AboutUs) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Company is a partner logo shown on the homepage
type Company struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	LogoPath     *string   `json:"logo_path"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Company) TableName() string { return "companies" }

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// SocialMediaLink is a footer social link
type SocialMediaLink struct {
	ID           string    `gorm:"primaryKey;type:uuid" json:"id"`
	Platform     string    `gorm:"not null" json:"platform"`
	URL          string    `gorm:"not null" json:"url"`
	IconName     *string   `json:"icon_name"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (SocialMediaLink) TableName() string { return "social_media_links" }

func (s *SocialMediaLink) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// TermsPolicy holds the terms-of-service or privacy-policy document, keyed
// by type ("terms" or "privacy").
type TermsPolicy struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Type      string    `gorm:"uniqueIndex;not null" json:"type"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TermsPolicy) TableName() string { return "terms_policies" }

func (t *TermsPolicy) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
