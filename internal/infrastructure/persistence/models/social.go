package models

import (
	"github.com/tlsy/handicrafts/internal/domain/social"
)

// SocialLinkModel is the persistence model for a SocialLink.
type SocialLinkModel struct {
	BaseModel
	Platform string `gorm:"type:varchar(50);not null"`
	URL      string `gorm:"column:url;type:text;not null"`
	IsActive bool   `gorm:"not null;index"`
	IconName string `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (SocialLinkModel) TableName() string {
	return "social_links"
}

// ToDomain converts the persistence model to a domain SocialLink.
func (m *SocialLinkModel) ToDomain() *social.SocialLink {
	return &social.SocialLink{
		BaseEntity: m.BaseModel.ToDomain(),
		Platform:   m.Platform,
		URL:        m.URL,
		IsActive:   m.IsActive,
		IconName:   m.IconName,
	}
}

// SocialLinkModelFromDomain creates a persistence model from a domain SocialLink.
func SocialLinkModelFromDomain(l *social.SocialLink) *SocialLinkModel {
	m := &SocialLinkModel{
		Platform: l.Platform,
		URL:      l.URL,
		IsActive: l.IsActive,
		IconName: l.IconName,
	}
	m.FromDomainBaseEntity(l.BaseEntity)
	return m
}
