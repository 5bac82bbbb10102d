package models

import (
	"github.com/tlsy/handicrafts/internal/domain/profile"
	"github.com/tlsy/handicrafts/internal/domain/shared"
)

// CrafterProfileModel is the persistence model for the single CrafterProfile row.
type CrafterProfileModel struct {
	BaseModel
	CrafterName       string `gorm:"type:varchar(200);not null"`
	CrafterNameTL     string `gorm:"column:crafter_name_tl;type:varchar(200)"`
	Bio               string `gorm:"type:text"`
	BioTL             string `gorm:"column:bio_tl;type:text"`
	ShortBio          string `gorm:"type:text"`
	ShortBioTL        string `gorm:"column:short_bio_tl;type:text"`
	BackgroundStory   string `gorm:"type:text"`
	BackgroundStoryTL string `gorm:"column:background_story_tl;type:text"`
	CraftingProcess   string `gorm:"type:text"`
	CraftingProcessTL string `gorm:"column:crafting_process_tl;type:text"`
	ProfileImageURL   string `gorm:"column:profile_image_url;type:text"`
	YearsExperience   int    `gorm:"not null"`
	Certifications    string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CrafterProfileModel) TableName() string {
	return "crafter_profile"
}

// ToDomain converts the persistence model to a domain CrafterProfile.
func (m *CrafterProfileModel) ToDomain() *profile.CrafterProfile {
	return &profile.CrafterProfile{
		BaseEntity:      m.BaseModel.ToDomain(),
		CrafterName:     localized(m.CrafterName, m.CrafterNameTL),
		Bio:             localized(m.Bio, m.BioTL),
		ShortBio:        localized(m.ShortBio, m.ShortBioTL),
		BackgroundStory: localized(m.BackgroundStory, m.BackgroundStoryTL),
		CraftingProcess: localized(m.CraftingProcess, m.CraftingProcessTL),
		ProfileImageURL: m.ProfileImageURL,
		YearsExperience: m.YearsExperience,
		Certifications:  m.Certifications,
	}
}

// CrafterProfileModelFromDomain creates a persistence model from a domain CrafterProfile.
func CrafterProfileModelFromDomain(p *profile.CrafterProfile) *CrafterProfileModel {
	m := &CrafterProfileModel{}
	m.FromDomainBaseEntity(p.BaseEntity)
	m.CrafterName, m.CrafterNameTL = split(p.CrafterName)
	m.Bio, m.BioTL = split(p.Bio)
	m.ShortBio, m.ShortBioTL = split(p.ShortBio)
	m.BackgroundStory, m.BackgroundStoryTL = split(p.BackgroundStory)
	m.CraftingProcess, m.CraftingProcessTL = split(p.CraftingProcess)
	m.ProfileImageURL = p.ProfileImageURL
	m.YearsExperience = p.YearsExperience
	m.Certifications = p.Certifications
	return m
}

func split(l shared.Localized) (string, string) {
	return l.EN, l.TL
}
