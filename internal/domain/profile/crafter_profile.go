package profile

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tlsy/handicrafts/internal/domain/shared"
)

// DefaultCrafterName is shown on the about page until the profile is filled in
const DefaultCrafterName = "TLSY Handicrafts"

// CrafterProfile is the single "about the maker" record of the shop
type CrafterProfile struct {
	shared.BaseEntity
	CrafterName     shared.Localized
	Bio             shared.Localized
	ShortBio        shared.Localized
	BackgroundStory shared.Localized
	CraftingProcess shared.Localized
	ProfileImageURL string
	YearsExperience int
	Certifications  string
}

// ProfileDetails carries the editable fields of the profile
type ProfileDetails struct {
	CrafterName     shared.Localized
	Bio             shared.Localized
	ShortBio        shared.Localized
	BackgroundStory shared.Localized
	CraftingProcess shared.Localized
	ProfileImageURL string
	YearsExperience int
	Certifications  string
}

// NewCrafterProfile creates the profile with the given crafter name
func NewCrafterProfile(name shared.Localized) (*CrafterProfile, error) {
	p := &CrafterProfile{BaseEntity: shared.NewBaseEntity()}
	if err := p.Update(ProfileDetails{CrafterName: name}); err != nil {
		return nil, err
	}
	return p, nil
}

// DefaultCrafterProfile is the placeholder returned before the owner saves a profile
func DefaultCrafterProfile() *CrafterProfile {
	return &CrafterProfile{
		CrafterName: shared.NewLocalized(DefaultCrafterName, DefaultCrafterName),
	}
}

// Update replaces all editable fields
func (p *CrafterProfile) Update(d ProfileDetails) error {
	name := d.CrafterName.Trimmed()
	if name.EN == "" {
		return shared.NewDomainError("INVALID_NAME", "Crafter name cannot be empty")
	}
	if utf8.RuneCountInString(name.EN) > 200 || utf8.RuneCountInString(name.TL) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Crafter name cannot exceed 200 characters")
	}
	if d.YearsExperience < 0 {
		return shared.NewDomainError("INVALID_EXPERIENCE", "Years of experience cannot be negative")
	}

	p.CrafterName = name
	p.Bio = d.Bio
	p.ShortBio = d.ShortBio
	p.BackgroundStory = d.BackgroundStory
	p.CraftingProcess = d.CraftingProcess
	p.ProfileImageURL = strings.TrimSpace(d.ProfileImageURL)
	p.YearsExperience = d.YearsExperience
	p.Certifications = strings.TrimSpace(d.Certifications)
	p.UpdatedAt = time.Now()
	return nil
}

// CertificationList splits the comma separated certifications
func (p *CrafterProfile) CertificationList() []string {
	var out []string
	for _, c := range strings.Split(p.Certifications, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// ProfileRepository persists the single crafter profile row
type ProfileRepository interface {
	// Get returns the profile or shared.ErrNotFound when none was saved yet
	Get(ctx context.Context) (*CrafterProfile, error)

	// Save creates or updates the profile
	Save(ctx context.Context, profile *CrafterProfile) error
}
