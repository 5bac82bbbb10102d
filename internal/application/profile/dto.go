package profile

import (
	"time"

	"github.com/google/uuid"
	"github.com/tlsy/handicrafts/internal/domain/profile"
	"github.com/tlsy/handicrafts/internal/domain/shared"
)

// UpdateProfileRequest is the admin payload for the crafter profile
type UpdateProfileRequest struct {
	CrafterName       string `json:"crafter_name" binding:"required,max=200"`
	CrafterNameTL     string `json:"crafter_name_tl" binding:"max=200"`
	Bio               string `json:"bio" binding:"max=5000"`
	BioTL             string `json:"bio_tl" binding:"max=5000"`
	ShortBio          string `json:"short_bio" binding:"max=500"`
	ShortBioTL        string `json:"short_bio_tl" binding:"max=500"`
	BackgroundStory   string `json:"background_story" binding:"max=10000"`
	BackgroundStoryTL string `json:"background_story_tl" binding:"max=10000"`
	CraftingProcess   string `json:"crafting_process" binding:"max=10000"`
	CraftingProcessTL string `json:"crafting_process_tl" binding:"max=10000"`
	ProfileImageURL   string `json:"profile_image_url" binding:"omitempty,uri"`
	YearsExperience   int    `json:"years_experience" binding:"min=0,max=100"`
	Certifications    string `json:"certifications" binding:"max=1000"`
}

func (r UpdateProfileRequest) details() profile.ProfileDetails {
	return profile.ProfileDetails{
		CrafterName:     shared.NewLocalized(r.CrafterName, r.CrafterNameTL),
		Bio:             shared.NewLocalized(r.Bio, r.BioTL),
		ShortBio:        shared.NewLocalized(r.ShortBio, r.ShortBioTL),
		BackgroundStory: shared.NewLocalized(r.BackgroundStory, r.BackgroundStoryTL),
		CraftingProcess: shared.NewLocalized(r.CraftingProcess, r.CraftingProcessTL),
		ProfileImageURL: r.ProfileImageURL,
		YearsExperience: r.YearsExperience,
		Certifications:  r.Certifications,
	}
}

// ProfileResponse represents the crafter profile
type ProfileResponse struct {
	ID                uuid.UUID `json:"id"`
	CrafterName       string    `json:"crafter_name"`
	CrafterNameTL     string    `json:"crafter_name_tl"`
	Bio               string    `json:"bio"`
	BioTL             string    `json:"bio_tl"`
	ShortBio          string    `json:"short_bio"`
	ShortBioTL        string    `json:"short_bio_tl"`
	BackgroundStory   string    `json:"background_story"`
	BackgroundStoryTL string    `json:"background_story_tl"`
	CraftingProcess   string    `json:"crafting_process"`
	CraftingProcessTL string    `json:"crafting_process_tl"`
	ProfileImageURL   string    `json:"profile_image_url"`
	YearsExperience   int       `json:"years_experience"`
	Certifications    []string  `json:"certifications"`
	UpdatedAt         time.Time `json:"updated_at"`

	bio             shared.Localized
	shortBio        shared.Localized
	backgroundStory shared.Localized
	craftingProcess shared.Localized
	name            shared.Localized
}

// ToProfileResponse converts the domain profile
func ToProfileResponse(p *profile.CrafterProfile) ProfileResponse {
	certs := p.CertificationList()
	if certs == nil {
		certs = []string{}
	}
	return ProfileResponse{
		ID:                p.ID,
		CrafterName:       p.CrafterName.EN,
		CrafterNameTL:     p.CrafterName.TL,
		Bio:               p.Bio.EN,
		BioTL:             p.Bio.TL,
		ShortBio:          p.ShortBio.EN,
		ShortBioTL:        p.ShortBio.TL,
		BackgroundStory:   p.BackgroundStory.EN,
		BackgroundStoryTL: p.BackgroundStory.TL,
		CraftingProcess:   p.CraftingProcess.EN,
		CraftingProcessTL: p.CraftingProcess.TL,
		ProfileImageURL:   p.ProfileImageURL,
		YearsExperience:   p.YearsExperience,
		Certifications:    certs,
		UpdatedAt:         p.UpdatedAt,
		name:              p.CrafterName,
		bio:               p.Bio,
		shortBio:          p.ShortBio,
		backgroundStory:   p.BackgroundStory,
		craftingProcess:   p.CraftingProcess,
	}
}

// Name returns the crafter name in loc
func (r ProfileResponse) Name(loc shared.Locale) string { return r.name.In(loc) }

// LocalizedBio returns the bio in loc
func (r ProfileResponse) LocalizedBio(loc shared.Locale) string { return r.bio.In(loc) }

// LocalizedShortBio returns the short bio in loc
func (r ProfileResponse) LocalizedShortBio(loc shared.Locale) string { return r.shortBio.In(loc) }

// LocalizedStory returns the background story in loc
func (r ProfileResponse) LocalizedStory(loc shared.Locale) string {
	return r.backgroundStory.In(loc)
}

// LocalizedProcess returns the crafting process in loc
func (r ProfileResponse) LocalizedProcess(loc shared.Locale) string {
	return r.craftingProcess.In(loc)
}
