package domain

import (
	"encoding/json"
	"time"

	matching "github.com/teamup-dev/teamup-backend/internal/matching/domain"
)

// User is a registered account. Phone is held decrypted in memory; the
// repository encrypts it at rest.
type User struct {
	ID              string               `json:"id"`
	FirebaseUID     string               `json:"-"`
	Email           string               `json:"email"`
	Name            string               `json:"name"`
	Phone           string               `json:"phone,omitempty"`
	GithubID        string               `json:"github_id,omitempty"`
	ProfileImageURL string               `json:"profile_image_url,omitempty"`
	Portfolio       json.RawMessage      `json:"portfolio,omitempty"`
	Positions       []matching.Position  `json:"positions"`
	Proficiency     matching.Proficiency `json:"proficiency"`
	TechStacks      []string             `json:"tech_stacks"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

// Summary trims a user down to the fields embedded in project views.
func (u *User) Summary() matching.UserSummary {
	return matching.UserSummary{
		ID:              u.ID,
		Name:            u.Name,
		Email:           u.Email,
		ProfileImageURL: u.ProfileImageURL,
		GithubID:        u.GithubID,
	}
}
