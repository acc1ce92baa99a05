package domain

import "time"

// Project is a recruiting project owned by a single user.
// It is storage-agnostic and shared across repository, service and HTTP layers.
type Project struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Difficulty    Difficulty `json:"difficulty"`
	IsOpen        bool       `json:"is_open"`
	GithubRepoURL string     `json:"github_repo_url,omitempty"`

	// Recruitment window bounds are optional; nil means unbounded on that side.
	RecruitmentStart *time.Time `json:"recruitment_start,omitempty"`
	RecruitmentEnd   *time.Time `json:"recruitment_end,omitempty"`
	ProjectStart     time.Time  `json:"project_start"`
	ProjectEnd       time.Time  `json:"project_end"`

	// Per-position headcount limits. 0 means unlimited.
	LimitBackend  int `json:"limit_backend"`
	LimitFrontend int `json:"limit_frontend"`
	LimitPM       int `json:"limit_pm"`
	LimitMobile   int `json:"limit_mobile"`
	LimitAI       int `json:"limit_ai"`

	MinProficiency Proficiency `json:"min_proficiency"`
	MaxProficiency Proficiency `json:"max_proficiency"`

	OwnerID string       `json:"owner_id"`
	Owner   *UserSummary `json:"owner,omitempty"`

	MemberCount      int `json:"member_count"`
	ApplicationCount int `json:"application_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Limit returns the configured headcount limit for a position (0 = unlimited).
func (p *Project) Limit(pos Position) int {
	switch pos {
	case PositionBackend:
		return p.LimitBackend
	case PositionFrontend:
		return p.LimitFrontend
	case PositionPM:
		return p.LimitPM
	case PositionMobile:
		return p.LimitMobile
	case PositionAI:
		return p.LimitAI
	}
	return 0
}

// ProjectDetail is a project together with its members and applications.
type ProjectDetail struct {
	Project
	Members      []ProjectMember `json:"members"`
	Applications []Application   `json:"applications"`
}

// ProjectMember links a user to a project they were accepted into.
// At most one row exists per (user, project); Role is the set of positions held.
type ProjectMember struct {
	UserID    string       `json:"user_id"`
	ProjectID string       `json:"project_id"`
	Role      []Position   `json:"role"`
	JoinedAt  time.Time    `json:"joined_at"`
	User      *UserSummary `json:"user,omitempty"`
}

// Application is a user's request to join a project for one or more positions.
// At most one row exists per (user, project).
type Application struct {
	UserID          string            `json:"user_id"`
	ProjectID       string            `json:"project_id"`
	AppliedPosition []Position        `json:"applied_position"`
	Status          ApplicationStatus `json:"status"`
	CoverLetter     string            `json:"cover_letter,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	User            *UserSummary      `json:"user,omitempty"`
	Project         *Project          `json:"project,omitempty"`
}

// UserSummary is the slice of user data embedded in project views.
type UserSummary struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	GithubID        string `json:"github_id,omitempty"`
}

// Dashboard is the per-user read-side composition of projects and applications.
type Dashboard struct {
	OwnedProjects  []ProjectDetail `json:"owned_projects"`
	MemberProjects []Project       `json:"member_projects"`
	MyApplications []Application   `json:"my_applications"`
}

// OwnerDashboard is the owner-side slice of the dashboard.
type OwnerDashboard struct {
	OwnedProjects []ProjectDetail `json:"owned_projects"`
}

// MemberDashboard is the applicant/member-side slice of the dashboard.
type MemberDashboard struct {
	MemberProjects []Project     `json:"member_projects"`
	MyApplications []Application `json:"my_applications"`
}
