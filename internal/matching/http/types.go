package http

import (
	"time"

	"github.com/teamup-dev/teamup-backend/internal/matching/domain"
	"github.com/teamup-dev/teamup-backend/internal/matching/service"
)

type createProjectReq struct {
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Difficulty       string     `json:"difficulty"`
	GithubRepoURL    string     `json:"github_repo_url"`
	RecruitmentStart *time.Time `json:"recruitment_start"`
	RecruitmentEnd   *time.Time `json:"recruitment_end"`
	ProjectStart     time.Time  `json:"project_start"`
	ProjectEnd       time.Time  `json:"project_end"`
	LimitBackend     int        `json:"limit_backend"`
	LimitFrontend    int        `json:"limit_frontend"`
	LimitPM          int        `json:"limit_pm"`
	LimitMobile      int        `json:"limit_mobile"`
	LimitAI          int        `json:"limit_ai"`
	MinProficiency   string     `json:"min_proficiency"`
	MaxProficiency   string     `json:"max_proficiency"`
}

func (r createProjectReq) toInput() service.CreateProjectInput {
	return service.CreateProjectInput{
		Name:             r.Name,
		Description:      r.Description,
		Difficulty:       domain.Difficulty(r.Difficulty),
		GithubRepoURL:    r.GithubRepoURL,
		RecruitmentStart: r.RecruitmentStart,
		RecruitmentEnd:   r.RecruitmentEnd,
		ProjectStart:     r.ProjectStart,
		ProjectEnd:       r.ProjectEnd,
		LimitBackend:     r.LimitBackend,
		LimitFrontend:    r.LimitFrontend,
		LimitPM:          r.LimitPM,
		LimitMobile:      r.LimitMobile,
		LimitAI:          r.LimitAI,
		MinProficiency:   domain.Proficiency(r.MinProficiency),
		MaxProficiency:   domain.Proficiency(r.MaxProficiency),
	}
}

type updateProjectReq struct {
	Name             *string     `json:"name"`
	Description      *string     `json:"description"`
	Difficulty       *string     `json:"difficulty"`
	GithubRepoURL    *string     `json:"github_repo_url"`
	RecruitmentStart *time.Time  `json:"recruitment_start"`
	RecruitmentEnd   *time.Time  `json:"recruitment_end"`
	ProjectStart     *time.Time  `json:"project_start"`
	ProjectEnd       *time.Time  `json:"project_end"`
	LimitBackend     *int        `json:"limit_backend"`
	LimitFrontend    *int        `json:"limit_frontend"`
	LimitPM          *int        `json:"limit_pm"`
	LimitMobile      *int        `json:"limit_mobile"`
	LimitAI          *int        `json:"limit_ai"`
	MinProficiency   *string     `json:"min_proficiency"`
	MaxProficiency   *string     `json:"max_proficiency"`
}

func (r updateProjectReq) toInput() service.UpdateProjectInput {
	in := service.UpdateProjectInput{
		Name:             r.Name,
		Description:      r.Description,
		GithubRepoURL:    r.GithubRepoURL,
		RecruitmentStart: r.RecruitmentStart,
		RecruitmentEnd:   r.RecruitmentEnd,
		ProjectStart:     r.ProjectStart,
		ProjectEnd:       r.ProjectEnd,
		LimitBackend:     r.LimitBackend,
		LimitFrontend:    r.LimitFrontend,
		LimitPM:          r.LimitPM,
		LimitMobile:      r.LimitMobile,
		LimitAI:          r.LimitAI,
	}
	if r.Difficulty != nil {
		d := domain.Difficulty(*r.Difficulty)
		in.Difficulty = &d
	}
	if r.MinProficiency != nil {
		p := domain.Proficiency(*r.MinProficiency)
		in.MinProficiency = &p
	}
	if r.MaxProficiency != nil {
		p := domain.Proficiency(*r.MaxProficiency)
		in.MaxProficiency = &p
	}
	return in
}

type applyReq struct {
	Positions   []string `json:"positions"`
	CoverLetter string   `json:"cover_letter"`
}

func (r applyReq) positions() []domain.Position {
	out := make([]domain.Position, len(r.Positions))
	for i, p := range r.Positions {
		out[i] = domain.Position(p)
	}
	return out
}

type eligibilityReq struct {
	Positions []string `json:"positions"`
}
