package engine

import (
	"fmt"
	"time"

	"github.com/teamup-dev/teamup-backend/internal/matching/domain"
)

const (
	ReasonOwnProject         = "owner cannot apply to own project"
	ReasonAlreadyApplied     = "already applied"
	ReasonAlreadyMember      = "already a member"
	ReasonProficiencyOutside = "proficiency out of accepted range"
)

// Applicant is the read-only slice of user state the evaluator needs.
type Applicant struct {
	ID          string
	Proficiency domain.Proficiency
}

// EvalInput bundles everything an eligibility decision depends on. Callers
// fetch and assemble the data immediately before evaluating; the evaluator
// itself never touches storage.
type EvalInput struct {
	Applicant          Applicant
	Project            *domain.Project
	RequestedPositions []domain.Position
	Members            []domain.ProjectMember
	ExistingApp        *domain.Application
	ExistingMember     *domain.ProjectMember
	Now                time.Time
}

// EvalResult is the eligibility verdict. OK is true iff Reasons is empty.
type EvalResult struct {
	OK      bool     `json:"ok"`
	Reasons []string `json:"reasons"`
}

// Evaluate decides whether the applicant may apply to the project for the
// requested positions. It accumulates every applicable reason instead of
// failing fast, so one round trip tells the caller everything blocking the
// attempt.
func Evaluate(in EvalInput) EvalResult {
	reasons := make([]string, 0, 4)

	if in.Project.OwnerID == in.Applicant.ID {
		reasons = append(reasons, ReasonOwnProject)
	}

	if in.ExistingApp != nil {
		reasons = append(reasons, ReasonAlreadyApplied)
	}

	if in.ExistingMember != nil {
		reasons = append(reasons, ReasonAlreadyMember)
	}

	if open, reason := IsOpenNow(in.Project, in.Now); !open {
		reasons = append(reasons, reason)
	}

	for _, pos := range in.RequestedPositions {
		if !HasRoom(in.Project, in.Members, pos) {
			reasons = append(reasons, fmt.Sprintf("%s is full", pos))
		}
	}

	if !ProficiencyInRange(in.Applicant.Proficiency, in.Project.MinProficiency, in.Project.MaxProficiency) {
		reasons = append(reasons, ReasonProficiencyOutside)
	}

	return EvalResult{OK: len(reasons) == 0, Reasons: reasons}
}
