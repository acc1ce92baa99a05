package engine

import (
	"time"

	"github.com/teamup-dev/teamup-backend/internal/matching/domain"
)

// Recruitment window closure reasons, also surfaced by the eligibility evaluator.
const (
	ReasonNotYetStarted  = "recruitment not yet started"
	ReasonPeriodEnded    = "recruitment period ended"
	ReasonProjectStarted = "project already started"
)

// IsOpenNow decides whether a project accepts applications at the given
// instant. Rules run in order and the first failing one wins. This is a pure
// function of its inputs and must be recomputed per decision; the persisted
// is_open column is an advisory cache refreshed on writes, never trusted here.
func IsOpenNow(p *domain.Project, now time.Time) (bool, string) {
	if p.RecruitmentStart != nil && now.Before(*p.RecruitmentStart) {
		return false, ReasonNotYetStarted
	}
	if p.RecruitmentEnd != nil && now.After(*p.RecruitmentEnd) {
		return false, ReasonPeriodEnded
	}
	if !now.Before(p.ProjectStart) {
		return false, ReasonProjectStarted
	}
	return true, ""
}
