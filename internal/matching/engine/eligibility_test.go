package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamup-dev/teamup-backend/internal/matching/domain"
)

func openProject(ownerID string) *domain.Project {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	start := now.Add(-24 * time.Hour)
	end := now.Add(24 * time.Hour)
	return &domain.Project{
		ID:               "p1",
		OwnerID:          ownerID,
		RecruitmentStart: &start,
		RecruitmentEnd:   &end,
		ProjectStart:     now.Add(7 * 24 * time.Hour),
		ProjectEnd:       now.Add(60 * 24 * time.Hour),
		LimitBackend:     1,
		MinProficiency:   domain.ProficiencyBronze,
		MaxProficiency:   domain.ProficiencyGold,
	}
}

func evalNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func TestEvaluate_AllClear(t *testing.T) {
	res := Evaluate(EvalInput{
		Applicant:          Applicant{ID: "u1", Proficiency: domain.ProficiencySilver},
		Project:            openProject("owner"),
		RequestedPositions: []domain.Position{domain.PositionBackend},
		Now:                evalNow(),
	})

	assert.True(t, res.OK)
	assert.Empty(t, res.Reasons)
}

func TestEvaluate_OwnerCannotApply(t *testing.T) {
	res := Evaluate(EvalInput{
		Applicant:          Applicant{ID: "owner", Proficiency: domain.ProficiencySilver},
		Project:            openProject("owner"),
		RequestedPositions: []domain.Position{domain.PositionBackend},
		Now:                evalNow(),
	})

	assert.False(t, res.OK)
	assert.Contains(t, res.Reasons, ReasonOwnProject)
}

func TestEvaluate_ExistingApplicationAndMembership(t *testing.T) {
	res := Evaluate(EvalInput{
		Applicant:          Applicant{ID: "u1", Proficiency: domain.ProficiencySilver},
		Project:            openProject("owner"),
		RequestedPositions: []domain.Position{domain.PositionBackend},
		ExistingApp:        &domain.Application{UserID: "u1", ProjectID: "p1"},
		ExistingMember:     &domain.ProjectMember{UserID: "u1", ProjectID: "p1"},
		Now:                evalNow(),
	})

	assert.False(t, res.OK)
	assert.Contains(t, res.Reasons, ReasonAlreadyApplied)
	assert.Contains(t, res.Reasons, ReasonAlreadyMember)
}

func TestEvaluate_FullPosition(t *testing.T) {
	res := Evaluate(EvalInput{
		Applicant:          Applicant{ID: "u2", Proficiency: domain.ProficiencySilver},
		Project:            openProject("owner"),
		RequestedPositions: []domain.Position{domain.PositionBackend},
		Members:            []domain.ProjectMember{member("u1", domain.PositionBackend)},
		Now:                evalNow(),
	})

	assert.False(t, res.OK)
	assert.Equal(t, []string{"BACKEND is full"}, res.Reasons)
}

func TestEvaluate_ProficiencyOutsideRange(t *testing.T) {
	res := Evaluate(EvalInput{
		Applicant:          Applicant{ID: "u1", Proficiency: domain.ProficiencyDiamond},
		Project:            openProject("owner"),
		RequestedPositions: []domain.Position{domain.PositionBackend},
		Now:                evalNow(),
	})

	assert.False(t, res.OK)
	assert.Equal(t, []string{ReasonProficiencyOutside}, res.Reasons)
}

func TestEvaluate_AccumulatesAllReasons(t *testing.T) {
	// Recruitment already over AND the backend slot is taken: both reasons
	// must come back in one verdict.
	p := openProject("owner")
	end := evalNow().Add(-time.Hour)
	p.RecruitmentEnd = &end

	res := Evaluate(EvalInput{
		Applicant:          Applicant{ID: "u2", Proficiency: domain.ProficiencySilver},
		Project:            p,
		RequestedPositions: []domain.Position{domain.PositionBackend},
		Members:            []domain.ProjectMember{member("u1", domain.PositionBackend)},
		Now:                evalNow(),
	})

	require.False(t, res.OK)
	assert.Equal(t, []string{ReasonPeriodEnded, "BACKEND is full"}, res.Reasons)
}

func TestEvaluate_ReasonOrderIsStable(t *testing.T) {
	p := openProject("u1")
	p.ProjectStart = evalNow().Add(-time.Hour)

	res := Evaluate(EvalInput{
		Applicant:          Applicant{ID: "u1", Proficiency: domain.ProficiencyDiamond},
		Project:            p,
		RequestedPositions: []domain.Position{domain.PositionBackend},
		ExistingApp:        &domain.Application{UserID: "u1", ProjectID: "p1"},
		Members:            []domain.ProjectMember{member("u3", domain.PositionBackend)},
		Now:                evalNow(),
	})

	require.False(t, res.OK)
	assert.Equal(t, []string{
		ReasonOwnProject,
		ReasonAlreadyApplied,
		ReasonProjectStarted,
		"BACKEND is full",
		ReasonProficiencyOutside,
	}, res.Reasons)
}
