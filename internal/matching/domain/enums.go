package domain

// Position is a role category a project recruits for.
type Position string

const (
	PositionBackend  Position = "BACKEND"
	PositionFrontend Position = "FRONTEND"
	PositionPM       Position = "PM"
	PositionMobile   Position = "MOBILE"
	PositionAI       Position = "AI"
)

// AllPositions lists every recruitable position in a stable order.
var AllPositions = []Position{
	PositionBackend,
	PositionFrontend,
	PositionPM,
	PositionMobile,
	PositionAI,
}

func (p Position) Valid() bool {
	switch p {
	case PositionBackend, PositionFrontend, PositionPM, PositionMobile, PositionAI:
		return true
	}
	return false
}

// Proficiency is an ordered skill tier. Ordering lives in the engine package.
type Proficiency string

const (
	ProficiencyUnknown  Proficiency = "UNKNOWN"
	ProficiencyBronze   Proficiency = "BRONZE"
	ProficiencySilver   Proficiency = "SILVER"
	ProficiencyGold     Proficiency = "GOLD"
	ProficiencyPlatinum Proficiency = "PLATINUM"
	ProficiencyDiamond  Proficiency = "DIAMOND"
)

func (p Proficiency) Valid() bool {
	switch p {
	case ProficiencyUnknown, ProficiencyBronze, ProficiencySilver,
		ProficiencyGold, ProficiencyPlatinum, ProficiencyDiamond:
		return true
	}
	return false
}

// Difficulty is informational only; the engine never branches on it.
type Difficulty string

const (
	DifficultyUnknown      Difficulty = "UNKNOWN"
	DifficultyBeginner     Difficulty = "BEGINNER"
	DifficultyIntermediate Difficulty = "INTERMEDIATE"
	DifficultyAdvanced     Difficulty = "ADVANCED"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyUnknown, DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// ApplicationStatus is the lifecycle state of an application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "PENDING"
	StatusAccepted ApplicationStatus = "ACCEPTED"
	StatusRejected ApplicationStatus = "REJECTED"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}
