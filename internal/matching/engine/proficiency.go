package engine

import "github.com/teamup-dev/teamup-backend/internal/matching/domain"

// Proficiency tiers form a total order:
// UNKNOWN < BRONZE < SILVER < GOLD < PLATINUM < DIAMOND.
var proficiencyRank = map[domain.Proficiency]int{
	domain.ProficiencyUnknown:  0,
	domain.ProficiencyBronze:   1,
	domain.ProficiencySilver:   2,
	domain.ProficiencyGold:     3,
	domain.ProficiencyPlatinum: 4,
	domain.ProficiencyDiamond:  5,
}

const maxProficiencyRank = 5

// ProficiencyRank returns the rank of a tier. Unmapped tiers rank as UNKNOWN.
func ProficiencyRank(p domain.Proficiency) int {
	return proficiencyRank[p]
}

// ProficiencyInRange reports whether value falls within [min, max].
// The subject value ranks as UNKNOWN when unmapped. A missing or UNKNOWN
// lower bound ranks minimal and a missing or UNKNOWN upper bound ranks
// maximal, so a project with no declared bounds accepts any proficiency.
func ProficiencyInRange(value, min, max domain.Proficiency) bool {
	v := proficiencyRank[value]
	lo := proficiencyRank[min]

	hi := proficiencyRank[max]
	if hi == 0 {
		hi = maxProficiencyRank
	}

	return v >= lo && v <= hi
}
