package engine

import "github.com/teamup-dev/teamup-backend/internal/matching/domain"

// Occupancy counts, per position, how many members currently hold it.
// A member with several roles counts once for each of them.
func Occupancy(members []domain.ProjectMember) map[domain.Position]int {
	counts := make(map[domain.Position]int, len(domain.AllPositions))
	for _, pos := range domain.AllPositions {
		counts[pos] = 0
	}

	for _, m := range members {
		for _, role := range m.Role {
			if _, ok := counts[role]; ok {
				counts[role]++
			}
		}
	}
	return counts
}

// HasRoom reports whether the project can still take a member for the
// position. A limit of 0 means unlimited. Pure function over the data
// passed in; callers own fetching a current member list.
func HasRoom(p *domain.Project, members []domain.ProjectMember, pos domain.Position) bool {
	limit := p.Limit(pos)
	if limit == 0 {
		return true
	}
	return Occupancy(members)[pos] < limit
}
