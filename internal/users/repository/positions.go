package repository

import matching "github.com/teamup-dev/teamup-backend/internal/matching/domain"

func positionsToStrings(positions []matching.Position) []string {
	out := make([]string, len(positions))
	for i, p := range positions {
		out[i] = string(p)
	}
	return out
}

func stringsToPositions(values []string) []matching.Position {
	out := make([]matching.Position, len(values))
	for i, v := range values {
		out[i] = matching.Position(v)
	}
	return out
}
