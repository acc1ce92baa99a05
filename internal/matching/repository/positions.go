package repository

import "github.com/teamup-dev/teamup-backend/internal/matching/domain"

// Position sets are stored as text[] columns; pgx maps those to []string.

func positionsToStrings(ps []domain.Position) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return out
}

func stringsToPositions(ss []string) []domain.Position {
	out := make([]domain.Position, len(ss))
	for i, s := range ss {
		out[i] = domain.Position(s)
	}
	return out
}
