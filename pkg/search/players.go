package search

import (
	"strings"

	"github.com/auctionpost/auctionpost/pkg/models"
)

// DefaultResultCount is how many catalog entries an empty query shows
const DefaultResultCount = 10

// FilterPlayers returns the players matching query. An empty (or
// whitespace-only) query yields the first DefaultResultCount players in
// catalog order; otherwise every player whose full name, country or
// specialism contains the query, ignoring case, is returned in catalog
// order with no cap. The input slice is never modified.
func FilterPlayers(query string, players []models.Player) []models.Player {
	if strings.TrimSpace(query) == "" {
		n := min(DefaultResultCount, len(players))
		return append([]models.Player{}, players[:n]...)
	}

	q := strings.ToLower(query)
	results := []models.Player{}
	for _, p := range players {
		if MatchesPlayer(p, q) {
			results = append(results, p)
		}
	}
	return results
}

// MatchesPlayer reports whether the lowercased query occurs in the
// player's full name, country or specialism.
func MatchesPlayer(p models.Player, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(p.FullName), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Country), lowerQuery) ||
		strings.Contains(strings.ToLower(string(p.Specialism)), lowerQuery)
}
