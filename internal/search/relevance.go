package search

import (
	"sort"
	"strings"
)

const (
	titleHitScore = 3
	bioHitScore   = 2
)

// Relevance scores a profile against a job title term.
func Relevance(title, bio, term string) int {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return 0
	}
	score := 0
	if strings.Contains(strings.ToLower(title), term) {
		score += titleHitScore
	}
	if strings.Contains(strings.ToLower(bio), term) {
		score += bioHitScore
	}
	return score
}

// RankByRelevance scores every candidate and reorders them by score,
// preserving the incoming order for ties.
func RankByRelevance(candidates []CandidateDTO, term string) {
	for i := range candidates {
		candidates[i].RelevanceScore = Relevance(candidates[i].Title, candidates[i].Bio, term)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].RelevanceScore > candidates[j].RelevanceScore
	})
}
