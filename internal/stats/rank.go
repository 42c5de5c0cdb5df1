package stats

import "sort"

// DefaultLeaderboardSize is the number of entries RankTopContributors returns at most.
const DefaultLeaderboardSize = 9

// LeaderboardEntry is one row of the contributor leaderboard.
type LeaderboardEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AnswerCount int    `json:"answer_count"`
}

// RankTopContributors returns up to DefaultLeaderboardSize contributors by answer count.
func RankTopContributors(c *Contributors, staffOnly bool) []LeaderboardEntry {
	return RankTop(c, staffOnly, DefaultLeaderboardSize)
}

// RankTop sorts contributors by answer count, highest first. Ties keep the order in which
// contributors first answered. staffOnly drops non-staff profiles before ranking.
func RankTop(c *Contributors, staffOnly bool, limit int) []LeaderboardEntry {
	entries := []LeaderboardEntry{}
	for _, p := range c.Profiles() {
		if staffOnly && !p.IsStaff {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			ID:          p.ID,
			Name:        p.DisplayName,
			AnswerCount: len(p.Questions),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AnswerCount > entries[j].AnswerCount
	})

	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
