package dto

import (
	"time"

	"supportbot.app/hub/internal/service"
	"supportbot.app/hub/internal/stats"
)

type GuildResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MemberCount   int    `json:"member_count"`
	PresenceCount int    `json:"presence_count"`
}

type DashboardResponse struct {
	Guild            GuildResponse        `json:"guild"`
	HelpChannels     []string             `json:"help_channels"`
	Questions        stats.CategoryCounts `json:"questions"`
	ContributorCount int                  `json:"contributor_count"`
}

func ToDashboardResponse(s *service.Snapshot) *DashboardResponse {
	channels := s.HelpChannels
	if channels == nil {
		channels = []string{}
	}
	return &DashboardResponse{
		Guild: GuildResponse{
			ID:            s.Guild.ID,
			Name:          s.Guild.Name,
			MemberCount:   s.Guild.MemberCount,
			PresenceCount: s.Guild.PresenceCount,
		},
		HelpChannels:     channels,
		Questions:        s.Questions.Counts(),
		ContributorCount: s.Contributors.Len(),
	}
}

type BucketResponse struct {
	Key    string               `json:"key"`
	Start  time.Time            `json:"start"`
	End    time.Time            `json:"end"`
	Counts stats.CategoryCounts `json:"counts"`
}

type QuestionSeriesResponse struct {
	Unit      stats.Unit           `json:"unit"`
	Buckets   []BucketResponse     `json:"buckets"`
	Aggregate stats.CategoryCounts `json:"aggregate"`
}

func ToQuestionSeriesResponse(unit stats.Unit, m stats.TimeBucketMap) *QuestionSeriesResponse {
	buckets := make([]BucketResponse, 0, len(m.Buckets))
	for _, b := range m.Buckets {
		buckets = append(buckets, BucketResponse{
			Key:    b.Key,
			Start:  b.Start,
			End:    b.End,
			Counts: b.Partition.Counts(),
		})
	}
	return &QuestionSeriesResponse{
		Unit:      unit,
		Buckets:   buckets,
		Aggregate: m.Aggregate.Counts(),
	}
}

type LeaderboardResponse struct {
	StaffOnly    bool                     `json:"staff_only"`
	Contributors []stats.LeaderboardEntry `json:"contributors"`
}

func ToLeaderboardResponse(staffOnly bool, entries []stats.LeaderboardEntry) *LeaderboardResponse {
	if entries == nil {
		entries = []stats.LeaderboardEntry{}
	}
	return &LeaderboardResponse{StaffOnly: staffOnly, Contributors: entries}
}
