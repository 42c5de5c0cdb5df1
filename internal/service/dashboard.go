package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"supportbot.app/hub/core/config"
	"supportbot.app/hub/internal/model"
	"supportbot.app/hub/internal/service/chat"
	"supportbot.app/hub/internal/stats"
	"supportbot.app/hub/internal/store"
)

// ErrUpstream wraps failures of the chat platform or code host.
var ErrUpstream = errors.New("upstream service failed")

// defaultRangeDays is the dashboard window when no range is picked.
const defaultRangeDays = 30

type DashboardConfig struct {
	GuildID         string
	HelpChannels    config.HelpChannelRules
	Timezone        *time.Location
	LeaderboardSize int
	Concurrency     int
}

// Snapshot is everything the dashboard overview shows.
type Snapshot struct {
	Guild        model.Guild
	HelpChannels []string
	Questions    stats.Partition
	Contributors *stats.Contributors
}

type QuestionQuery struct {
	Channels []string // empty means every help channel
	Range    *stats.DateRange
	Unit     stats.Unit
}

type LeaderboardQuery struct {
	Channels  []string
	Range     *stats.DateRange
	StaffOnly bool
}

type DashboardService interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
	Questions(ctx context.Context, query QuestionQuery) (stats.TimeBucketMap, error)
	Leaderboard(ctx context.Context, query LeaderboardQuery) ([]stats.LeaderboardEntry, error)
}

type dashboardService struct {
	questions store.QuestionStore
	chat      chat.ChatService
	resolver  stats.ProfileResolver
	cfg       DashboardConfig
	now       func() time.Time
}

func NewDashboardService(
	questions store.QuestionStore,
	chatService chat.ChatService,
	resolver stats.ProfileResolver,
	cfg DashboardConfig,
	now func() time.Time,
) DashboardService {
	if cfg.Timezone == nil {
		cfg.Timezone = time.UTC
	}
	if cfg.LeaderboardSize <= 0 {
		cfg.LeaderboardSize = stats.DefaultLeaderboardSize
	}
	if now == nil {
		now = time.Now
	}
	return &dashboardService{
		questions: questions,
		chat:      chatService,
		resolver:  resolver,
		cfg:       cfg,
		now:       now,
	}
}

// dataset is the guild's questions after staff classification.
type dataset struct {
	partition    stats.Partition
	contributors *stats.Contributors
}

func (s *dashboardService) Snapshot(ctx context.Context) (*Snapshot, error) {
	var (
		snapshot = &Snapshot{}
		data     *dataset
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		guild, err := s.chat.Guild(gctx)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		snapshot.Guild = *guild
		return nil
	})
	g.Go(func() error {
		snapshot.HelpChannels = s.chat.HelpChannels(gctx, s.cfg.HelpChannels)
		return nil
	})
	g.Go(func() error {
		var err error
		data, err = s.load(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot.Questions = data.partition
	snapshot.Contributors = data.contributors
	return snapshot, nil
}

func (s *dashboardService) Questions(ctx context.Context, query QuestionQuery) (stats.TimeBucketMap, error) {
	data, err := s.load(ctx)
	if err != nil {
		return stats.TimeBucketMap{}, err
	}
	unit := query.Unit
	if unit == "" {
		unit = stats.UnitDays
	}
	return stats.FilterQuestions(s.channels(ctx, query.Channels), s.dateRange(query.Range), unit, data.partition, s.now()), nil
}

func (s *dashboardService) Leaderboard(ctx context.Context, query LeaderboardQuery) ([]stats.LeaderboardEntry, error) {
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	filtered := stats.FilterAnswers(s.channels(ctx, query.Channels), s.dateRange(query.Range), data.contributors)
	return stats.RankTop(filtered, query.StaffOnly, s.cfg.LeaderboardSize), nil
}

// load reads every question and resolves each distinct answer owner once. The staff flag
// of the resolved profile drives the staff/community split.
func (s *dashboardService) load(ctx context.Context) (*dataset, error) {
	questions, err := s.questions.ListWithAnswers(ctx, s.cfg.GuildID)
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}

	answered := make([]model.Question, 0, len(questions))
	for _, q := range questions {
		if q.IsAnswered() {
			answered = append(answered, q)
		}
	}

	contributors := stats.ResolveContributors(ctx, answered, s.resolver, s.cfg.Concurrency)
	staff := make(map[string]bool, contributors.Len())
	for _, p := range contributors.Profiles() {
		staff[p.ID] = p.IsStaff
	}

	slog.DebugContext(ctx, "dashboard dataset loaded",
		"questions", len(questions),
		"answered", len(answered),
		"contributors", contributors.Len())

	return &dataset{
		partition:    stats.PartitionByCategory(questions, stats.StaffSet(staff)),
		contributors: contributors,
	}, nil
}

func (s *dashboardService) channels(ctx context.Context, picked []string) []string {
	if len(picked) > 0 {
		return picked
	}
	return s.chat.HelpChannels(ctx, s.cfg.HelpChannels)
}

// dateRange defaults to the last defaultRangeDays days, starting at local midnight.
func (s *dashboardService) dateRange(r *stats.DateRange) stats.DateRange {
	if r != nil {
		return *r
	}
	now := s.now().In(s.cfg.Timezone)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.cfg.Timezone)
	return stats.DateRange{Start: today.AddDate(0, 0, -defaultRangeDays), End: now}
}
