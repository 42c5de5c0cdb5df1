package service

import (
	"log/slog"
	"time"

	"supportbot.app/hub/core/config"
	"supportbot.app/hub/internal/queue"
	"supportbot.app/hub/internal/service/chat"
	"supportbot.app/hub/internal/service/issue_tracker"
	"supportbot.app/hub/internal/stats"
	"supportbot.app/hub/internal/store"
)

// Services wires the domain services from their collaborators. tracker, profiles,
// deliveries and producer may be nil when the process does not need them.
type Services struct {
	cfg        config.Config
	stores     *store.Stores
	chat       chat.ChatService
	tracker    issue_tracker.IssueTrackerService
	profiles   ProfileCache
	deliveries DeliveryGuard
	producer   queue.Producer
}

func NewServices(
	cfg config.Config,
	stores *store.Stores,
	chatService chat.ChatService,
	tracker issue_tracker.IssueTrackerService,
	profiles ProfileCache,
	deliveries DeliveryGuard,
	producer queue.Producer,
) *Services {
	return &Services{
		cfg:        cfg,
		stores:     stores,
		chat:       chatService,
		tracker:    tracker,
		profiles:   profiles,
		deliveries: deliveries,
		producer:   producer,
	}
}

func (s *Services) Staff() StaffChecker {
	return NewStaffChecker(s.chat, s.stores.Roles(), s.cfg.Discord.GuildID)
}

func (s *Services) Profiles() stats.ProfileResolver {
	return NewProfileResolver(s.chat, s.Staff(), s.stores.Accounts(), s.tracker, s.profiles)
}

func (s *Services) Dashboard() DashboardService {
	return NewDashboardService(
		s.stores.Questions(),
		s.chat,
		s.Profiles(),
		DashboardConfig{
			GuildID:         s.cfg.Discord.GuildID,
			HelpChannels:    s.cfg.Support.HelpChannels,
			Timezone:        s.cfg.Support.Timezone,
			LeaderboardSize: s.cfg.Support.LeaderboardSize,
			Concurrency:     s.cfg.Resolve.Concurrency,
		},
		time.Now,
	)
}

func (s *Services) Discussions() DiscussionService {
	return NewDiscussionService(
		s.chat,
		s.Staff(),
		s.stores.Questions(),
		s.tracker,
		s.cfg.Support.Repositories,
		s.cfg.Support.HelpChannels.Suffixes,
	)
}

func (s *Services) EventIngest() EventIngestService {
	return NewEventIngestService(s.deliveries, s.producer, slog.Default())
}
