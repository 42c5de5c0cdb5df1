package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"supportbot.app/hub/internal/model"
	"supportbot.app/hub/internal/queue"
	"supportbot.app/hub/internal/store"
)

// maxNotesLength bounds how much of the release description goes into the announcement.
const maxNotesLength = 1500

// ErrUnknownEvent is returned for event types the worker has no handler for.
var ErrUnknownEvent = errors.New("unknown event type")

type ProcessorConfig struct {
	AnnouncementChannel string
	// Announced suppresses repeat announcements of a release. Nil disables it.
	Announced AnnouncementLog
}

// Processor applies webhook events: releases are announced in the guild and
// membership changes drop the affected contributor's cached profile.
type Processor struct {
	announcer Announcer
	accounts  store.AccountStore
	profiles  ProfileInvalidator
	cfg       ProcessorConfig
}

func NewProcessor(announcer Announcer, accounts store.AccountStore, profiles ProfileInvalidator, cfg ProcessorConfig) *Processor {
	return &Processor{
		announcer: announcer,
		accounts:  accounts,
		profiles:  profiles,
		cfg:       cfg,
	}
}

func (p *Processor) Process(ctx context.Context, msg queue.Message) error {
	switch model.EventType(msg.EventType) {
	case model.EventRelease:
		var event model.ReleaseEvent
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			return fmt.Errorf("decoding release event: %w", err)
		}
		return p.processRelease(ctx, event)
	case model.EventMember:
		var event model.MemberEvent
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			return fmt.Errorf("decoding member event: %w", err)
		}
		return p.processMember(ctx, event)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, msg.EventType)
	}
}

func (p *Processor) processRelease(ctx context.Context, event model.ReleaseEvent) error {
	if p.cfg.AnnouncementChannel == "" {
		slog.DebugContext(ctx, "no announcement channel configured, skipping release")
		return nil
	}
	if event.Action != "" && event.Action != "create" {
		slog.DebugContext(ctx, "ignoring release action", "action", event.Action)
		return nil
	}

	key := releaseKey(event)
	if p.cfg.Announced != nil {
		fresh, err := p.cfg.Announced.MarkSeen(ctx, key)
		if err != nil {
			return fmt.Errorf("recording release announcement: %w", err)
		}
		if !fresh {
			slog.InfoContext(ctx, "release already announced, skipping",
				"project", event.Project,
				"tag", event.Tag)
			return nil
		}
	}

	if err := p.announcer.Announce(ctx, p.cfg.AnnouncementChannel, FormatRelease(event)); err != nil {
		if p.cfg.Announced != nil {
			if ferr := p.cfg.Announced.Forget(ctx, key); ferr != nil {
				slog.WarnContext(ctx, "failed to clear release announcement marker", "error", ferr)
			}
		}
		return fmt.Errorf("announcing release %s: %w", event.Tag, err)
	}

	slog.InfoContext(ctx, "release announced",
		"project", event.Project,
		"tag", event.Tag)
	return nil
}

func (p *Processor) processMember(ctx context.Context, event model.MemberEvent) error {
	discordUserID, err := p.accounts.DiscordUserID(ctx, model.ProviderGitLab, strconv.FormatInt(event.UserID, 10))
	if errors.Is(err, store.ErrNotFound) {
		slog.DebugContext(ctx, "member has no linked discord account",
			"gitlab_user_id", event.UserID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("looking up linked account: %w", err)
	}

	if err := p.profiles.Delete(ctx, discordUserID); err != nil {
		return fmt.Errorf("invalidating profile: %w", err)
	}

	slog.InfoContext(ctx, "contributor profile invalidated",
		"discord_user_id", discordUserID,
		"event_name", event.EventName)
	return nil
}

func releaseKey(event model.ReleaseEvent) string {
	return "release:" + event.Project + ":" + event.Tag
}

// FormatRelease renders the chat announcement for a release.
func FormatRelease(event model.ReleaseEvent) string {
	name := event.Name
	if name == "" {
		name = event.Tag
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s %s** has been released", event.Project, name)
	if event.URL != "" {
		fmt.Fprintf(&b, ": <%s>", event.URL)
	}

	notes := strings.TrimSpace(event.Description)
	if notes != "" {
		if r := []rune(notes); len(r) > maxNotesLength {
			notes = string(r[:maxNotesLength]) + "…"
		}
		b.WriteString("\n\n")
		b.WriteString(notes)
	}
	return b.String()
}
