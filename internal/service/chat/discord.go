package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"supportbot.app/hub/core/config"
	"supportbot.app/hub/internal/model"
)

// Session is the subset of *discordgo.Session used by the chat service.
type Session interface {
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	GuildPreview(guildID string, options ...discordgo.RequestOption) (*discordgo.GuildPreview, error)
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type discordChatService struct {
	session Session
	guildID string
}

// NewSession opens a REST-only bot session.
func NewSession(token string) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("creating discord session: %w", err)
	}
	return s, nil
}

func NewDiscordChatService(session Session, guildID string) ChatService {
	return &discordChatService{session: session, guildID: guildID}
}

func (s *discordChatService) Member(ctx context.Context, userID string) (*model.Member, error) {
	m, err := s.session.GuildMember(s.guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, mapError(fmt.Errorf("fetching guild member: %w", err))
	}
	if m == nil || m.User == nil {
		return nil, ErrNotFound
	}
	return &model.Member{
		UserID:   m.User.ID,
		Username: m.User.Username,
		Avatar:   AvatarURL(m.User),
		Roles:    m.Roles,
	}, nil
}

func (s *discordChatService) HelpChannels(ctx context.Context, rules config.HelpChannelRules) []string {
	channels, err := s.session.GuildChannels(s.guildID, discordgo.WithContext(ctx))
	if err != nil {
		slog.WarnContext(ctx, "failed to fetch guild channels",
			"error", err,
			"guild_id", s.guildID)
		return []string{}
	}

	names := []string{}
	for _, ch := range channels {
		if ch == nil || ch.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		if rules.Matches(ch.Name) {
			names = append(names, ch.Name)
		}
	}
	return names
}

func (s *discordChatService) Guild(ctx context.Context) (*model.Guild, error) {
	preview, err := s.session.GuildPreview(s.guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, mapError(fmt.Errorf("fetching guild preview: %w", err))
	}
	return &model.Guild{
		ID:            preview.ID,
		Name:          preview.Name,
		MemberCount:   preview.ApproximateMemberCount,
		PresenceCount: preview.ApproximatePresenceCount,
	}, nil
}

func (s *discordChatService) Thread(ctx context.Context, channelID string) (*model.Thread, error) {
	ch, err := s.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, mapError(fmt.Errorf("fetching channel: %w", err))
	}

	thread := &model.Thread{
		ID:       ch.ID,
		Name:     ch.Name,
		IsThread: ch.IsThread(),
	}
	if thread.IsThread && ch.ParentID != "" {
		parent, err := s.session.Channel(ch.ParentID, discordgo.WithContext(ctx))
		if err != nil {
			slog.WarnContext(ctx, "failed to fetch thread parent",
				"error", err,
				"channel_id", ch.ParentID)
		} else {
			thread.ParentName = parent.Name
		}
	}
	return thread, nil
}

func (s *discordChatService) Announce(ctx context.Context, channelID, content string) error {
	if _, err := s.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx)); err != nil {
		return mapError(fmt.Errorf("sending message: %w", err))
	}
	return nil
}

// AvatarURL returns the CDN URL of the user's avatar, or the default avatar picked by
// discriminator when none was uploaded.
func AvatarURL(u *discordgo.User) string {
	if u.Avatar != "" {
		return u.AvatarURL("")
	}
	index := 0
	if d, err := strconv.Atoi(u.Discriminator); err == nil {
		index = d % 5
	}
	return DefaultAvatarURL(index)
}

// DefaultAvatarURL is the URL of one of the five built-in Discord avatars.
func DefaultAvatarURL(index int) string {
	return fmt.Sprintf("https://cdn.discordapp.com/embed/avatars/%d.png", index)
}

func mapError(err error) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
