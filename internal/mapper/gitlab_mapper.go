package mapper

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gitlab "gitlab.com/gitlab-org/api/client-go"

	"supportbot.app/hub/internal/model"
)

// gitlabTimeLayout is the timestamp format of GitLab system and project hooks.
const gitlabTimeLayout = "2006-01-02 15:04:05 MST"

type GitLabEventMapper struct{}

func NewGitLabEventMapper() *GitLabEventMapper {
	return &GitLabEventMapper{}
}

type gitlabReleasePayload struct {
	ObjectKind  string `json:"object_kind"`
	Name        string `json:"name"`
	Tag         string `json:"tag"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Action      string `json:"action"`
	ReleasedAt  string `json:"released_at"`
	Project     struct {
		PathWithNamespace string `json:"path_with_namespace"`
		WebURL            string `json:"web_url"`
	} `json:"project"`
}

type gitlabMemberPayload struct {
	EventName    string `json:"event_name"`
	GroupPath    string `json:"group_path"`
	UserID       int64  `json:"user_id"`
	UserUsername string `json:"user_username"`
}

func (m *GitLabEventMapper) Map(ctx context.Context, body []byte, headers map[string]string) (*MappedEvent, error) {
	var kind struct {
		ObjectKind string `json:"object_kind"`
		EventName  string `json:"event_name"`
	}
	if err := json.Unmarshal(body, &kind); err != nil {
		return nil, fmt.Errorf("decoding gitlab payload: %w", err)
	}

	eventType := m.mapGitLabEvent(gitlab.EventType(headers["X-Gitlab-Event"]), kind.ObjectKind, kind.EventName)
	switch eventType {
	case model.EventRelease:
		return m.mapRelease(body, headers)
	case model.EventMember:
		return m.mapMember(body, headers)
	}
	return nil, fmt.Errorf("%w: header=%q object_kind=%q event_name=%q",
		ErrUnsupportedEvent, headers["X-Gitlab-Event"], kind.ObjectKind, kind.EventName)
}

func (m *GitLabEventMapper) mapGitLabEvent(header gitlab.EventType, objectKind, eventName string) model.EventType {
	switch header {
	case gitlab.EventTypeRelease:
		return model.EventRelease
	case gitlab.EventTypeMember:
		return model.EventMember
	}

	if objectKind == "release" {
		return model.EventRelease
	}
	switch eventName {
	case "user_add_to_group", "user_remove_from_group", "user_update_for_group":
		return model.EventMember
	}
	return ""
}

func (m *GitLabEventMapper) mapRelease(body []byte, headers map[string]string) (*MappedEvent, error) {
	var p gitlabReleasePayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decoding release payload: %w", err)
	}
	if p.Tag == "" {
		return nil, fmt.Errorf("release payload without tag")
	}

	event := model.ReleaseEvent{
		Project:     p.Project.PathWithNamespace,
		ProjectURL:  p.Project.WebURL,
		Name:        p.Name,
		Tag:         p.Tag,
		URL:         p.URL,
		Description: p.Description,
		Action:      p.Action,
		ReleasedAt:  parseGitLabTime(p.ReleasedAt),
	}
	return encode(model.EventRelease, headers, event)
}

func (m *GitLabEventMapper) mapMember(body []byte, headers map[string]string) (*MappedEvent, error) {
	var p gitlabMemberPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decoding member payload: %w", err)
	}
	if p.UserID == 0 {
		return nil, fmt.Errorf("member payload without user_id")
	}

	event := model.MemberEvent{
		EventName: p.EventName,
		GroupPath: p.GroupPath,
		UserID:    p.UserID,
		Username:  p.UserUsername,
	}
	return encode(model.EventMember, headers, event)
}

func encode(eventType model.EventType, headers map[string]string, event any) (*MappedEvent, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("encoding %s event: %w", eventType, err)
	}
	return &MappedEvent{
		Type:       eventType,
		ExternalID: headers["X-Gitlab-Event-Uuid"],
		Payload:    payload,
	}, nil
}

func parseGitLabTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(gitlabTimeLayout, s); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}
