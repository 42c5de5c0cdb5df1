package stats_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"supportbot.app/hub/internal/model"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func unsolved(id, channel string, createdAt time.Time) model.Question {
	return model.Question{ID: id, ChannelName: channel, CreatedAt: createdAt}
}

func answeredBy(id, channel string, createdAt time.Time, owner string) model.Question {
	return model.Question{
		ID:          id,
		ChannelName: channel,
		CreatedAt:   createdAt,
		IsSolved:    true,
		Answer:      &model.Answer{ID: "a-" + id, OwnerID: owner},
	}
}

func ids(qs []model.Question) []string {
	out := make([]string, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}

type fakeResolver struct {
	mu       sync.Mutex
	profiles map[string]model.AnswererProfile
	failing  map[string]bool
	calls    map[string]int
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{
		profiles: make(map[string]model.AnswererProfile),
		failing:  make(map[string]bool),
		calls:    make(map[string]int),
	}
}

func (f *fakeResolver) Resolve(_ context.Context, identity string) (model.AnswererProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[identity]++
	if f.failing[identity] {
		return model.AnswererProfile{}, errors.New("discord unavailable")
	}
	if p, ok := f.profiles[identity]; ok {
		return p, nil
	}
	return model.AnswererProfile{ID: identity, DisplayName: "user-" + identity}, nil
}
