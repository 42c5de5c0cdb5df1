package stats

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"supportbot.app/hub/internal/model"
)

// ProfileResolver looks up the profile fields of an answer owner.
type ProfileResolver interface {
	Resolve(ctx context.Context, identity string) (model.AnswererProfile, error)
}

// Contributors maps answer owners to their profiles, in order of first appearance.
type Contributors struct {
	order    []string
	profiles map[string]*model.AnswererProfile
}

func NewContributors() *Contributors {
	return &Contributors{profiles: make(map[string]*model.AnswererProfile)}
}

// Len returns the number of contributors.
func (c *Contributors) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Get returns the profile of identity.
func (c *Contributors) Get(identity string) (model.AnswererProfile, bool) {
	if c == nil {
		return model.AnswererProfile{}, false
	}
	p, ok := c.profiles[identity]
	if !ok {
		return model.AnswererProfile{}, false
	}
	return *p, true
}

// Profiles returns every profile in insertion order.
func (c *Contributors) Profiles() []model.AnswererProfile {
	if c == nil {
		return nil
	}
	out := make([]model.AnswererProfile, 0, len(c.order))
	for _, identity := range c.order {
		out = append(out, *c.profiles[identity])
	}
	return out
}

// Add records that profile.ID answered q. The first call for an identity stores the
// profile fields; later calls only append to its question list.
func (c *Contributors) Add(profile model.AnswererProfile, q model.Question) {
	if existing, ok := c.profiles[profile.ID]; ok {
		existing.Questions = append(existing.Questions, q)
		return
	}
	profile.Questions = []model.Question{q}
	c.order = append(c.order, profile.ID)
	c.profiles[profile.ID] = &profile
}

// Clone returns a deep copy.
func (c *Contributors) Clone() *Contributors {
	out := NewContributors()
	if c == nil {
		return out
	}
	for _, identity := range c.order {
		cloned := c.profiles[identity].Clone()
		out.order = append(out.order, identity)
		out.profiles[identity] = &cloned
	}
	return out
}

// AnswerGroup is the answered questions of a single identity.
type AnswerGroup struct {
	Identity  string
	Questions []model.Question
}

// GroupByAnswerer groups answered questions by answer owner, in order of first appearance.
// Questions without an answer owner are skipped.
func GroupByAnswerer(answered []model.Question) []AnswerGroup {
	var groups []AnswerGroup
	index := make(map[string]int)
	for _, q := range answered {
		owner := q.AnswerOwner()
		if owner == "" {
			continue
		}
		i, ok := index[owner]
		if !ok {
			i = len(groups)
			index[owner] = i
			groups = append(groups, AnswerGroup{Identity: owner})
		}
		groups[i].Questions = append(groups[i].Questions, q)
	}
	return groups
}

// ResolveContributors resolves every distinct answer owner exactly once, running at most
// concurrency lookups at a time (no limit when concurrency <= 0). A failed lookup yields
// model.DefaultProfile and never stops the remaining ones.
func ResolveContributors(ctx context.Context, answered []model.Question, resolver ProfileResolver, concurrency int) *Contributors {
	groups := GroupByAnswerer(answered)
	resolved := make([]model.AnswererProfile, len(groups))

	var g errgroup.Group
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, group := range groups {
		g.Go(func() error {
			profile, err := resolver.Resolve(ctx, group.Identity)
			if err != nil {
				slog.WarnContext(ctx, "contributor lookup failed, using defaults",
					"error", err,
					"identity", group.Identity)
				profile = model.DefaultProfile(group.Identity)
			}
			resolved[i] = profile
			return nil
		})
	}
	_ = g.Wait()

	contributors := NewContributors()
	for i, group := range groups {
		profile := resolved[i]
		profile.ID = group.Identity
		for _, q := range group.Questions {
			contributors.Add(profile, q)
		}
	}
	return contributors
}
