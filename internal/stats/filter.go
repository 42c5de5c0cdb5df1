package stats

import (
	"time"

	"supportbot.app/hub/internal/model"
)

// DateRange is a [Start, End] range of instants as picked on the dashboard.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// FilterQuestions keeps the questions asked in one of channels and buckets them by unit
// over r. now closes the last bucket.
func FilterQuestions(channels []string, r DateRange, unit Unit, p Partition, now time.Time) TimeBucketMap {
	allowed := channelSet(channels)
	filtered := p.Filter(func(q model.Question) bool {
		_, ok := allowed[q.ChannelName]
		return ok
	})
	return BucketByTime(GenerateBuckets(unit, r.Start, r.End), filtered, now)
}

// FilterAnswers returns a copy of c in which every profile only keeps the questions asked
// in one of channels and created within [r.Start, r.End). Profiles left without questions
// stay in the result. c is never modified.
func FilterAnswers(channels []string, r DateRange, c *Contributors) *Contributors {
	allowed := channelSet(channels)
	out := c.Clone()
	for _, identity := range out.order {
		profile := out.profiles[identity]
		byChannel := make([]model.Question, 0, len(profile.Questions))
		for _, q := range profile.Questions {
			if _, ok := allowed[q.ChannelName]; ok {
				byChannel = append(byChannel, q)
			}
		}
		byDate := make([]model.Question, 0, len(byChannel))
		for _, q := range byChannel {
			if inRange(q.CreatedAt, r.Start, r.End) {
				byDate = append(byDate, q)
			}
		}
		profile.Questions = byDate
	}
	return out
}

func channelSet(channels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(channels))
	for _, ch := range channels {
		set[ch] = struct{}{}
	}
	return set
}
