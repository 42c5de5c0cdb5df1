package stats

import (
	"time"

	"supportbot.app/hub/internal/model"
)

// AggregateKey is the reserved key of the whole-range entry of a TimeBucketMap.
const AggregateKey = "aggregate"

// Bucket is the partition of the questions created in [Start, End).
type Bucket struct {
	Key       string
	Start     time.Time
	End       time.Time
	Partition Partition
}

// TimeBucketMap is an ordered series of buckets plus the running aggregate over all of them.
type TimeBucketMap struct {
	Buckets   []Bucket
	Aggregate Partition
}

// BucketKey is the display key of a bucket starting at t.
func BucketKey(t time.Time) string {
	return t.Format(time.RFC3339)
}

// Lookup returns the partition stored under key, including AggregateKey.
func (m TimeBucketMap) Lookup(key string) (Partition, bool) {
	if key == AggregateKey {
		return m.Aggregate, true
	}
	for _, b := range m.Buckets {
		if b.Key == key {
			return b.Partition, true
		}
	}
	return Partition{}, false
}

// Keys returns the bucket keys in order followed by AggregateKey.
func (m TimeBucketMap) Keys() []string {
	keys := make([]string, 0, len(m.Buckets)+1)
	for _, b := range m.Buckets {
		keys = append(keys, b.Key)
	}
	return append(keys, AggregateKey)
}

// BucketByTime splits every category of p over the consecutive bucket starts. The last
// bucket ends at now. The aggregate is folded from the per-bucket results, so questions
// created before the first bucket (or at/after now) appear in neither.
func BucketByTime(starts []time.Time, p Partition, now time.Time) TimeBucketMap {
	result := TimeBucketMap{Buckets: make([]Bucket, 0, len(starts))}
	for i, start := range starts {
		end := now
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		slice := bucketStep(p, start, end)
		result.Buckets = append(result.Buckets, Bucket{
			Key:       BucketKey(start),
			Start:     start,
			End:       end,
			Partition: slice,
		})
		result.Aggregate.appendFrom(slice)
	}
	return result
}

// appendFrom grows p in place, so folding n buckets copies each question once.
func (p *Partition) appendFrom(other Partition) {
	p.Total = append(p.Total, other.Total...)
	p.Unanswered = append(p.Unanswered, other.Unanswered...)
	p.Staff = append(p.Staff, other.Staff...)
	p.Community = append(p.Community, other.Community...)
}

func bucketStep(p Partition, start, end time.Time) Partition {
	return p.Filter(func(q model.Question) bool {
		return inRange(q.CreatedAt, start, end)
	})
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
