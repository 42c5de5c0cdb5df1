package id

import (
	"strconv"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
)

var (
	node *snowflake.Node
	once sync.Once
)

// discordEpoch is the first millisecond of 2015, the epoch Discord snowflakes count from.
const discordEpoch int64 = 1420070400000

// Init initializes the Snowflake node with the given node ID.
func Init(nodeID int64) error {
	var err error
	once.Do(func() {
		node, err = snowflake.NewNode(nodeID)
	})
	return err
}

// New generates a new globally unique int64 ID using the Snowflake algorithm.
func New() int64 {
	return node.Generate().Int64()
}

// DiscordTime returns the creation instant encoded in a Discord snowflake id.
func DiscordTime(discordID string) (time.Time, error) {
	raw, err := strconv.ParseInt(discordID, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	ms := (raw >> 22) + discordEpoch
	return time.UnixMilli(ms).UTC(), nil
}
