package worker

import (
	"context"

	"supportbot.app/hub/internal/queue"
)

// Consumer abstracts the message queue for testability.
type Consumer interface {
	Read(ctx context.Context) ([]queue.Message, error)
	Ack(ctx context.Context, msg queue.Message) error
	Requeue(ctx context.Context, msg queue.Message, errMsg string) error
	SendDLQ(ctx context.Context, msg queue.Message, errMsg string) error
}

// EventProcessor handles one decoded webhook event.
type EventProcessor interface {
	Process(ctx context.Context, msg queue.Message) error
}

// Announcer posts a message into a chat channel.
type Announcer interface {
	Announce(ctx context.Context, channelID, content string) error
}

// ProfileInvalidator drops a cached contributor profile.
type ProfileInvalidator interface {
	Delete(ctx context.Context, userID string) error
}

// AnnouncementLog records which releases were already announced.
type AnnouncementLog interface {
	MarkSeen(ctx context.Context, key string) (bool, error)
	Forget(ctx context.Context, key string) error
}
