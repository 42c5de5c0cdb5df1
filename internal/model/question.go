package model

import "time"

// Question is one help request, opened as a thread in a help channel.
type Question struct {
	ID          string    `json:"id"`
	ThreadID    string    `json:"thread_id"`
	OwnerID     string    `json:"owner_id"`
	ChannelName string    `json:"channel_name"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	IsSolved    bool      `json:"is_solved"`
	CreatedAt   time.Time `json:"created_at"`
	Answer      *Answer   `json:"answer,omitempty"`
}

// Answer is the response selected as the solution of a Question.
type Answer struct {
	ID         string     `json:"id"`
	OwnerID    string     `json:"owner_id"`
	Content    string     `json:"content,omitempty"`
	SelectedBy string     `json:"selected_by,omitempty"`
	SelectedAt *time.Time `json:"selected_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// AnswerOwner returns the identity that answered the question, or "" when there is none.
func (q Question) AnswerOwner() string {
	if q.Answer == nil {
		return ""
	}
	return q.Answer.OwnerID
}

// IsAnswered reports whether the question is solved and has an attributable answer.
func (q Question) IsAnswered() bool {
	return q.IsSolved && q.AnswerOwner() != ""
}
