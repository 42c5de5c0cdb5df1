package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"supportbot.app/hub/common/id"
	"supportbot.app/hub/core/db"
	"supportbot.app/hub/internal/model"
)

const questionColumns = `
	q.id, q.thread_id, q.owner_id, q.channel_name, q.title, q.url, q.is_solved, q.created_at,
	a.id, a.owner_id, a.content, a.selected_by, a.selected_at, a.created_at`

const listQuestionsWithAnswers = `SELECT` + questionColumns + `
FROM questions q
LEFT JOIN answers a ON a.question_id = q.id
WHERE q.guild_id = $1
ORDER BY q.created_at, q.id`

const getQuestionByThreadID = `SELECT` + questionColumns + `
FROM questions q
LEFT JOIN answers a ON a.question_id = q.id
WHERE q.thread_id = $1`

type questionStore struct {
	q db.Querier
}

func newQuestionStore(q db.Querier) QuestionStore {
	return &questionStore{q: q}
}

func (s *questionStore) ListWithAnswers(ctx context.Context, guildID string) ([]model.Question, error) {
	rows, err := s.q.Query(ctx, listQuestionsWithAnswers, guildID)
	if err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}
	defer rows.Close()

	questions := []model.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing questions: %w", err)
	}
	return questions, nil
}

func (s *questionStore) GetByThreadID(ctx context.Context, threadID string) (*model.Question, error) {
	q, err := scanQuestion(s.q.QueryRow(ctx, getQuestionByThreadID, threadID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

// answerRow holds the nullable side of the LEFT JOIN.
type answerRow struct {
	ID         *string
	OwnerID    *string
	Content    *string
	SelectedBy *string
	SelectedAt *time.Time
	CreatedAt  *time.Time
}

func scanQuestion(row pgx.Row) (model.Question, error) {
	var (
		q model.Question
		a answerRow
	)
	if err := row.Scan(
		&q.ID, &q.ThreadID, &q.OwnerID, &q.ChannelName, &q.Title, &q.URL, &q.IsSolved, &q.CreatedAt,
		&a.ID, &a.OwnerID, &a.Content, &a.SelectedBy, &a.SelectedAt, &a.CreatedAt,
	); err != nil {
		return model.Question{}, err
	}
	q.Answer = toAnswerModel(a)
	if q.CreatedAt.IsZero() {
		if t, err := id.DiscordTime(q.ThreadID); err == nil {
			q.CreatedAt = t
		}
	}
	return q, nil
}

func toAnswerModel(a answerRow) *model.Answer {
	if a.ID == nil {
		return nil
	}
	answer := &model.Answer{
		ID:         *a.ID,
		OwnerID:    deref(a.OwnerID),
		Content:    deref(a.Content),
		SelectedBy: deref(a.SelectedBy),
		SelectedAt: a.SelectedAt,
	}
	if a.CreatedAt != nil {
		answer.CreatedAt = *a.CreatedAt
	}
	return answer
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
