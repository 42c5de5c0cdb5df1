package dto

import "supportbot.app/hub/internal/model"

type CreateDiscussionRequest struct {
	ThreadID   string `json:"thread_id" binding:"required"`
	Repository string `json:"repository" binding:"required"`
	ActorID    string `json:"actor_id" binding:"required"`
}

type DiscussionResponse struct {
	Project string `json:"project"`
	IID     int64  `json:"iid"`
	Title   string `json:"title"`
	URL     string `json:"url"`
}

func ToDiscussionResponse(d *model.Discussion) *DiscussionResponse {
	return &DiscussionResponse{
		Project: d.Project,
		IID:     d.IID,
		Title:   d.Title,
		URL:     d.URL,
	}
}
