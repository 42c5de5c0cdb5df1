package dto

type WebhookResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	EventID    int64  `json:"event_id,string,omitempty"`
	Enqueued   bool   `json:"enqueued"`
	Duplicated bool   `json:"duplicated"`
}
