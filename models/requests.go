package models

// CompleteTaskRequest is the body of POST /api/tasks/complete.
type CompleteTaskRequest struct {
	TaskID string `json:"task_id"`
}

// AwardBadgesRequest is the body of POST /api/badges/award.
type AwardBadgesRequest struct {
	UserID      string `json:"user_id"`
	Streak      int    `json:"streak"`
	Level       int    `json:"level"`
	CompletedAt string `json:"completed_at"` // RFC 3339
}

// TaskRequest carries the writable task fields for create/update.
type TaskRequest struct {
	Title      string `json:"title"`
	Notes      string `json:"notes"`
	DueAt      string `json:"due_at"` // RFC 3339, empty for none
	RepeatRule string `json:"repeat_rule"`
	Status     string `json:"status"`
	Remind     bool   `json:"remind"`
}
