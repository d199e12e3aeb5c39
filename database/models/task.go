package models

import (
	"time"

	"github.com/uptrace/bun"
)

type TaskStatus string

const (
	TaskStatusPending TaskStatus = "PENDING"
	TaskStatusDone    TaskStatus = "DONE"
	TaskStatusSkipped TaskStatus = "SKIPPED"
)

// Task is the canonical task row. Recurring tasks stay a single row; their
// occurrences are expanded on read and never written back.
type Task struct {
	bun.BaseModel `bun:"table:tasks,alias:t"`

	ID         string     `bun:"id,pk" json:"id"`
	UserID     string     `bun:"user_id,notnull" json:"user_id"`
	Title      string     `bun:"title,notnull" json:"title"`
	Notes      string     `bun:"notes,nullzero" json:"notes,omitempty"`
	DueAt      *time.Time `bun:"due_at,nullzero" json:"due_at,omitempty"`
	RepeatRule string     `bun:"repeat_rule,nullzero" json:"repeat_rule,omitempty"`
	Status     TaskStatus `bun:"status,notnull,default:'PENDING'" json:"status"`
	Remind     bool       `bun:"remind,notnull,default:false" json:"remind"`
	CreatedAt  time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
