package mq

import "time"

// HabitCreatedPayload 新建习惯事件的 payload
type HabitCreatedPayload struct {
	HabitID   string    `json:"habit_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	TraceID   string    `json:"trace_id,omitempty"`
}

// CompletionToggledPayload 打卡状态切换事件的 payload
type CompletionToggledPayload struct {
	HabitID   string    `json:"habit_id"`
	Name      string    `json:"name"`
	Day       string    `json:"day"` // YYYY-MM-DD
	Completed bool      `json:"completed"`
	ToggledAt time.Time `json:"toggled_at"`
	TraceID   string    `json:"trace_id,omitempty"`
}

// HabitDeletedPayload 删除习惯事件的 payload
type HabitDeletedPayload struct {
	HabitID   string    `json:"habit_id"`
	Name      string    `json:"name"`
	DeletedAt time.Time `json:"deleted_at"`
	TraceID   string    `json:"trace_id,omitempty"`
}
