package domain

import (
	"fmt"
	"strings"
	"time"
)

// Task represents a to-do item with manual time tracking.
// ActualTime counts whole seconds accumulated while the timer was running.
type Task struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Completed      bool   `json:"completed"`
	EstimatedTime  string `json:"estimatedTime,omitempty"`
	ActualTime     int64  `json:"actualTime"`
	IsTimerRunning bool   `json:"isTimerRunning"`
	LastStartTime  *int64 `json:"lastStartTime,omitempty"`
}

// NewTask creates a new, incomplete Task with a stopped timer.
func NewTask(id, title string) Task {
	return Task{
		ID:    id,
		Title: strings.TrimSpace(title),
	}
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return t.ID != "" && strings.TrimSpace(t.Title) != ""
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// Tick advances a running timer by one second; stopped tasks are returned unchanged.
func (t Task) Tick() Task {
	if t.IsTimerRunning {
		t.ActualTime++
	}
	return t
}

// ToggleTimer flips the running flag. Starting records the start instant.
func (t Task) ToggleTimer(now time.Time) Task {
	t.IsTimerRunning = !t.IsTimerRunning
	if t.IsTimerRunning {
		ms := now.UnixMilli()
		t.LastStartTime = &ms
	}
	return t
}

// FormatElapsed renders seconds as m:ss, the way the task list shows them.
func FormatElapsed(seconds int64) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// PendingTitles returns the titles of uncompleted tasks in order.
func PendingTitles(tasks []Task) []string {
	var titles []string
	for _, t := range tasks {
		if !t.Completed {
			titles = append(titles, t.Title)
		}
	}
	return titles
}
