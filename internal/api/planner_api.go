package api

import (
	"time"

	"paper2plan/internal/ai"
	"paper2plan/internal/domain"
	"paper2plan/internal/services"
)

// timeNow is swapped in tests
var timeNow = time.Now

// DayAgenda is one day of the week view
type DayAgenda struct {
	Date    string                 `json:"date"`
	Weekday string                 `json:"weekday"`
	IsToday bool                   `json:"isToday"`
	Events  []domain.CalendarEvent `json:"events"`
}

// TaskStatistics summarizes the to-do list
type TaskStatistics struct {
	Total        int    `json:"total"`
	Completed    int    `json:"completed"`
	Running      int    `json:"running"`
	TrackedTime  string `json:"trackedTime"`
	TrackedTotal int64  `json:"trackedSeconds"`
}

// Overview is everything a planner screen needs in one read
type Overview struct {
	Tasks     []domain.Task          `json:"tasks"`
	Events    []domain.CalendarEvent `json:"events"`
	Calendars domain.Calendars       `json:"calendars"`
	Theme     domain.Theme           `json:"theme"`
	Provider  ai.ProviderInfo        `json:"provider"`
	CanUndo   bool                   `json:"canUndo"`
	Stats     TaskStatistics         `json:"stats"`
}

// PlannerAPI defines the read models composed from several services
type PlannerAPI interface {
	// GetOverview returns the full planner state with visible events only
	GetOverview() *Overview

	// GetWeek returns the seven days starting on the Sunday of the week
	// containing day, with the visible events of each day
	GetWeek(day time.Time) []DayAgenda

	// GetTaskStatistics counts tasks and sums tracked time
	GetTaskStatistics() TaskStatistics
}

type plannerAPIImpl struct {
	services *services.ServiceContainer
}

// NewPlannerAPI creates a new PlannerAPI over the given services
func NewPlannerAPI(container *services.ServiceContainer) PlannerAPI {
	return &plannerAPIImpl{services: container}
}

func (p *plannerAPIImpl) GetOverview() *Overview {
	return &Overview{
		Tasks:     p.services.TaskService.List(),
		Events:    p.services.EventService.ListVisible(),
		Calendars: p.services.CalendarService.List(),
		Theme:     p.services.ThemeService.Get(),
		Provider:  p.services.Gateway.ProviderInfo(),
		CanUndo:   p.services.ScheduleService.CanUndo(),
		Stats:     p.GetTaskStatistics(),
	}
}

func (p *plannerAPIImpl) GetWeek(day time.Time) []DayAgenda {
	visible := p.services.EventService.ListVisible()
	today := timeNow().Format(domain.DateLayout)
	start := day.AddDate(0, 0, -int(day.Weekday()))

	week := make([]DayAgenda, 7)
	for i := range week {
		d := start.AddDate(0, 0, i)
		agenda := DayAgenda{
			Date:    d.Format(domain.DateLayout),
			Weekday: d.Weekday().String(),
			Events:  []domain.CalendarEvent{},
		}
		agenda.IsToday = agenda.Date == today
		for _, e := range visible {
			if e.OccursOn(d) {
				agenda.Events = append(agenda.Events, e)
			}
		}
		week[i] = agenda
	}
	return week
}

func (p *plannerAPIImpl) GetTaskStatistics() TaskStatistics {
	var stats TaskStatistics
	for _, t := range p.services.TaskService.List() {
		stats.Total++
		if t.Completed {
			stats.Completed++
		}
		if t.IsTimerRunning {
			stats.Running++
		}
		stats.TrackedTotal += t.ActualTime
	}
	stats.TrackedTime = domain.FormatElapsed(stats.TrackedTotal)
	return stats
}
