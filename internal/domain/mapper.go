package domain

import (
	"encoding/json"
	"fmt"

	"paper2plan/internal/repository/sqlite"
)

// Storage keys of the four persisted collections
const (
	TasksKey     = "paper2plan_tasks"
	EventsKey    = "paper2plan_events"
	CalendarsKey = "paper2plan_calendars"
	ThemeKey     = "paper2plan_theme"
)

// CollectionMapper converts one collection to and from its stored JSON form.
type CollectionMapper[T any] struct {
	Key string
}

// ToDatabase serializes a collection into a repository entry value.
func (m *CollectionMapper[T]) ToDatabase(items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", m.Key, err)
	}
	return string(data), nil
}

// FromDatabase parses a repository entry back into a collection.
func (m *CollectionMapper[T]) FromDatabase(entry *sqlite.Entry) ([]T, error) {
	var items []T
	if err := json.Unmarshal([]byte(entry.Value), &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", m.Key, err)
	}
	return items, nil
}

// ThemeMapper stores the theme as its bare name, not JSON.
type ThemeMapper struct{}

// ToDatabase converts a Theme to a repository entry value.
func (m *ThemeMapper) ToDatabase(t Theme) string {
	return string(t)
}

// FromDatabase parses a stored theme name.
func (m *ThemeMapper) FromDatabase(entry *sqlite.Entry) (Theme, error) {
	t, ok := ParseTheme(entry.Value)
	if !ok {
		return "", fmt.Errorf("decode %s: unknown theme %q", ThemeKey, entry.Value)
	}
	return t, nil
}

// Mapper provides a unified interface for all mapping operations.
type Mapper struct {
	Tasks     *CollectionMapper[Task]
	Events    *CollectionMapper[CalendarEvent]
	Calendars *CollectionMapper[Calendar]
	Theme     *ThemeMapper
}

// NewMapper creates a new Mapper instance with all sub-mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Tasks:     &CollectionMapper[Task]{Key: TasksKey},
		Events:    &CollectionMapper[CalendarEvent]{Key: EventsKey},
		Calendars: &CollectionMapper[Calendar]{Key: CalendarsKey},
		Theme:     &ThemeMapper{},
	}
}
