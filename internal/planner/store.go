// Package planner holds the live planner state and writes every change of
// a persisted collection through to the repository.
package planner

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"paper2plan/internal/domain"
	apperrors "paper2plan/internal/errors"
	"paper2plan/internal/logging"
	"paper2plan/internal/repository/sqlite"
)

// ErrUnchanged is returned by a mutation function to skip the write
var ErrUnchanged = errors.New("unchanged")

// corruptSuffix marks the backup of an entry that could not be decoded
const corruptSuffix = ".corrupt"

// Store is the single owner of planner state in a process. All mutations
// are serialized; readers get copies. Other processes may write the same
// database, so every mutation first reloads collections whose stored value
// differs from the one this store last read or wrote.
type Store struct {
	mu     sync.Mutex
	repo   sqlite.Repository
	mapper *domain.Mapper
	logger *slog.Logger
	now    func() time.Time

	// seen is the stored value per key as of the last load or write
	seen map[string]string

	tasks     []domain.Task
	events    []domain.CalendarEvent
	calendars domain.Calendars
	theme     domain.Theme
	chat      []domain.ChatMessage

	undo      *snapshot
	lastToken uint64
}

// snapshot is the event collection saved before a bulk AI change.
// It becomes revertible only once committed.
type snapshot struct {
	token     uint64
	events    []domain.CalendarEvent
	committed bool
}

// Open loads the four persisted collections. Missing entries start from
// the defaults; entries that cannot be decoded are backed up under
// "<key>.corrupt" and replaced by defaults.
func Open(ctx context.Context, repo sqlite.Repository, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Store{
		repo:   repo,
		mapper: domain.NewMapper(),
		logger: logger,
		now:    time.Now,
		seen:   make(map[string]string),
		chat:   []domain.ChatMessage{domain.Greeting()},
	}

	var err error
	if s.tasks, err = loadCollection(ctx, s, s.mapper.Tasks, domain.DefaultTasks); err != nil {
		return nil, err
	}
	if s.events, err = loadCollection(ctx, s, s.mapper.Events, domain.DefaultEvents); err != nil {
		return nil, err
	}
	if _, stored := s.seen[domain.EventsKey]; stored && normalizeEvents(s.events, s.now()) {
		s.logger.Info("repaired stored events without a single day or date")
		if err := s.writeEvents(ctx, s.events); err != nil {
			return nil, err
		}
	}
	calendars, err := loadCollection(ctx, s, s.mapper.Calendars, func() []domain.Calendar { return domain.DefaultCalendars() })
	if err != nil {
		return nil, err
	}
	s.calendars = domain.Calendars(calendars)
	if s.theme, err = s.loadTheme(ctx); err != nil {
		return nil, err
	}

	logging.Debugf("planner loaded: %d tasks, %d events, %d calendars, theme %s\n",
		len(s.tasks), len(s.events), len(s.calendars), s.theme)
	return s, nil
}

func loadCollection[T any](ctx context.Context, s *Store, m *domain.CollectionMapper[T], defaults func() []T) ([]T, error) {
	entry, err := s.repo.Get(ctx, m.Key)
	if err != nil {
		if apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
			return defaults(), nil
		}
		return nil, err
	}

	s.seen[m.Key] = entry.Value
	items, err := m.FromDatabase(entry)
	if err != nil {
		s.quarantine(ctx, entry, err)
		return defaults(), nil
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// syncCollection replaces *items with the stored collection when another
// process wrote it since this store last saw it. Missing entries keep the
// in-memory state. It reports whether *items was replaced.
func syncCollection[T any](ctx context.Context, s *Store, m *domain.CollectionMapper[T], items *[]T) (bool, error) {
	entry, err := s.repo.Get(ctx, m.Key)
	if err != nil {
		if apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
			return false, nil
		}
		return false, err
	}
	if seen, ok := s.seen[m.Key]; ok && seen == entry.Value {
		return false, nil
	}
	s.seen[m.Key] = entry.Value

	loaded, err := m.FromDatabase(entry)
	if err != nil {
		s.logger.Warn("stored data changed but is unreadable, keeping current state", "key", m.Key, "error", err)
		return false, nil
	}
	if loaded == nil {
		loaded = []T{}
	}
	*items = loaded
	logging.Debugf("reloaded %s written by another process\n", m.Key)
	return true, nil
}

// Refresh reloads every collection another process changed
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.syncTasks(ctx); err != nil {
		return err
	}
	if err := s.syncEvents(ctx); err != nil {
		return err
	}
	if err := s.syncCalendars(ctx); err != nil {
		return err
	}
	return s.syncTheme(ctx)
}

func (s *Store) syncTasks(ctx context.Context) error {
	_, err := syncCollection(ctx, s, s.mapper.Tasks, &s.tasks)
	return err
}

// syncEvents also drops the undo snapshot, which no longer describes the
// stored events
func (s *Store) syncEvents(ctx context.Context) error {
	changed, err := syncCollection(ctx, s, s.mapper.Events, &s.events)
	if err != nil || !changed {
		return err
	}
	normalizeEvents(s.events, s.now())
	s.undo = nil
	return nil
}

func (s *Store) syncCalendars(ctx context.Context) error {
	calendars := []domain.Calendar(s.calendars)
	changed, err := syncCollection(ctx, s, s.mapper.Calendars, &calendars)
	if changed {
		s.calendars = domain.Calendars(calendars)
	}
	return err
}

func (s *Store) syncTheme(ctx context.Context) error {
	entry, err := s.repo.Get(ctx, domain.ThemeKey)
	if err != nil {
		if apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
			return nil
		}
		return err
	}
	if seen, ok := s.seen[domain.ThemeKey]; ok && seen == entry.Value {
		return nil
	}
	s.seen[domain.ThemeKey] = entry.Value
	if theme, err := s.mapper.Theme.FromDatabase(entry); err == nil {
		s.theme = theme
	}
	return nil
}

// normalizeEvents gives every event exactly one of day of week and date,
// preferring the date when both are set. It reports whether any changed.
func normalizeEvents(events []domain.CalendarEvent, today time.Time) bool {
	changed := false
	for i, e := range events {
		n := e.NormalizeInferred(today)
		if n.Date != e.Date || !sameDay(n.DayOfWeek, e.DayOfWeek) {
			events[i] = n
			changed = true
		}
	}
	return changed
}

func sameDay(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *Store) loadTheme(ctx context.Context) (domain.Theme, error) {
	entry, err := s.repo.Get(ctx, domain.ThemeKey)
	if err != nil {
		if apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound) {
			return domain.DefaultTheme, nil
		}
		return "", err
	}

	s.seen[domain.ThemeKey] = entry.Value
	theme, err := s.mapper.Theme.FromDatabase(entry)
	if err != nil {
		s.quarantine(ctx, entry, err)
		return domain.DefaultTheme, nil
	}
	return theme, nil
}

func (s *Store) quarantine(ctx context.Context, entry *sqlite.Entry, cause error) {
	backup := entry.Key + corruptSuffix
	if err := s.repo.Put(ctx, backup, entry.Value); err != nil {
		s.logger.Error("failed to back up unreadable entry", "key", entry.Key, "error", err)
	}
	s.logger.Warn("stored data unreadable, using defaults", "key", entry.Key, "backup", backup, "error", cause)
}

// Tasks returns a copy of the task list
func (s *Store) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTasks(s.tasks)
}

// Events returns a copy of the event list
func (s *Store) Events() []domain.CalendarEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneEvents(s.events)
}

// Calendars returns a copy of the calendar list
func (s *Store) Calendars() domain.Calendars {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(domain.Calendars(nil), s.calendars...)
}

// Theme returns the current theme
func (s *Store) Theme() domain.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// Chat returns a copy of the assistant transcript
func (s *Store) Chat() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ChatMessage(nil), s.chat...)
}

// AppendChat adds messages to the transcript. The transcript is not persisted.
func (s *Store) AppendChat(messages ...domain.ChatMessage) []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = append(s.chat, messages...)
	return append([]domain.ChatMessage(nil), s.chat...)
}

// MutateTasks applies fn to a copy of the tasks and stores the result.
// Returning ErrUnchanged skips the write.
func (s *Store) MutateTasks(ctx context.Context, fn func([]domain.Task) ([]domain.Task, error)) ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.syncTasks(ctx); err != nil {
		return nil, err
	}
	next, err := fn(cloneTasks(s.tasks))
	if errors.Is(err, ErrUnchanged) {
		return cloneTasks(s.tasks), nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.writeTasks(ctx, next); err != nil {
		return nil, err
	}
	return cloneTasks(next), nil
}

// ReplaceTasks stores a whole new task list
func (s *Store) ReplaceTasks(ctx context.Context, tasks []domain.Task) error {
	_, err := s.MutateTasks(ctx, func([]domain.Task) ([]domain.Task, error) {
		return cloneTasks(tasks), nil
	})
	return err
}

// MutateEvents applies fn to a copy of the events and stores the result.
// Any event change other than a snapshot commit or revert invalidates the
// undo snapshot.
func (s *Store) MutateEvents(ctx context.Context, fn func([]domain.CalendarEvent) ([]domain.CalendarEvent, error)) ([]domain.CalendarEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.syncEvents(ctx); err != nil {
		return nil, err
	}
	next, err := fn(domain.CloneEvents(s.events))
	if errors.Is(err, ErrUnchanged) {
		return domain.CloneEvents(s.events), nil
	}
	if err != nil {
		return nil, err
	}
	if err := s.writeEvents(ctx, next); err != nil {
		return nil, err
	}
	if s.undo != nil {
		logging.Debugln("event change invalidated the undo snapshot")
		s.undo = nil
	}
	return domain.CloneEvents(next), nil
}

// ReplaceEvents stores a whole new event list
func (s *Store) ReplaceEvents(ctx context.Context, events []domain.CalendarEvent) error {
	_, err := s.MutateEvents(ctx, func([]domain.CalendarEvent) ([]domain.CalendarEvent, error) {
		return domain.CloneEvents(events), nil
	})
	return err
}

// MutateCalendars applies fn to a copy of the calendars and stores the result
func (s *Store) MutateCalendars(ctx context.Context, fn func(domain.Calendars) (domain.Calendars, error)) (domain.Calendars, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.syncCalendars(ctx); err != nil {
		return nil, err
	}
	next, err := fn(append(domain.Calendars(nil), s.calendars...))
	if errors.Is(err, ErrUnchanged) {
		return append(domain.Calendars(nil), s.calendars...), nil
	}
	if err != nil {
		return nil, err
	}

	value, err := s.mapper.Calendars.ToDatabase(next)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Put(ctx, domain.CalendarsKey, value); err != nil {
		return nil, err
	}
	s.seen[domain.CalendarsKey] = value
	s.calendars = next
	return append(domain.Calendars(nil), next...), nil
}

// ReplaceCalendars stores a whole new calendar list
func (s *Store) ReplaceCalendars(ctx context.Context, calendars domain.Calendars) error {
	_, err := s.MutateCalendars(ctx, func(domain.Calendars) (domain.Calendars, error) {
		return append(domain.Calendars(nil), calendars...), nil
	})
	return err
}

// SetTheme stores the theme
func (s *Store) SetTheme(ctx context.Context, theme domain.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	value := s.mapper.Theme.ToDatabase(theme)
	if err := s.repo.Put(ctx, domain.ThemeKey, value); err != nil {
		return err
	}
	s.seen[domain.ThemeKey] = value
	s.theme = theme
	return nil
}

func (s *Store) writeTasks(ctx context.Context, tasks []domain.Task) error {
	value, err := s.mapper.Tasks.ToDatabase(tasks)
	if err != nil {
		return err
	}
	if err := s.repo.Put(ctx, domain.TasksKey, value); err != nil {
		return err
	}
	s.seen[domain.TasksKey] = value
	s.tasks = tasks
	return nil
}

func (s *Store) writeEvents(ctx context.Context, events []domain.CalendarEvent) error {
	value, err := s.mapper.Events.ToDatabase(events)
	if err != nil {
		return err
	}
	if err := s.repo.Put(ctx, domain.EventsKey, value); err != nil {
		return err
	}
	s.seen[domain.EventsKey] = value
	s.events = events
	return nil
}

func cloneTasks(tasks []domain.Task) []domain.Task {
	if tasks == nil {
		return nil
	}
	out := make([]domain.Task, len(tasks))
	for i, t := range tasks {
		if t.LastStartTime != nil {
			v := *t.LastStartTime
			t.LastStartTime = &v
		}
		out[i] = t
	}
	return out
}
