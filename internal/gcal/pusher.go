package gcal

import (
	"context"
	"fmt"
	"time"

	"paper2plan/internal/config"
	"paper2plan/internal/domain"
	apperrors "paper2plan/internal/errors"
	"paper2plan/internal/export"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// idProperty links a Google event back to the planner event it came from
const idProperty = "paper2plan_id"

const localLayout = "2006-01-02T15:04:05"

// PushResult counts what a push changed
type PushResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// Pusher writes planner events into one Google calendar
type Pusher struct {
	srv         *calendar.Service
	calendarID  string
	timeZone    string
	defaultHour int
}

// NewPusher wraps an authenticated calendar service
func NewPusher(srv *calendar.Service, calendarID, timeZone string, defaultHour int) *Pusher {
	return &Pusher{srv: srv, calendarID: calendarID, timeZone: timeZone, defaultHour: defaultHour}
}

// Connect builds a Pusher from the stored OAuth client and token
func Connect(ctx context.Context, cfg *config.Config) (*Pusher, error) {
	oauthCfg, err := LoadOAuthConfig(cfg.Google.CredentialsFile)
	if err != nil {
		return nil, err
	}
	tok, err := TokenFromFile(cfg.Google.TokenFile)
	if err != nil {
		return nil, apperrors.NewUnavailableError("google calendar",
			"not authorized with Google yet; run 'p2p export google --auth' first")
	}

	srv, err := calendar.NewService(ctx, option.WithHTTPClient(oauthCfg.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Google Calendar service: %w", err)
	}
	return NewPusher(srv, cfg.Google.CalendarID, cfg.Google.TimeZone, cfg.Export.DefaultHour), nil
}

// Push creates or updates one Google event per planner event. Events are
// matched on a private extended property, so pushing twice does not
// duplicate them.
func (p *Pusher) Push(ctx context.Context, events []domain.CalendarEvent, ref time.Time) (PushResult, error) {
	var result PushResult

	for _, e := range events {
		gev, ok := ToGoogleEvent(e, ref, p.defaultHour, p.timeZone)
		if !ok {
			result.Skipped++
			continue
		}

		existing, err := p.find(ctx, e.ID)
		if err != nil {
			return result, apperrors.NewUpstreamError("google calendar", err)
		}

		if existing != nil {
			if _, err := p.srv.Events.Patch(p.calendarID, existing.Id, gev).Context(ctx).Do(); err != nil {
				return result, apperrors.NewUpstreamError("google calendar", err)
			}
			result.Updated++
			continue
		}

		if _, err := p.srv.Events.Insert(p.calendarID, gev).Context(ctx).Do(); err != nil {
			return result, apperrors.NewUpstreamError("google calendar", err)
		}
		result.Created++
	}
	return result, nil
}

func (p *Pusher) find(ctx context.Context, eventID string) (*calendar.Event, error) {
	events, err := p.srv.Events.List(p.calendarID).
		PrivateExtendedProperty(fmt.Sprintf("%s=%s", idProperty, eventID)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(events.Items) > 0 {
		return events.Items[0], nil
	}
	return nil, nil
}

// ToGoogleEvent converts a planner event on the same day rules as the
// iCalendar export. Weekly events are pushed as their next occurrence.
func ToGoogleEvent(e domain.CalendarEvent, ref time.Time, hour int, timeZone string) (*calendar.Event, bool) {
	day, ok := export.EventDate(e, ref)
	if !ok {
		return nil, false
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC).Format(localLayout)

	return &calendar.Event{
		Summary:     e.Title,
		Description: fmt.Sprintf("%s event - %s", e.Type, e.Time),
		Start:       &calendar.EventDateTime{DateTime: start, TimeZone: timeZone},
		End:         &calendar.EventDateTime{DateTime: start, TimeZone: timeZone},
		ExtendedProperties: &calendar.EventExtendedProperties{
			Private: map[string]string{idProperty: e.ID},
		},
	}, true
}
