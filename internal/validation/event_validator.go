package validation

import (
	"paper2plan/internal/domain"
)

// EventValidator provides validation for CalendarEvent saves
type EventValidator struct {
	validator *Validator
}

// NewEventValidator creates a new event validator
func NewEventValidator(v *Validator) *EventValidator {
	if v == nil {
		v = NewValidator()
	}
	return &EventValidator{validator: v}
}

// ValidateEvent checks the user-editable fields of an event
func (ev *EventValidator) ValidateEvent(e domain.CalendarEvent) error {
	validationError := NewValidationError()

	title := ev.validator.TrimAndValidateString(e.Title)
	if !ev.validator.IsNonEmptyString(title) {
		validationError.AddRequiredError("title")
	} else if limit := ev.validator.eventTitleMax(); !ev.validator.IsValidStringLength(title, 1, limit) {
		validationError.AddInvalidLengthError("title", title, 0, limit)
	}

	if limit := ev.validator.eventTimeMax(); !ev.validator.IsValidStringLength(e.Time, 0, limit) {
		validationError.AddInvalidLengthError("time", e.Time, 0, limit)
	}

	if e.DayOfWeek != nil && !ev.validator.IsValidDayOfWeek(*e.DayOfWeek) {
		validationError.AddInvalidRangeError("dayOfWeek", *e.DayOfWeek, "must be between 0 (Sunday) and 6 (Saturday)")
	}

	if e.Date != "" && !ev.validator.IsValidDate(e.Date) {
		validationError.AddInvalidFormatError("date", e.Date, "YYYY-MM-DD")
	}

	if e.Type != "" {
		if _, ok := domain.ParseEventType(string(e.Type)); !ok {
			validationError.AddInvalidValueError("type", e.Type, "must be one of work, personal, deadline, other")
		}
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}
