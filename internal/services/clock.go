package services

import (
	"time"

	"github.com/google/uuid"
)

// timeNow and newID are swapped in tests
var (
	timeNow = time.Now
	newID   = func() string { return uuid.NewString() }
)

// currentDateLabel is the date context handed to the AI prompts
func currentDateLabel(t time.Time) string {
	return t.Format("Mon Jan 02 2006")
}
