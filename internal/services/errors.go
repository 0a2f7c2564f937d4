package services

import (
	apperrors "paper2plan/internal/errors"
)

// ErrNothingToSchedule is returned by a magic schedule with no uncompleted tasks
var ErrNothingToSchedule = &apperrors.AppError{
	Type:    apperrors.ErrorTypeConflict,
	Message: "no uncompleted tasks to schedule",
	Code:    "NOTHING_TO_SCHEDULE",
}

// ErrNoUndo is returned when there is no magic schedule to revert
var ErrNoUndo = &apperrors.AppError{
	Type:    apperrors.ErrorTypeConflict,
	Message: "nothing to undo",
	Code:    "NO_UNDO",
}
