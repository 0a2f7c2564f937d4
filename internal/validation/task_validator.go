package validation

// TaskValidator provides validation for Task-related operations
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator(v *Validator) *TaskValidator {
	if v == nil {
		v = NewValidator()
	}
	return &TaskValidator{validator: v}
}

// ValidateTitle validates a task title for creation or rename
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(title)
	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("title")
		return validationError
	}

	limit := tv.validator.taskTitleMax()
	if !tv.validator.IsValidStringLength(trimmed, 1, limit) {
		validationError.AddInvalidLengthError("title", trimmed, 0, limit)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// GetValidTitle returns a cleaned task title if valid
func (tv *TaskValidator) GetValidTitle(title string) (string, error) {
	if err := tv.ValidateTitle(title); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(title), nil
}

// ValidateEstimateTitle validates the free text sent for a duration estimate
func (tv *TaskValidator) ValidateEstimateTitle(title string) error {
	validationError := NewValidationError()
	if !tv.validator.IsNonEmptyString(title) {
		validationError.AddRequiredError("taskTitle")
		return validationError
	}
	if !tv.validator.IsValidStringLength(title, 1, 500) {
		validationError.AddInvalidLengthError("taskTitle", title, 1, 500)
		return validationError
	}
	return nil
}
