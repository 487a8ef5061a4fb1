package validation

import (
	apperrors "todo/internal/errors"
	"todo/internal/limits"
)

const (
	// MaxTitleLength is the longest accepted task title, in characters.
	MaxTitleLength = limits.MaxTitleLength
	// MaxCommentLength is the longest accepted task comment, in characters.
	MaxCommentLength = limits.MaxCommentLength
)

const (
	fieldTitle   = "title"
	fieldComment = "comment"
)

// TaskValidator provides validation for task content. It measures exactly the
// string it is given; callers trim first if they want trimmed semantics.
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// ValidateTitle fails with EmptyTitle for an empty title and with
// TitleTooLong above MaxTitleLength characters.
func (tv *TaskValidator) ValidateTitle(title string) error {
	validationError := NewValidationError()

	if !tv.validator.IsPresent(title) {
		validationError.AddRequiredError(fieldTitle, apperrors.KindEmptyTitle)
		return validationError
	}

	if !tv.validator.IsWithinMaxLength(title, MaxTitleLength) {
		validationError.AddInvalidLengthError(fieldTitle, title, apperrors.KindTitleTooLong)
		return validationError
	}

	return nil
}

// ValidateComment fails with CommentTooLong above MaxCommentLength characters.
func (tv *TaskValidator) ValidateComment(comment string) error {
	if !tv.validator.IsWithinMaxLength(comment, MaxCommentLength) {
		validationError := NewValidationError()
		validationError.AddInvalidLengthError(fieldComment, comment, apperrors.KindCommentTooLong)
		return validationError
	}
	return nil
}

// ValidateTask validates the title and, when present, the comment. The title
// is checked first and its failure wins.
func (tv *TaskValidator) ValidateTask(title string, comment *string) error {
	if err := tv.ValidateTitle(title); err != nil {
		return err
	}
	if comment != nil {
		return tv.ValidateComment(*comment)
	}
	return nil
}
