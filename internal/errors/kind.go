package errors

// Kind is the closed set of failures the task service reports to its callers.
// Storage kinds name the attempted operation, never the underlying cause.
type Kind string

const (
	KindCreateFailed          Kind = "CREATE_FAILED"
	KindUpdateFailed          Kind = "UPDATE_FAILED"
	KindDeleteFailed          Kind = "DELETE_FAILED"
	KindFetchAllFailed        Kind = "FETCH_ALL_FAILED"
	KindFetchIncompleteFailed Kind = "FETCH_INCOMPLETE_FAILED"
	KindFetchByIDFailed       Kind = "FETCH_BY_ID_FAILED"
	KindSearchFailed          Kind = "SEARCH_FAILED"

	KindEmptyTitle     Kind = "EMPTY_TITLE"
	KindTitleTooLong   Kind = "TITLE_TOO_LONG"
	KindCommentTooLong Kind = "COMMENT_TOO_LONG"

	KindUnknown Kind = "UNKNOWN"
)

// AllKinds lists every kind in declaration order.
var AllKinds = []Kind{
	KindCreateFailed,
	KindUpdateFailed,
	KindDeleteFailed,
	KindFetchAllFailed,
	KindFetchIncompleteFailed,
	KindFetchByIDFailed,
	KindSearchFailed,
	KindEmptyTitle,
	KindTitleTooLong,
	KindCommentTooLong,
	KindUnknown,
}

// IsValid reports whether k is a member of the closed set.
func (k Kind) IsValid() bool {
	for _, known := range AllKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Type classifies the kind into the two-tier taxonomy.
func (k Kind) Type() ErrorType {
	switch k {
	case KindEmptyTitle, KindTitleTooLong, KindCommentTooLong:
		return ErrorTypeValidation
	case KindCreateFailed, KindUpdateFailed, KindDeleteFailed,
		KindFetchAllFailed, KindFetchIncompleteFailed, KindFetchByIDFailed, KindSearchFailed:
		return ErrorTypeDatabase
	default:
		return ErrorTypeUnknown
	}
}

// IsValidation reports whether the kind belongs to the validation tier.
func (k Kind) IsValidation() bool {
	return k.Type() == ErrorTypeValidation
}

// NewDomainError creates the error returned by the task service for kind.
// It never carries a cause.
func NewDomainError(kind Kind) *AppError {
	if !kind.IsValid() {
		kind = KindUnknown
	}
	return &AppError{
		Type:    kind.Type(),
		Message: UserMessage(kind),
		Code:    string(kind),
	}
}

// KindOf returns the domain kind carried by err. Errors that are not domain
// errors report KindUnknown; a nil error reports the empty kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr.Kind()
	}
	return KindUnknown
}
