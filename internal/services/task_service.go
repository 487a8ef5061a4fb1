package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"todo/internal/domain"
	"todo/internal/errors"
	"todo/internal/repository/sqlite"
	"todo/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator TaskValidator
	logger    *zap.Logger
}

// NewTaskService creates a new TaskService instance backed by repo.
func NewTaskService(repo sqlite.Repository, logger *zap.Logger) TaskService {
	return NewTaskServiceWithValidator(repo, validation.NewTaskValidator(), logger)
}

// NewTaskServiceWithValidator creates a TaskService with a custom validator.
// A nil logger discards all output.
func NewTaskServiceWithValidator(repo sqlite.Repository, validator TaskValidator, logger *zap.Logger) TaskService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &taskServiceImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validator,
		logger:    logger.Named("tasks"),
	}
}

// CreateTask validates the content and stores a new, incomplete task.
func (t *taskServiceImpl) CreateTask(ctx context.Context, title string, comment *string) (*domain.Task, error) {
	title, comment, err := t.validateContent(title, comment)
	if err != nil {
		return nil, err
	}

	dbTask, err := t.repo.Create(context.WithoutCancel(ctx), title, comment, false)
	if err != nil {
		return nil, t.storageFailure(errors.KindCreateFailed, "create", err)
	}

	task, err := t.mapTask("create", nil, dbTask)
	if err != nil {
		return nil, err
	}

	t.logger.Debug("task created", zap.Stringer("task_id", task.ID))
	return task, nil
}

// UpdateTask replaces the title and comment of a task. The completion status
// is never touched here; use ToggleTaskStatus for that.
func (t *taskServiceImpl) UpdateTask(ctx context.Context, id uuid.UUID, title string, comment *string) (*domain.Task, error) {
	title, comment, err := t.validateContent(title, comment)
	if err != nil {
		return nil, err
	}

	dbTask, err := t.repo.Update(context.WithoutCancel(ctx), id, title, comment, nil)
	if err != nil {
		return nil, t.storageFailure(errors.KindUpdateFailed, "update", err, zap.Stringer("task_id", id))
	}

	task, err := t.mapTask("update", &id, dbTask)
	if err != nil {
		return nil, err
	}

	t.logger.Debug("task updated", zap.Stringer("task_id", id))
	return task, nil
}

// ToggleTaskStatus flips a task between incomplete and completed.
func (t *taskServiceImpl) ToggleTaskStatus(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	dbTask, err := t.repo.ToggleStatus(context.WithoutCancel(ctx), id)
	if err != nil {
		return nil, t.storageFailure(errors.KindUpdateFailed, "toggle status", err, zap.Stringer("task_id", id))
	}

	task, err := t.mapTask("toggle status", &id, dbTask)
	if err != nil {
		return nil, err
	}

	t.logger.Debug("task status toggled", zap.Stringer("task_id", id), zap.Bool("completed", task.IsCompleted))
	return task, nil
}

// DeleteTask removes a task permanently.
func (t *taskServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := t.repo.Delete(context.WithoutCancel(ctx), id)
	if err != nil {
		return false, t.storageFailure(errors.KindDeleteFailed, "delete", err, zap.Stringer("task_id", id))
	}

	t.logger.Debug("task deleted", zap.Stringer("task_id", id), zap.Bool("deleted", deleted))
	return deleted, nil
}

// FetchTask retrieves a single task. A missing task is reported as
// FetchByIDFailed like any other store failure.
func (t *taskServiceImpl) FetchTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	dbTask, err := t.repo.FetchByID(ctx, id)
	if err != nil {
		return nil, t.storageFailure(errors.KindFetchByIDFailed, "fetch by id", err, zap.Stringer("task_id", id))
	}

	return t.mapTask("fetch by id", &id, dbTask)
}

// ListTasks returns all tasks, or only the incomplete ones, in store order.
func (t *taskServiceImpl) ListTasks(ctx context.Context, includeOnlyIncomplete bool) ([]*domain.Task, error) {
	if includeOnlyIncomplete {
		dbTasks, err := t.repo.FetchIncomplete(ctx)
		if err != nil {
			return nil, t.storageFailure(errors.KindFetchIncompleteFailed, "fetch incomplete", err)
		}
		return t.mapTasks("fetch incomplete", dbTasks)
	}

	dbTasks, err := t.repo.FetchAll(ctx)
	if err != nil {
		return nil, t.storageFailure(errors.KindFetchAllFailed, "fetch all", err)
	}
	return t.mapTasks("fetch all", dbTasks)
}

// SearchTasks returns tasks whose title contains query. A blank query is the
// same as ListTasks and reports that operation's error kinds.
func (t *taskServiceImpl) SearchTasks(ctx context.Context, query string, includeOnlyIncomplete bool) ([]*domain.Task, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return t.ListTasks(ctx, includeOnlyIncomplete)
	}

	dbTasks, err := t.repo.Search(ctx, query, includeOnlyIncomplete)
	if err != nil {
		return nil, t.storageFailure(errors.KindSearchFailed, "search", err, zap.String("query", query))
	}
	return t.mapTasks("search", dbTasks)
}

// ListTasksForDisplay returns the search (or list) result with incomplete
// tasks first, keeping store order inside each group.
func (t *taskServiceImpl) ListTasksForDisplay(ctx context.Context, query string, includeOnlyIncomplete bool) ([]*domain.Task, error) {
	tasks, err := t.SearchTasks(ctx, query, includeOnlyIncomplete)
	if err != nil {
		return nil, err
	}
	return domain.SortIncompleteFirst(tasks), nil
}

// validateContent trims the title and validates both fields. An empty
// comment is normalized to no comment.
func (t *taskServiceImpl) validateContent(title string, comment *string) (string, *string, error) {
	title = strings.TrimSpace(title)
	if err := t.validator.ValidateTask(title, comment); err != nil {
		return "", nil, t.validationFailure(err)
	}

	if comment != nil && *comment == "" {
		comment = nil
	}
	return title, comment, nil
}

// validationFailure converts a validator error into a domain error. Rejected
// input is a user error, so it is only logged at debug level.
func (t *taskServiceImpl) validationFailure(err error) error {
	kind := validation.KindOf(err)
	if !kind.IsValidation() {
		kind = errors.KindUnknown
	}
	t.logger.Debug("task input rejected", zap.String("kind", string(kind)))
	return errors.NewDomainError(kind)
}

// storageFailure logs the store error and replaces it with kind. A missing
// task is the caller's mistake and is only logged at debug level.
func (t *taskServiceImpl) storageFailure(kind errors.Kind, operation string, err error, fields ...zap.Field) error {
	fields = append(fields,
		zap.String("operation", operation),
		zap.String("kind", string(kind)),
		zap.Error(err),
	)
	if appErr, ok := errors.AsAppError(err); ok && len(appErr.Context) > 0 {
		fields = append(fields, zap.Any("store", appErr.Context))
	}

	switch {
	case errors.IsNotFound(err):
		t.logger.Debug("task not found", fields...)
	case errors.ShouldLogError(err):
		t.logger.Warn("task store operation failed", fields...)
	default:
		t.logger.Debug("task store rejected request", fields...)
	}
	return errors.NewDomainError(kind)
}

// contractViolation reports a store result that breaks the store contract.
func (t *taskServiceImpl) contractViolation(operation string, reason string) error {
	t.logger.Error("task store contract violation",
		zap.String("operation", operation),
		zap.String("reason", reason),
	)
	return errors.NewDomainError(errors.KindUnknown)
}

// mapTask converts a store result, checking it against the requested id when
// one is given.
func (t *taskServiceImpl) mapTask(operation string, id *uuid.UUID, dbTask *sqlite.Task) (*domain.Task, error) {
	if dbTask == nil {
		return nil, t.contractViolation(operation, "store returned no task and no error")
	}
	if id != nil && dbTask.ID != *id {
		return nil, t.contractViolation(operation, "store returned a different task")
	}
	return t.mapper.Task.FromDatabase(dbTask), nil
}

func (t *taskServiceImpl) mapTasks(operation string, dbTasks []*sqlite.Task) ([]*domain.Task, error) {
	for _, dbTask := range dbTasks {
		if dbTask == nil {
			return nil, t.contractViolation(operation, "store returned a nil task in a list")
		}
	}
	return t.mapper.Task.FromDatabaseSlice(dbTasks), nil
}
