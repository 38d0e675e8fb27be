// internal/workers/records/create-tasks/handler.go
package createtasks

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	cerrors "warroom-workers/internal/common/errors"
	"warroom-workers/internal/common/logger"
	"warroom-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "create-tasks"
)

var (
	ErrNoActionItems = errors.New("NO_ACTION_ITEMS")
	ErrTaskPersist   = errors.New("TASK_PERSIST_FAILED")
)

const insertTaskQuery = `
	INSERT INTO tasks (id, text, priority, owner, due_date, context_type, context_id, linked_objects, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id) DO NOTHING`

type Handler struct {
	config *Config
	db     *sql.DB
	logger logger.Logger
	errors *cerrors.ErrorHandler
	clock  func() time.Time
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		db:     db,
		logger: scoped,
		errors: cerrors.NewErrorHandler(scoped),
		clock:  time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey": job.Key,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(cerrors.ErrCodeNoActionItems)).Inc()
		h.errors.HandleJobError(ctx, client, job,
			cerrors.Wrap(cerrors.ErrCodeNoActionItems, "failed to parse job variables", err))
		return
	}

	start := time.Now()
	output, err := h.execute(ctx, &input)
	if err != nil {
		code := cerrors.ErrCodeTaskPersistFailed
		if errors.Is(err, ErrNoActionItems) {
			code = cerrors.ErrCodeNoActionItems
		}
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(code)).Inc()
		// The insert is idempotent, so retrying after a partial attempt is safe.
		h.errors.HandleJobError(ctx, client, job, cerrors.Wrap(code, "failed to persist tasks", err))
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

// execute inserts one task row per selected action item. Unselected items are
// counted but never persisted. Re-running with the same items is a no-op
// because task IDs are stable across pipeline runs.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if len(input.ActionItems) == 0 {
		return nil, ErrNoActionItems
	}

	now := h.clock().UTC()
	output := &Output{
		TaskIDs:   []string{},
		CreatedAt: now.Format(time.RFC3339),
	}

	for _, item := range input.ActionItems {
		if !item.Selected {
			output.SkippedCount++
			continue
		}

		linked, err := json.Marshal(item.LinkedObjects)
		if err != nil {
			return nil, fmt.Errorf("%w: marshal linked objects for %s: %v", ErrTaskPersist, item.ID, err)
		}

		res, err := h.db.ExecContext(ctx, insertTaskQuery,
			item.ID,
			item.Text,
			string(item.Priority),
			item.SuggestedOwner,
			item.SuggestedDueDate,
			string(input.SourceContext.Type),
			input.SourceContext.ID,
			linked,
			now,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: insert task %s: %v", ErrTaskPersist, item.ID, err)
		}

		if rows, err := res.RowsAffected(); err == nil && rows == 0 {
			h.logger.Debug("task already exists, skipping", map[string]interface{}{
				"taskId": item.ID,
			})
			output.SkippedCount++
			continue
		}

		output.TaskIDs = append(output.TaskIDs, item.ID)
		output.CreatedCount++
	}

	h.logger.Info("tasks created", map[string]interface{}{
		"created": output.CreatedCount,
		"skipped": output.SkippedCount,
	})

	return output, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
