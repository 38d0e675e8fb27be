// internal/workers/records/create-bundle/handler.go
package createbundle

import (
	"bytes"
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
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
)

const (
	TaskType = "create-bundle"
)

var (
	ErrEmptyBundle   = errors.New("EMPTY_BUNDLE")
	ErrBundlePersist = errors.New("BUNDLE_PERSIST_FAILED")
)

const insertBundleQuery = `
	INSERT INTO bundles (id, name, context_type, context_id, created_at)
	VALUES ($1, $2, $3, $4, $5)`

const insertBundleTaskQuery = `
	INSERT INTO bundle_tasks (bundle_id, task_id, section, title, owner, due_date, dependency, linked_object)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

type Handler struct {
	config *Config
	db     *sql.DB
	es     *elasticsearch.Client
	logger logger.Logger
	errors *cerrors.ErrorHandler
	clock  func() time.Time
}

func NewHandler(config *Config, db *sql.DB, es *elasticsearch.Client, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		db:     db,
		es:     es,
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
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(cerrors.ErrCodeEmptyBundle)).Inc()
		h.errors.HandleJobError(ctx, client, job,
			cerrors.Wrap(cerrors.ErrCodeEmptyBundle, "failed to parse job variables", err))
		return
	}

	start := time.Now()
	output, err := h.execute(ctx, &input)
	if err != nil {
		code := cerrors.ErrCodeBundlePersistFailed
		if errors.Is(err, ErrEmptyBundle) {
			code = cerrors.ErrCodeEmptyBundle
		}
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(code)).Inc()
		h.errors.HandleJobError(ctx, client, job, cerrors.Wrap(code, "failed to persist bundle", err))
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

// execute writes the bundle and its tasks in one transaction, then indexes a
// search document. Indexing is best effort: the bundle record is the source of
// truth and a dropped index entry is recoverable through a reindex.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if len(input.TaskBundle.Sections) == 0 {
		return nil, ErrEmptyBundle
	}

	now := h.clock().UTC()
	bundleID := uuid.New().String()

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin transaction: %v", ErrBundlePersist, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, insertBundleQuery,
		bundleID,
		input.TaskBundle.Name,
		string(input.SourceContext.Type),
		input.SourceContext.ID,
		now,
	); err != nil {
		return nil, fmt.Errorf("%w: insert bundle: %v", ErrBundlePersist, err)
	}

	taskCount := 0
	for _, section := range input.TaskBundle.Sections {
		for _, task := range section.Tasks {
			var linked interface{}
			if task.LinkedObject != nil {
				raw, err := json.Marshal(task.LinkedObject)
				if err != nil {
					return nil, fmt.Errorf("%w: marshal linked object for %s: %v", ErrBundlePersist, task.ID, err)
				}
				linked = raw
			}

			if _, err := tx.ExecContext(ctx, insertBundleTaskQuery,
				bundleID,
				task.ID,
				section.Name,
				task.Title,
				task.Owner,
				task.DueDate,
				task.Dependency,
				linked,
			); err != nil {
				return nil, fmt.Errorf("%w: insert bundle task %s: %v", ErrBundlePersist, task.ID, err)
			}
			taskCount++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", ErrBundlePersist, err)
	}

	indexed := h.indexBundle(ctx, bundleID, input, now)

	h.logger.Info("bundle created", map[string]interface{}{
		"bundleId":  bundleID,
		"taskCount": taskCount,
		"indexed":   indexed,
	})

	return &Output{
		BundleID:  bundleID,
		TaskCount: taskCount,
		Indexed:   indexed,
		CreatedAt: now.Format(time.RFC3339),
	}, nil
}

func (h *Handler) indexBundle(ctx context.Context, bundleID string, input *Input, now time.Time) bool {
	if h.es == nil {
		return false
	}

	doc := bundleDocument{
		BundleID:    bundleID,
		Name:        input.TaskBundle.Name,
		ContextType: string(input.SourceContext.Type),
		ContextID:   input.SourceContext.ID,
		CreatedAt:   now.Format(time.RFC3339),
	}
	for _, section := range input.TaskBundle.Sections {
		doc.Sections = append(doc.Sections, section.Name)
		for _, task := range section.Tasks {
			doc.Tasks = append(doc.Tasks, bundleDocumentTask{
				ID:      task.ID,
				Title:   task.Title,
				Owner:   task.Owner,
				DueDate: task.DueDate,
				Section: section.Name,
			})
		}
	}

	body, err := json.Marshal(doc)
	if err != nil {
		h.logger.Warn("failed to marshal bundle document", map[string]interface{}{
			"bundleId": bundleID,
			"error":    err.Error(),
		})
		return false
	}

	res, err := h.es.Index(
		h.config.Index,
		bytes.NewReader(body),
		h.es.Index.WithDocumentID(bundleID),
		h.es.Index.WithContext(ctx),
	)
	if err != nil {
		h.logger.Warn("failed to index bundle", map[string]interface{}{
			"bundleId": bundleID,
			"error":    err.Error(),
		})
		return false
	}
	defer res.Body.Close()

	if res.IsError() {
		h.logger.Warn("bundle index request rejected", map[string]interface{}{
			"bundleId": bundleID,
			"status":   res.Status(),
		})
		return false
	}

	return true
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
