// internal/workers/structuring/structure-document/handler.go
package structuredocument

import (
	"context"
	"encoding/json"
	"time"

	cerrors "warroom-workers/internal/common/errors"
	"warroom-workers/internal/common/logger"
	"warroom-workers/internal/common/metrics"
	"warroom-workers/internal/common/observability"
	"warroom-workers/internal/common/validation"
	"warroom-workers/internal/models"
	"warroom-workers/internal/structuring"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "structure-document"
)

type Handler struct {
	config   *Config
	pipeline *structuring.Pipeline
	obs      *observability.Observability
	logger   logger.Logger
	errors   *cerrors.ErrorHandler
	clock    func() time.Time
}

func NewHandler(config *Config, pipeline *structuring.Pipeline, obs *observability.Observability, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		pipeline: pipeline,
		obs:      obs,
		logger:   scoped,
		errors:   cerrors.NewErrorHandler(scoped),
		clock:    time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	if err := validation.ValidateStructureRequest([]byte(job.Variables)); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(cerrors.ErrCodeStructuringInputInvalid)).Inc()
		h.errors.HandleJobError(ctx, client, job,
			cerrors.Wrap(cerrors.ErrCodeStructuringInputInvalid, "invalid structure request", err))
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(cerrors.ErrCodeStructuringInputInvalid)).Inc()
		h.errors.HandleJobError(ctx, client, job,
			cerrors.Wrap(cerrors.ErrCodeStructuringInputInvalid, "failed to parse job variables", err))
		return
	}

	start := time.Now()
	output, err := h.execute(ctx, &input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(cerrors.ErrCodeInternal)).Inc()
		h.errors.HandleJobError(ctx, client, job, err)
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

// execute runs the pipeline. It cannot fail for any text input; the error
// return exists for the worker contract and future validation.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	ctx, span := h.obs.StartSpan(ctx, "structuring.run")
	defer span.End()

	now := h.clock().UTC()
	result := h.pipeline.Run(input.SourceText, input.SourceContext, now)

	h.recordEntityMetrics(result.Summary.Entities)
	h.obs.RecordJobProcessed(ctx, "success")

	h.logger.Info("document structured", map[string]interface{}{
		"contextType": string(input.SourceContext.Type),
		"entityCount": len(result.Summary.Entities),
		"bulletCount": len(result.Summary.Bullets),
		"actionItems": len(result.ActionItems),
		"sections":    len(result.TaskBundle.Sections),
		"drafts":      len(result.FollowUpDrafts),
	})

	return &Output{
		Result:       result,
		StructuredAt: now.Format(time.RFC3339),
	}, nil
}

func (h *Handler) recordEntityMetrics(entities []models.DetectedEntity) {
	counts := map[models.EntityType]int{}
	for _, e := range entities {
		counts[e.Type]++
	}
	for _, family := range []models.EntityType{models.EntityBill, models.EntityLegislator, models.EntityClient, models.EntityCommittee} {
		metrics.StructuringEntitiesDetected.WithLabelValues(string(family)).Observe(float64(counts[family]))
	}
	if len(entities) == 0 {
		metrics.StructuringFallbackRuns.Inc()
	}
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
