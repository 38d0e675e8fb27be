// internal/workers/enrichment/enrich-bill-data/handler.go
package enrichbilldata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	cerrors "warroom-workers/internal/common/errors"
	"warroom-workers/internal/common/httpclient"
	"warroom-workers/internal/common/logger"
	"warroom-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "enrich-bill-data"

	statusUnknown = "status unknown"
)

var (
	ErrMissingBillID = errors.New("MISSING_BILL_ID")
)

type Handler struct {
	config *Config
	http   *httpclient.Client
	logger logger.Logger
	errors *cerrors.ErrorHandler
	clock  func() time.Time
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		http:   httpclient.NewClient(config.Timeout, config.MaxRetries),
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
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(cerrors.ErrCodeBillEnrichFailed)).Inc()
		h.errors.HandleJobError(ctx, client, job,
			cerrors.Wrap(cerrors.ErrCodeBillEnrichFailed, "failed to parse job variables", err))
		return
	}

	start := time.Now()
	output, err := h.execute(ctx, &input)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(cerrors.ErrCodeBillEnrichFailed)).Inc()
		h.errors.HandleJobError(ctx, client, job,
			cerrors.Wrap(cerrors.ErrCodeBillEnrichFailed, "bill enrichment rejected", err))
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

// execute looks the bill up against the Legislature API. Lookup failures
// degrade to "status unknown" rather than failing the job; enrichment is a
// nice-to-have on top of the structured output, not a gate.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.BillID == "" {
		return nil, ErrMissingBillID
	}

	output := &Output{
		BillID:     input.BillID,
		Status:     statusUnknown,
		EnrichedAt: h.clock().UTC().Format(time.RFC3339),
	}

	bill, err := h.fetchBill(ctx, input.BillID)
	if err != nil {
		h.logger.Warn("bill lookup failed", map[string]interface{}{
			"billId": input.BillID,
			"error":  err.Error(),
		})
		return output, nil
	}

	output.Status = bill.Status
	output.Sponsor = bill.Sponsor
	output.Chamber = bill.Chamber
	output.LastAction = bill.LastAction
	output.Enriched = true

	h.logger.Info("bill enriched", map[string]interface{}{
		"billId": input.BillID,
		"status": bill.Status,
	})

	return output, nil
}

func (h *Handler) fetchBill(ctx context.Context, billID string) (*billResponse, error) {
	url := fmt.Sprintf("%s/bills/%s", h.config.BaseURL, billID)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if h.config.APIKey != "" {
		req.Header.Set("X-Api-Key", h.config.APIKey)
	}

	resp, err := h.http.DoWithRetry(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var bill billResponse
	if err := json.NewDecoder(resp.Body).Decode(&bill); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if bill.Status == "" {
		return nil, fmt.Errorf("bill %s has no status", billID)
	}

	return &bill, nil
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
