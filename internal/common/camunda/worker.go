// internal/common/camunda/worker.go
package camunda

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"go.uber.org/zap"
)

// JobHandler is the signature every task package exposes. Handlers complete
// or fail the job themselves through the JobClient.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// Worker ties one task type to its handler on a shared Zeebe connection.
type Worker struct {
	worker   worker.JobWorker
	logger   *zap.Logger
	taskType string
}

func NewWorker(
	client zbc.Client,
	taskType string,
	maxJobsActive int,
	handler JobHandler,
	logger *zap.Logger,
) *Worker {
	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(handler.Handle).
		MaxJobsActive(maxJobsActive).
		Open()

	logger.Info("worker registered", zap.String("taskType", taskType))

	return &Worker{
		worker:   jobWorker,
		logger:   logger,
		taskType: taskType,
	}
}

func (w *Worker) TaskType() string {
	return w.taskType
}

func (w *Worker) Stop(ctx context.Context) {
	w.logger.Info("stopping worker", zap.String("taskType", w.taskType))
	w.worker.Close()
}
