// internal/workers/communication/send-draft/handler.go
package senddraft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	cerrors "warroom-workers/internal/common/errors"
	"warroom-workers/internal/common/logger"
	"warroom-workers/internal/common/metrics"
	"warroom-workers/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "send-draft"

	smsBodyLimit = 140
)

var (
	ErrDraftInvalid      = errors.New("DRAFT_INVALID")
	ErrRecipientNotFound = errors.New("RECIPIENT_NOT_FOUND")
	ErrDraftSend         = errors.New("DRAFT_SEND_FAILED")
)

// SESService is the slice of the SES client the handler needs.
type SESService interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SNSService is the slice of the SNS client the handler needs.
type SNSService interface {
	Publish(ctx context.Context, input *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config *Config
	ses    SESService
	sns    SNSService
	logger logger.Logger
	errors *cerrors.ErrorHandler
	clock  func() time.Time
}

func NewHandler(config *Config, sesSvc SESService, snsSvc SNSService, log logger.Logger) *Handler {
	scoped := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config: config,
		ses:    sesSvc,
		sns:    snsSvc,
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
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(cerrors.ErrCodeDraftInvalid)).Inc()
		h.errors.HandleJobError(ctx, client, job,
			cerrors.Wrap(cerrors.ErrCodeDraftInvalid, "failed to parse job variables", err))
		return
	}

	start := time.Now()
	output, err := h.execute(ctx, &input)
	if err != nil {
		code := cerrors.ErrCodeDraftSendFailed
		switch {
		case errors.Is(err, ErrDraftInvalid):
			code = cerrors.ErrCodeDraftInvalid
		case errors.Is(err, ErrRecipientNotFound):
			code = cerrors.ErrCodeRecipientNotFound
		}
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(code)).Inc()
		h.errors.HandleJobError(ctx, client, job, cerrors.Wrap(code, "failed to send draft", err))
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	h.completeJob(client, job, output)
}

// execute sends the rendered draft by email, and for high-priority sends also
// pushes an SMS nudge when the recipient has a phone number on file.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Draft.Content == "" || input.Draft.Title == "" {
		return nil, fmt.Errorf("%w: draft title and content are required", ErrDraftInvalid)
	}
	if input.Recipient.Email == "" {
		return nil, fmt.Errorf("%w: recipient email is required", ErrRecipientNotFound)
	}

	res, err := h.ses.SendEmail(ctx, &ses.SendEmailInput{
		Source: aws.String(h.config.FromEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{input.Recipient.Email},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{
				Data: aws.String(input.Draft.Title),
			},
			Body: &sestypes.Body{
				Text: &sestypes.Content{
					Data: aws.String(input.Draft.Content),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDraftSend, err)
	}

	output := &Output{
		MessageID: aws.ToString(res.MessageId),
		SentAt:    h.clock().UTC().Format(time.RFC3339),
	}

	if h.shouldSendSMS(input) {
		if err := h.sendSMS(ctx, input); err != nil {
			// The email already went out, so a failed nudge only degrades.
			h.logger.Warn("sms nudge failed", map[string]interface{}{
				"recipient": input.Recipient.Name,
				"error":     err.Error(),
			})
		} else {
			output.SMSSent = true
		}
	}

	h.logger.Info("draft sent", map[string]interface{}{
		"draftType": string(input.Draft.Type),
		"messageId": output.MessageID,
		"smsSent":   output.SMSSent,
	})

	return output, nil
}

func (h *Handler) shouldSendSMS(input *Input) bool {
	return h.config.SMSEnabled &&
		h.sns != nil &&
		input.Priority == models.PriorityHigh &&
		input.Recipient.Phone != ""
}

func (h *Handler) sendSMS(ctx context.Context, input *Input) error {
	body := input.Draft.Title + ": " + input.Draft.Content
	if len(body) > smsBodyLimit {
		body = strings.TrimSpace(body[:smsBodyLimit-3]) + "..."
	}

	_, err := h.sns.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(input.Recipient.Phone),
		Message:     aws.String(body),
	})
	return err
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
