// internal/workers/communication/send-draft/handler_test.go
package senddraft

import (
	"context"
	"testing"
	"time"

	"warroom-workers/internal/common/logger"
	"warroom-workers/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Mocks
// ==========================

type mockSES struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (m *mockSES) SendEmail(_ context.Context, input *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-123")}, nil
}

type mockSNS struct {
	inputs []*sns.PublishInput
	err    error
}

func (m *mockSNS) Publish(_ context.Context, input *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.inputs = append(m.inputs, input)
	if m.err != nil {
		return nil, m.err
	}
	return &sns.PublishOutput{MessageId: aws.String("sms-456")}, nil
}

// ==========================
// Test Setup
// ==========================

var testNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T) (*Handler, *mockSES, *mockSNS) {
	t.Helper()
	sesMock := &mockSES{}
	snsMock := &mockSNS{}
	h := NewHandler(LoadConfig(), sesMock, snsMock, logger.NewNoOpLogger())
	h.clock = func() time.Time { return testNow }
	return h, sesMock, snsMock
}

func testInput() *Input {
	return &Input{
		Draft: models.FollowUpDraft{
			Type:    models.DraftEmail,
			Title:   "Follow-up",
			Content: "Thanks for meeting with us today.",
		},
		Recipient: Recipient{
			Name:  "Maria Lopez",
			Email: "maria.lopez@example.com",
			Phone: "+15125550100",
		},
	}
}

// ==========================
// Execute Tests
// ==========================

func TestExecute_SendsEmail(t *testing.T) {
	h, sesMock, snsMock := newTestHandler(t)

	output, err := h.Execute(context.Background(), testInput())
	require.NoError(t, err)

	assert.Equal(t, "msg-123", output.MessageID)
	assert.False(t, output.SMSSent)
	assert.Equal(t, "2025-03-10T09:00:00Z", output.SentAt)

	require.Len(t, sesMock.inputs, 1)
	sent := sesMock.inputs[0]
	assert.Equal(t, []string{"maria.lopez@example.com"}, sent.Destination.ToAddresses)
	assert.Equal(t, "Follow-up", aws.ToString(sent.Message.Subject.Data))
	assert.Empty(t, snsMock.inputs)
}

func TestExecute_HighPrioritySendsSMS(t *testing.T) {
	h, _, snsMock := newTestHandler(t)

	input := testInput()
	input.Priority = models.PriorityHigh

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, output.SMSSent)

	require.Len(t, snsMock.inputs, 1)
	assert.Equal(t, "+15125550100", aws.ToString(snsMock.inputs[0].PhoneNumber))
}

func TestExecute_NoPhoneSkipsSMS(t *testing.T) {
	h, _, snsMock := newTestHandler(t)

	input := testInput()
	input.Priority = models.PriorityHigh
	input.Recipient.Phone = ""

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, output.SMSSent)
	assert.Empty(t, snsMock.inputs)
}

func TestExecute_SMSFailureDoesNotFailJob(t *testing.T) {
	h, _, snsMock := newTestHandler(t)
	snsMock.err = assert.AnError

	input := testInput()
	input.Priority = models.PriorityHigh

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, output.SMSSent)
	assert.Equal(t, "msg-123", output.MessageID)
}

func TestExecute_InvalidDraft(t *testing.T) {
	h, _, _ := newTestHandler(t)

	input := testInput()
	input.Draft.Content = ""

	_, err := h.Execute(context.Background(), input)
	assert.ErrorIs(t, err, ErrDraftInvalid)
}

func TestExecute_MissingRecipient(t *testing.T) {
	h, _, _ := newTestHandler(t)

	input := testInput()
	input.Recipient.Email = ""

	_, err := h.Execute(context.Background(), input)
	assert.ErrorIs(t, err, ErrRecipientNotFound)
}

func TestExecute_EmailFailure(t *testing.T) {
	h, sesMock, _ := newTestHandler(t)
	sesMock.err = assert.AnError

	_, err := h.Execute(context.Background(), testInput())
	assert.ErrorIs(t, err, ErrDraftSend)
}
