// internal/workers/records/create-tasks/handler_test.go
package createtasks

import (
	"context"
	"testing"
	"time"

	"warroom-workers/internal/common/logger"
	"warroom-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Setup
// ==========================

var testNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func newTestHandler(t *testing.T) (*Handler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := NewHandler(LoadConfig(), db, logger.NewNoOpLogger())
	h.clock = func() time.Time { return testNow }
	return h, mock
}

func testInput() *Input {
	return &Input{
		SourceContext: models.SourceContext{
			Type: models.ContextRecord,
			ID:   "rec-001",
		},
		ActionItems: []models.ActionItem{
			{
				ID:               "action-meeting-recap",
				Text:             "Send meeting recap to attendees",
				Priority:         models.PriorityHigh,
				SuggestedOwner:   "Account Lead",
				SuggestedDueDate: "2025-03-11",
				LinkedObjects: []models.EntityRef{
					{Type: models.EntityLegislator, ID: "leg-maria-lopez", Name: "Maria Lopez"},
				},
				Selected: true,
			},
			{
				ID:               "action-amendment-review",
				Text:             "Review proposed amendment language",
				Priority:         models.PriorityMedium,
				SuggestedOwner:   "Policy Team",
				SuggestedDueDate: "2025-03-14",
				Selected:         false,
			},
		},
	}
}

// ==========================
// Execute Tests
// ==========================

func TestExecute_PersistsSelectedItems(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectExec("INSERT INTO tasks").
		WithArgs("action-meeting-recap", "Send meeting recap to attendees", "high",
			"Account Lead", "2025-03-11", "record", "rec-001", sqlmock.AnyArg(), testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	output, err := h.Execute(context.Background(), testInput())
	require.NoError(t, err)

	assert.Equal(t, 1, output.CreatedCount)
	assert.Equal(t, 1, output.SkippedCount)
	assert.Equal(t, []string{"action-meeting-recap"}, output.TaskIDs)
	assert.Equal(t, "2025-03-10T09:00:00Z", output.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_IdempotentOnConflict(t *testing.T) {
	h, mock := newTestHandler(t)

	// ON CONFLICT DO NOTHING reports zero rows affected for the duplicate.
	mock.ExpectExec("INSERT INTO tasks").
		WillReturnResult(sqlmock.NewResult(0, 0))

	output, err := h.Execute(context.Background(), testInput())
	require.NoError(t, err)

	assert.Equal(t, 0, output.CreatedCount)
	assert.Equal(t, 2, output.SkippedCount)
	assert.Empty(t, output.TaskIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExecute_NoActionItems(t *testing.T) {
	h, _ := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{})
	assert.ErrorIs(t, err, ErrNoActionItems)
}

func TestExecute_InsertFailure(t *testing.T) {
	h, mock := newTestHandler(t)

	mock.ExpectExec("INSERT INTO tasks").
		WillReturnError(assert.AnError)

	_, err := h.Execute(context.Background(), testInput())
	assert.ErrorIs(t, err, ErrTaskPersist)
}
