package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxboard/apiserver/types"
)

func newTestAssignmentService() (*AssignmentService, *fakeAuditRepo) {
	audit, auditRepo := newTestAudit()
	return NewAssignmentService(newFakeAssignmentRepo(), audit), auditRepo
}

func TestAssignmentCreateRequiresReferences(t *testing.T) {
	svc, _ := newTestAssignmentService()

	_, err := svc.Create(context.Background(), types.Assignment{ActivityID: 1}, 1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), types.Assignment{ItemID: 1}, 1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAssignmentCompleteStampsDate(t *testing.T) {
	svc, _ := newTestAssignmentService()

	created, err := svc.Create(context.Background(), types.Assignment{ItemID: 1, ActivityID: 2}, 1)
	require.NoError(t, err)
	require.Nil(t, created.CompletedDate)

	completed := true
	updated, err := svc.Update(context.Background(), created.ID, types.AssignmentPatch{
		Completed: &completed,
	}, 1)
	require.NoError(t, err)

	assert.True(t, updated.Completed)
	require.NotNil(t, updated.CompletedDate)
	assert.WithinDuration(t, time.Now(), *updated.CompletedDate, time.Minute)
}

func TestAssignmentCompleteKeepsExplicitDate(t *testing.T) {
	svc, _ := newTestAssignmentService()

	created, err := svc.Create(context.Background(), types.Assignment{ItemID: 1, ActivityID: 2}, 1)
	require.NoError(t, err)

	completed := true
	when := time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC)
	updated, err := svc.Update(context.Background(), created.ID, types.AssignmentPatch{
		Completed:     &completed,
		CompletedDate: &when,
	}, 1)
	require.NoError(t, err)

	require.NotNil(t, updated.CompletedDate)
	assert.True(t, updated.CompletedDate.Equal(when))
}

func TestAssignmentPatchClearsAssigneeAndDates(t *testing.T) {
	svc, _ := newTestAssignmentService()

	assignee := 5
	planned := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(context.Background(), types.Assignment{
		ItemID:      1,
		ActivityID:  2,
		AssigneeID:  &assignee,
		PlannedDate: &planned,
	}, 1)
	require.NoError(t, err)

	zeroID := 0
	zeroDate := time.Time{}
	updated, err := svc.Update(context.Background(), created.ID, types.AssignmentPatch{
		AssigneeID:  &zeroID,
		PlannedDate: &zeroDate,
	}, 1)
	require.NoError(t, err)

	assert.Nil(t, updated.AssigneeID)
	assert.Nil(t, updated.PlannedDate)
}

func TestAssignmentDeleteRecordsAudit(t *testing.T) {
	svc, auditRepo := newTestAssignmentService()

	created, err := svc.Create(context.Background(), types.Assignment{ItemID: 1, ActivityID: 2}, 3)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID, 3))

	require.Len(t, auditRepo.entries, 2)
	assert.Equal(t, types.AuditActionDelete, auditRepo.entries[1].Action)
	assert.Equal(t, "oggetto_attivita", auditRepo.entries[1].Entity)
}
