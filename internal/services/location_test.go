package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxboard/apiserver/internal/store"
	"github.com/boxboard/apiserver/types"
)

func TestLocationCreateRequiresName(t *testing.T) {
	audit, _ := newTestAudit()
	svc := NewLocationService(newFakeLocationRepo(), audit)

	_, err := svc.Create(context.Background(), types.Location{Address: "Via Roma 1"}, 1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLocationLifecycle(t *testing.T) {
	audit, auditRepo := newTestAudit()
	svc := NewLocationService(newFakeLocationRepo(), audit)

	created, err := svc.Create(context.Background(), types.Location{
		Name:    "Cantina Bianchi",
		Address: "Via Roma 1",
	}, 2)
	require.NoError(t, err)

	name := "Cantina Bianchi (piano -2)"
	updated, err := svc.Update(context.Background(), created.ID, types.LocationPatch{Name: &name}, 2)
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, "Via Roma 1", updated.Address)

	require.NoError(t, svc.Delete(context.Background(), created.ID, 2))
	_, err = svc.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.Len(t, auditRepo.entries, 3)
	assert.Equal(t, types.AuditActionDelete, auditRepo.entries[2].Action)
}
