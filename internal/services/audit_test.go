package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxboard/apiserver/types"
)

func TestAuditRecordSkipsUnknownActor(t *testing.T) {
	svc, repo := newTestAudit()

	svc.Record(context.Background(), 0, types.AuditActionCreate, "oggetto", 1, "ignorata")
	assert.Empty(t, repo.entries)

	svc.Record(context.Background(), 3, types.AuditActionCreate, "oggetto", 1, "registrata")
	require.Len(t, repo.entries, 1)
	require.NotNil(t, repo.entries[0].UserID)
	assert.Equal(t, 3, *repo.entries[0].UserID)
}

func TestAuditListNewestFirst(t *testing.T) {
	svc, _ := newTestAudit()

	svc.Record(context.Background(), 1, types.AuditActionCreate, "oggetto", 1, "prima")
	svc.Record(context.Background(), 1, types.AuditActionUpdate, "oggetto", 1, "seconda")
	svc.Record(context.Background(), 1, types.AuditActionDelete, "oggetto", 1, "terza")

	entries, err := svc.List(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "terza", entries[0].Details)
	assert.Equal(t, "seconda", entries[1].Details)
}
