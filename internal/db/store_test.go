package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return store
}

func TestRecordOrder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	order := &Order{
		SessionID:     "cs_1",
		CourseID:      "ai-fundamentals-self-paced",
		CourseName:    "AI Fundamentals - Self-Paced",
		CustomerEmail: "student@example.com",
		AmountTotal:   49700,
		Currency:      "usd",
	}

	created, err := store.RecordOrder(ctx, order)
	require.NoError(t, err)
	assert.True(t, created)

	// Redelivery of the same session id.
	created, err = store.RecordOrder(ctx, &Order{SessionID: "cs_1"})
	require.NoError(t, err)
	assert.False(t, created)

	created, err = store.RecordOrder(ctx, &Order{SessionID: "cs_2"})
	require.NoError(t, err)
	assert.True(t, created)
}

func TestSaveLead(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveLead(ctx, &Lead{
		Name:     "Grace Hopper",
		Email:    "grace@example.com",
		Interest: "ai-fundamentals",
	}))

	// Same email again updates the record instead of erroring on the
	// unique index.
	require.NoError(t, store.SaveLead(ctx, &Lead{
		Name:     "Grace B. Hopper",
		Email:    "grace@example.com",
		Interest: "business-leaders",
	}))

	var leads []Lead
	require.NoError(t, store.db.Find(&leads).Error)
	require.Len(t, leads, 1)
	assert.Equal(t, "Grace B. Hopper", leads[0].Name)
	assert.Equal(t, "business-leaders", leads[0].Interest)
	assert.NotEmpty(t, leads[0].LeadID)
}
