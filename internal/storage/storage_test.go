package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentdesk/internal/store"
)

func testSlot(t *testing.T) *Slot {
	t.Helper()
	slot, err := Open(context.Background(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := slot.Close(); err != nil {
			t.Errorf("close slot: %v", err)
		}
	})
	return slot
}

func TestSaveAndLoad(t *testing.T) {
	slot := testSlot(t)
	ctx := context.Background()

	require.NoError(t, slot.Save(ctx, "k", []byte(`{"leads":[]}`)))

	value, err := slot.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"leads":[]}`, string(value))
}

func TestSaveOverwrites(t *testing.T) {
	slot := testSlot(t)
	ctx := context.Background()

	require.NoError(t, slot.Save(ctx, "k", []byte("one")))
	require.NoError(t, slot.Save(ctx, "k", []byte("two")))

	value, err := slot.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "two", string(value))
}

func TestLoadMissingKey(t *testing.T) {
	slot := testSlot(t)

	_, err := slot.Load(context.Background(), "never-written")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSnapshotSlot(t *testing.T) {
	slot := testSlot(t)

	_, err := slot.LoadSnapshot()
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, slot.SaveSnapshot([]byte(`{"user":null}`)))

	value, err := slot.LoadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, `{"user":null}`, string(value))
}

func TestSlotBackedStoreRoundTrip(t *testing.T) {
	slot := testSlot(t)

	first := store.New(store.Options{Persister: slot})
	first.Seed()
	lead := first.AddLead(store.Lead{Name: "Jane Doe", DealValue: 250000})

	// a second session restores what the first one persisted
	snapshot, err := slot.LoadSnapshot()
	require.NoError(t, err)

	second := store.New(store.Options{Persister: slot})
	require.NoError(t, second.Restore(snapshot))

	require.Len(t, second.Leads(), 7)
	restored, ok := second.LeadByID(lead.ID)
	require.True(t, ok)
	assert.Equal(t, "Jane Doe", restored.Name)
	assert.Equal(t, float64(250000), restored.DealValue)

	// templates are outside the default persisted set but come back anyway
	assert.Len(t, second.EmailTemplates(), 4)
	assert.True(t, second.Persisting())
}

func TestOpenCreatesDirectory(t *testing.T) {
	dir := t.TempDir() + "/nested/data"
	slot, err := Open(context.Background(), dir)
	require.NoError(t, err)
	defer slot.Close()

	assert.Contains(t, slot.Path(), "agentdesk.db")
}
