package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentdesk/internal/store"
)

func TestWriteConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Data{
		Name:     "Alex",
		Timezone: "America/New_York",
		DataDir:  "/tmp/agentdesk",
		Persist:  []string{store.KeyLeads, store.KeyTasks},
	}

	require.NoError(t, writeConfig(path, cfg))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded Data
	require.NoError(t, json.Unmarshal(raw, &loaded))
	assert.Equal(t, cfg, loaded)
}

func TestLocation(t *testing.T) {
	s := &Store{Config: Data{Timezone: "America/New_York"}}
	loc := s.Location()
	require.NotNil(t, loc)
	assert.Equal(t, "America/New_York", loc.String())
}

func TestLocationFallsBackToUTC(t *testing.T) {
	s := &Store{Config: Data{Timezone: "Not/AZone"}}
	assert.Equal(t, time.UTC, s.Location())

	var nilStore *Store
	assert.Equal(t, time.UTC, nilStore.Location())
}

func TestDefaultConfigPersistSet(t *testing.T) {
	cfg := defaultConfig()
	assert.NotEmpty(t, cfg.Name)
	assert.NotEmpty(t, cfg.Timezone)
	assert.Equal(t, store.DefaultPersist(), cfg.Persist)
}
