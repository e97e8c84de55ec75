package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/alexhholmes/bptree"
)

func TestZapAdapter(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := NewZap(zap.New(core))

	log.Info("tree height increased", "height", 2, "keys", 3)
	log.Warn("careful")
	log.Error("broken", "node", "leaf")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "tree height increased", entries[0].Message)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, map[string]any{"height": int64(2), "keys": int64(3)}, entries[0].ContextMap())
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "leaf", entries[2].ContextMap()["node"])
}

func TestLogrusAdapter(t *testing.T) {
	base, hook := test.NewNullLogger()
	log := NewLogrus(base)

	log.Info("clearing tree", "keys", 10, "height", 3)
	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "clearing tree", entry.Message)
	assert.Equal(t, logrus.Fields{"keys": 10, "height": 3}, entry.Data)

	log.Warn("w")
	log.Error("e", "dangling")
	require.Len(t, hook.Entries, 3)
	assert.Equal(t, logrus.WarnLevel, hook.Entries[1].Level)
	assert.Equal(t, logrus.ErrorLevel, hook.Entries[2].Level)
	assert.Empty(t, hook.Entries[2].Data)
}

func TestArgsToFieldsSkipsNonStringKeys(t *testing.T) {
	fields := argsToFields([]any{"a", 1, 2, "b", "c", true})
	assert.Equal(t, logrus.Fields{"a": 1, "c": true}, fields)
}

func TestAdaptersDriveTree(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	tree := bptree.MustNewOrdered[int](3, bptree.WithLogger(NewZap(zap.New(core))))

	for i := 0; i < 3; i++ {
		tree.Insert(i)
	}
	assert.Equal(t, 1, logs.FilterMessage("tree height increased").Len())
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bptree.log")

	log, err := New(Config{Level: "warn", Format: "json", OutputFile: path})
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("shown", zap.Int("degree", 4))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), `"msg":"shown"`)
	assert.Contains(t, string(data), `"degree":4`)
	assert.Contains(t, string(data), `"component":"bptree"`)
}

func TestNewDefaultsToInfo(t *testing.T) {
	log, err := New(Config{Level: "nonsense"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNewBadPath(t *testing.T) {
	_, err := New(Config{OutputFile: filepath.Join(t.TempDir(), "missing", "x.log")})
	assert.Error(t, err)
}
