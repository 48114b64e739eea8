package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" WARN "))
	assert.Equal(t, slog.LevelError, ParseLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestRotatorRotatesPastMaxSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.log")
	r := &Rotator{Filename: path, MaxSize: 10, MaxBackups: 2}
	defer r.Close()

	_, err := r.Write([]byte("12345678"))
	require.NoError(t, err)
	_, err = r.Write([]byte("abcdefgh"))
	require.NoError(t, err)

	backup, err := os.ReadFile(path + ".1")
	require.NoError(t, err)
	assert.Equal(t, "12345678", string(backup))

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "abcdefgh", string(current))
}

func TestSetupWritesToFile(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	path := filepath.Join(t.TempDir(), "sim.log")
	l, closer := Setup(Options{File: path, MaxSizeMB: 1, MaxBackups: 1, Level: "INFO", Quiet: true})
	l.Info("day simulated", "day", 1)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "day simulated")
	assert.Contains(t, string(b), "day=1")

	rot, ok := closer.(*Rotator)
	require.True(t, ok)
	require.NoError(t, closer.Close())
	assert.Nil(t, rot.file)
}

func TestSetupWithoutFileClosesCleanly(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	_, closer := Setup(Options{Quiet: true})
	assert.NoError(t, closer.Close())
}
