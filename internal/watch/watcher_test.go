package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, "sitepack.yaml")
	require.NoError(t, os.WriteFile(project, []byte("version: \"1\"\n"), 0o644))

	var calls, active, overlapped atomic.Int32
	w, err := New([]string{project, filepath.Join(dir, ".env")}, func(context.Context) error {
		if active.Add(1) > 1 {
			overlapped.Store(1)
		}
		defer active.Add(-1)
		calls.Add(1)
		time.Sleep(10 * time.Millisecond)
		return errors.New("reload errors are logged, not fatal")
	}, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer func() { _ = w.Stop() }()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(project, []byte("version: \"1\"\n# edit\n"), 0o644))
	}
	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 5*time.Second, 10*time.Millisecond)

	before := calls.Load()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SITEPACK_X=1\n"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() > before }, 5*time.Second, 10*time.Millisecond)

	assert.Zero(t, overlapped.Load())
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	project := filepath.Join(dir, "sitepack.yaml")
	require.NoError(t, os.WriteFile(project, nil, 0o644))

	var calls atomic.Int32
	w, err := New([]string{project}, func(context.Context) error {
		calls.Add(1)
		return nil
	}, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, w.Stop())

	assert.Zero(t, calls.Load())
}

func TestWatcher_StartStop(t *testing.T) {
	_, err := New(nil, nil)
	assert.Error(t, err)

	w, err := New([]string{filepath.Join(t.TempDir(), "sitepack.yaml")}, func(context.Context) error { return nil })
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	assert.Error(t, w.Start(context.Background()))
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}
