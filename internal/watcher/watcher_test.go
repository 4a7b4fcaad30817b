package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-bridge/internal/domain"
)

var testOpts = Options{
	StabilityWindow: 300 * time.Millisecond,
	PollInterval:    25 * time.Millisecond,
}

func waitEvent(t *testing.T, d *Detector, timeout time.Duration) (string, time.Time) {
	t.Helper()
	select {
	case path, ok := <-d.Events():
		require.True(t, ok, "events channel closed")
		return path, time.Now()
	case <-time.After(timeout):
		t.Fatal("timed out waiting for finalized file")
	}
	return "", time.Time{}
}

func assertNoEvent(t *testing.T, d *Detector, wait time.Duration) {
	t.Helper()
	select {
	case path, ok := <-d.Events():
		if ok {
			t.Fatalf("unexpected event for %s", path)
		}
	case <-time.After(wait):
	}
}

func TestWatch_RejectsMissingFolder(t *testing.T) {
	_, err := Watch(filepath.Join(t.TempDir(), "nope"), testOpts)
	assert.True(t, errors.Is(err, domain.ErrWatchEstablish))
}

func TestWatch_RejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.jpg")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, err := Watch(path, testOpts)
	assert.True(t, errors.Is(err, domain.ErrWatchEstablish))
}

func TestWatch_IgnoresExistingFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.jpg"), []byte("old"), 0o644))

	d, err := Watch(dir, testOpts)
	require.NoError(t, err)
	defer d.Close()

	assertNoEvent(t, d, 3*testOpts.StabilityWindow)
}

func TestWatch_EmitsOnlyAfterQuiescence(t *testing.T) {
	dir := t.TempDir()
	d, err := Watch(dir, testOpts)
	require.NoError(t, err)
	defer d.Close()

	path := filepath.Join(dir, "growing.jpg")
	f, err := os.Create(path)
	require.NoError(t, err)

	// Keep growing for well over the stability window.
	growFor := 4 * testOpts.StabilityWindow
	deadline := time.Now().Add(growFor)
	var lastWrite time.Time
	for time.Now().Before(deadline) {
		_, err := f.Write(make([]byte, 1024))
		require.NoError(t, err)
		lastWrite = time.Now()

		select {
		case p := <-d.Events():
			t.Fatalf("%s reported while still growing", p)
		case <-time.After(50 * time.Millisecond):
		}
	}
	require.NoError(t, f.Close())

	got, at := waitEvent(t, d, 5*time.Second)
	assert.Equal(t, path, got)
	// A poll may land between the write syscall and time.Now above.
	assert.GreaterOrEqual(t, at.Sub(lastWrite), testOpts.StabilityWindow-testOpts.PollInterval)
}

func TestWatch_EachFileOnce(t *testing.T) {
	dir := t.TempDir()
	d, err := Watch(dir, testOpts)
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.jpg"), []byte("b"), 0o644))

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		p, _ := waitEvent(t, d, 3*time.Second)
		seen[filepath.Base(p)] = true
	}
	assert.Equal(t, map[string]bool{"a.jpg": true, "b.jpg": true}, seen)
	assertNoEvent(t, d, 3*testOpts.StabilityWindow)
}

func TestWatch_SkipsTemporaryFiles(t *testing.T) {
	dir := t.TempDir()
	d, err := Watch(dir, testOpts)
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".DS_Store"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "IMG_1.JPG.part"), []byte("x"), 0o644))

	assertNoEvent(t, d, 3*testOpts.StabilityWindow)
}

func TestWatch_NewSubdirectory(t *testing.T) {
	dir := t.TempDir()
	d, err := Watch(dir, testOpts)
	require.NoError(t, err)
	defer d.Close()

	sub := filepath.Join(dir, "card1")
	require.NoError(t, os.Mkdir(sub, 0o755))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "c.jpg"), []byte("c"), 0o644))

	p, _ := waitEvent(t, d, 3*time.Second)
	assert.Equal(t, filepath.Join(sub, "c.jpg"), p)
}

func TestWatch_FollowsSymlinkedRoot(t *testing.T) {
	base := t.TempDir()
	target := filepath.Join(base, "card")
	require.NoError(t, os.Mkdir(target, 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(target, "dcim"), 0o755))
	link := filepath.Join(base, "live")
	require.NoError(t, os.Symlink(target, link))

	d, err := Watch(link, testOpts)
	require.NoError(t, err)
	defer d.Close()

	resolved, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, resolved, d.Root())

	require.NoError(t, os.WriteFile(filepath.Join(link, "IMG_1.jpg"), []byte("a"), 0o644))
	p, _ := waitEvent(t, d, 3*time.Second)
	assert.Equal(t, filepath.Join(resolved, "IMG_1.jpg"), p)

	require.NoError(t, os.WriteFile(filepath.Join(link, "dcim", "IMG_2.jpg"), []byte("b"), 0o644))
	p, _ = waitEvent(t, d, 3*time.Second)
	assert.Equal(t, filepath.Join(resolved, "dcim", "IMG_2.jpg"), p)
}

func TestClose_StopsDelivery(t *testing.T) {
	dir := t.TempDir()
	d, err := Watch(dir, testOpts)
	require.NoError(t, err)

	require.NoError(t, d.Close())
	require.NoError(t, d.Close())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "late.jpg"), []byte("x"), 0o644))

	_, ok := <-d.Events()
	assert.False(t, ok)
}

func TestIgnored(t *testing.T) {
	assert.True(t, ignored(".hidden.jpg"))
	assert.True(t, ignored("backup~"))
	assert.True(t, ignored("x.crdownload"))
	assert.True(t, ignored("x.TMP"))
	assert.False(t, ignored("IMG_0001.JPG"))
	assert.False(t, ignored("DSC_0001.NEF"))
}
