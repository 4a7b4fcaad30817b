// Package watcher reports files created under a directory tree once their
// size has stopped changing for a quiet period.
package watcher

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"photo-bridge/internal/domain"
)

const (
	DefaultStabilityWindow = 3 * time.Second
	DefaultPollInterval    = 500 * time.Millisecond
)

type Options struct {
	StabilityWindow time.Duration
	PollInterval    time.Duration
}

type pendingFile struct {
	size       int64
	modTime    time.Time
	lastChange time.Time
}

// Detector watches one directory tree. Files already present when it starts
// are ignored; only files created afterwards are reported, once each.
type Detector struct {
	root   string
	window time.Duration
	poll   time.Duration
	fsw    *fsnotify.Watcher

	events chan string
	errors chan error
	done   chan struct{}

	mu      sync.Mutex
	pending map[string]*pendingFile

	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

// Watch starts watching root. It fails with domain.ErrWatchEstablish when
// root is missing, not a directory or cannot be watched.
func Watch(root string, opts Options) (*Detector, error) {
	if opts.StabilityWindow <= 0 {
		opts.StabilityWindow = DefaultStabilityWindow
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrWatchEstablish, root, err)
	}
	// Walking does not descend through a symlinked root, so watch its target.
	if link, err := os.Lstat(abs); err == nil && link.Mode()&os.ModeSymlink != 0 {
		if abs, err = filepath.EvalSymlinks(abs); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrWatchEstablish, root, err)
		}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrWatchEstablish, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrWatchEstablish, root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrWatchEstablish, err)
	}

	d := &Detector{
		root:    abs,
		window:  opts.StabilityWindow,
		poll:    opts.PollInterval,
		fsw:     fsw,
		events:  make(chan string),
		errors:  make(chan error, 16),
		done:    make(chan struct{}),
		pending: make(map[string]*pendingFile),
	}

	if err := d.addTree(abs, false); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrWatchEstablish, root, err)
	}

	d.wg.Add(2)
	go d.eventLoop()
	go d.stabilityLoop()

	return d, nil
}

func (d *Detector) Root() string { return d.root }

// Events delivers absolute paths of finalized files. It is closed by Close.
func (d *Detector) Events() <-chan string { return d.events }

// Errors delivers non-fatal watch errors. It is closed by Close.
func (d *Detector) Errors() <-chan error { return d.errors }

// Close stops watching. Once it returns no further events are delivered.
func (d *Detector) Close() error {
	d.closeOnce.Do(func() {
		close(d.done)
		d.closeErr = d.fsw.Close()
		d.wg.Wait()
		close(d.events)
		close(d.errors)
	})
	return d.closeErr
}

// addTree watches dir and every directory below it. With track set, regular
// files found inside are treated as newly created.
func (d *Detector) addTree(dir string, track bool) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if entry.IsDir() {
			if path != dir && ignored(entry.Name()) {
				return filepath.SkipDir
			}
			return d.fsw.Add(path)
		}
		if track && entry.Type().IsRegular() {
			d.track(path)
		}
		return nil
	})
}

func (d *Detector) eventLoop() {
	defer d.wg.Done()
	for {
		select {
		case <-d.done:
			return
		case event, ok := <-d.fsw.Events:
			if !ok {
				return
			}
			d.handleEvent(event)
		case err, ok := <-d.fsw.Errors:
			if !ok {
				return
			}
			d.reportError(err)
		}
	}
}

func (d *Detector) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) {
		return
	}
	if ignored(filepath.Base(event.Name)) {
		return
	}
	info, err := os.Stat(event.Name)
	if err != nil {
		return
	}
	if info.IsDir() {
		if err := d.addTree(event.Name, true); err != nil {
			d.reportError(err)
		}
		return
	}
	if info.Mode().IsRegular() {
		d.track(event.Name)
	}
}

func (d *Detector) track(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.pending[path]; ok {
		return
	}
	d.pending[path] = &pendingFile{size: -1, lastChange: time.Now()}
}

func (d *Detector) stabilityLoop() {
	defer d.wg.Done()
	ticker := time.NewTicker(d.poll)
	defer ticker.Stop()

	for {
		select {
		case <-d.done:
			return
		case now := <-ticker.C:
			for _, path := range d.finalized(now) {
				select {
				case d.events <- path:
				case <-d.done:
					return
				}
			}
		}
	}
}

// finalized stats every pending file and returns those unchanged for at
// least the stability window, removing them from the pending set.
func (d *Detector) finalized(now time.Time) []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	var ready []string
	for path, p := range d.pending {
		info, err := os.Stat(path)
		if err != nil {
			// Removed or renamed away before it settled.
			delete(d.pending, path)
			continue
		}
		if info.Size() != p.size || !info.ModTime().Equal(p.modTime) {
			p.size = info.Size()
			p.modTime = info.ModTime()
			p.lastChange = now
			continue
		}
		if now.Sub(p.lastChange) >= d.window {
			ready = append(ready, path)
			delete(d.pending, path)
		}
	}
	return ready
}

func (d *Detector) reportError(err error) {
	select {
	case d.errors <- err:
	default:
	}
}

// ignored reports names that are never photos: dotfiles, editor and
// download temporaries.
func ignored(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~") {
		return true
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".tmp", ".part", ".crdownload", ".partial":
		return true
	}
	return false
}
