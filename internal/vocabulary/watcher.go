package vocabulary

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"atsresume/internal/errors"
)

// Store holds the active vocabulary and lets it be swapped without locking readers.
type Store struct {
	current atomic.Pointer[Vocabulary]
}

// NewStore creates a store holding v.
func NewStore(v *Vocabulary) *Store {
	s := &Store{}
	s.current.Store(v)
	return s
}

// Get returns the active vocabulary.
func (s *Store) Get() *Vocabulary {
	return s.current.Load()
}

// Swap replaces the active vocabulary.
func (s *Store) Swap(v *Vocabulary) {
	s.current.Store(v)
}

// Watcher reloads a vocabulary file into a Store whenever it changes on disk.
// A file that fails to load or validate is logged and the previous vocabulary is kept.
type Watcher struct {
	mu sync.Mutex

	path          string
	store         *Store
	onReload      func(*Vocabulary, error)
	logger        *errors.Logger
	debounceDelay time.Duration
	debounceTimer *time.Timer

	fsWatcher  *fsnotify.Watcher
	lastMod    time.Time
	stopChan   chan struct{}
	reloadChan chan struct{}
	running    bool
}

// NewWatcher creates a watcher for path. onReload, when set, is called after
// every reload attempt with either the new vocabulary or the rejection error.
func NewWatcher(path string, store *Store, debounceDelay time.Duration, onReload func(*Vocabulary, error), logger *errors.Logger) *Watcher {
	if debounceDelay == 0 {
		debounceDelay = 500 * time.Millisecond
	}
	if logger == nil {
		logger = errors.Discard()
	}
	return &Watcher{
		path:          path,
		store:         store,
		onReload:      onReload,
		logger:        logger,
		debounceDelay: debounceDelay,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1),
	}
}

// Start begins watching the vocabulary file.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return fmt.Errorf("vocabulary watcher is already running")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the directory to catch atomic writes (rename operations)
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	if stat, err := os.Stat(w.path); err == nil {
		w.lastMod = stat.ModTime()
	}

	w.fsWatcher = fsw
	w.running = true
	go w.watchLoop()

	w.logger.Info("Vocabulary watcher started", "file", w.path, "debounce_delay", w.debounceDelay)
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	close(w.stopChan)
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.running = false

	if err := w.fsWatcher.Close(); err != nil {
		w.logger.LogError(err, "Failed to close vocabulary watcher")
		return err
	}
	w.logger.Info("Vocabulary watcher stopped")
	return nil
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if w.isRelevant(event) {
				w.scheduleReload()
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.LogError(err, "Vocabulary watcher error")

		case <-w.reloadChan:
			if w.hasChanged() {
				w.reload()
			}

		case <-w.stopChan:
			return
		}
	}
}

func (w *Watcher) isRelevant(event fsnotify.Event) bool {
	if filepath.Base(event.Name) != filepath.Base(w.path) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

func (w *Watcher) hasChanged() bool {
	stat, err := os.Stat(w.path)
	if err != nil {
		return false
	}
	if stat.ModTime().After(w.lastMod) {
		w.lastMod = stat.ModTime()
		return true
	}
	return false
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debounceDelay, func() {
		select {
		case w.reloadChan <- struct{}{}:
		default:
		}
	})
}

// reload loads the file and swaps it in only when it validates.
func (w *Watcher) reload() {
	vocab, err := Load(w.path)
	if err != nil {
		w.logger.LogError(err, "Vocabulary reload rejected, keeping previous version",
			"file", w.path, "active_version", w.store.Get().Version)
		if w.onReload != nil {
			w.onReload(nil, err)
		}
		return
	}

	previous := w.store.Get().Version
	w.store.Swap(vocab)
	w.logger.Info("Vocabulary reloaded", "file", w.path, "previous_version", previous, "version", vocab.Version)

	if w.onReload != nil {
		w.onReload(vocab, nil)
	}
}
