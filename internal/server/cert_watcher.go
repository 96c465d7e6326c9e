package server

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"atsresume/internal/errors"
)

// CertReloader serves the server certificate through tls.Config.GetCertificate
// and reloads it from disk when the certificate or key file changes.
// A pair that fails to load is logged and the previous certificate stays active.
type CertReloader struct {
	mu sync.Mutex

	certFile string
	keyFile  string
	current  atomic.Pointer[tls.Certificate]

	lastModTime map[string]time.Time

	fsWatcher     *fsnotify.Watcher
	debounceDelay time.Duration
	debounceTimer *time.Timer

	stopChan   chan struct{}
	reloadChan chan struct{}

	onReload func(error)
	logger   *errors.Logger
	running  bool
}

// NewCertReloader loads the initial key pair. onReload, when set, is called
// after every reload triggered by a file change.
func NewCertReloader(certFile, keyFile string, debounceDelay time.Duration, onReload func(error), logger *errors.Logger) (*CertReloader, error) {
	if debounceDelay == 0 {
		debounceDelay = time.Second
	}
	if logger == nil {
		logger = errors.Discard()
	}

	cr := &CertReloader{
		certFile:      certFile,
		keyFile:       keyFile,
		lastModTime:   make(map[string]time.Time),
		debounceDelay: debounceDelay,
		stopChan:      make(chan struct{}),
		reloadChan:    make(chan struct{}, 1),
		onReload:      onReload,
		logger:        logger,
	}
	if err := cr.Reload(); err != nil {
		return nil, err
	}
	cr.hasAnyFileChanged()
	return cr, nil
}

// GetCertificate returns the active certificate.
func (cr *CertReloader) GetCertificate(*tls.ClientHelloInfo) (*tls.Certificate, error) {
	return cr.current.Load(), nil
}

// Reload reads the key pair from disk and swaps it in.
func (cr *CertReloader) Reload() error {
	cert, err := tls.LoadX509KeyPair(cr.certFile, cr.keyFile)
	if err != nil {
		return fmt.Errorf("failed to load server cert/key from files: %w", err)
	}
	cr.current.Store(&cert)
	return nil
}

// Start begins watching the certificate and key files.
func (cr *CertReloader) Start() error {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if cr.running {
		return fmt.Errorf("certificate watcher is already running")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	// Watch the directories to catch atomic writes (rename operations)
	for _, dir := range cr.watchedDirs() {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return fmt.Errorf("failed to watch directory %s: %w", dir, err)
		}
	}

	cr.fsWatcher = watcher
	cr.running = true
	go cr.watchLoop()

	cr.logger.Info("Certificate file watcher started",
		"files", []string{cr.certFile, cr.keyFile},
		"debounce_delay", cr.debounceDelay)
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (cr *CertReloader) Stop() error {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if !cr.running {
		return nil
	}
	close(cr.stopChan)
	if cr.debounceTimer != nil {
		cr.debounceTimer.Stop()
	}
	cr.running = false

	if err := cr.fsWatcher.Close(); err != nil {
		cr.logger.LogError(err, "Failed to close certificate watcher")
		return err
	}
	cr.logger.Info("Certificate file watcher stopped")
	return nil
}

func (cr *CertReloader) watchedDirs() []string {
	dirs := []string{filepath.Dir(cr.certFile)}
	if dir := filepath.Dir(cr.keyFile); dir != dirs[0] {
		dirs = append(dirs, dir)
	}
	return dirs
}

func (cr *CertReloader) watchLoop() {
	for {
		select {
		case event, ok := <-cr.fsWatcher.Events:
			if !ok {
				return
			}
			if cr.isRelevant(event) {
				cr.scheduleReload()
			}

		case err, ok := <-cr.fsWatcher.Errors:
			if !ok {
				return
			}
			cr.logger.LogError(err, "Certificate watcher error")

		case <-cr.reloadChan:
			if cr.hasAnyFileChanged() {
				cr.reloadFromWatch()
			}

		case <-cr.stopChan:
			return
		}
	}
}

func (cr *CertReloader) reloadFromWatch() {
	previous := cr.current.Load()
	err := cr.Reload()
	switch {
	case err != nil:
		cr.logger.LogError(err, "Certificate reload failed, keeping previous certificate",
			"cert_file", cr.certFile, "key_file", cr.keyFile)
	case !bytes.Equal(previous.Certificate[0], cr.current.Load().Certificate[0]):
		cr.logger.Info("Server certificate reloaded", "cert_file", cr.certFile)
	}
	if cr.onReload != nil {
		cr.onReload(err)
	}
}

func (cr *CertReloader) isRelevant(event fsnotify.Event) bool {
	base := filepath.Base(event.Name)
	if base != filepath.Base(cr.certFile) && base != filepath.Base(cr.keyFile) {
		return false
	}
	return event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0
}

// hasAnyFileChanged records the current modification times and reports
// whether either file is newer than last seen.
func (cr *CertReloader) hasAnyFileChanged() bool {
	changed := false
	for _, file := range []string{cr.certFile, cr.keyFile} {
		stat, err := os.Stat(file)
		if err != nil {
			continue
		}
		if last, ok := cr.lastModTime[file]; !ok || stat.ModTime().After(last) {
			cr.lastModTime[file] = stat.ModTime()
			changed = true
		}
	}
	return changed
}

func (cr *CertReloader) scheduleReload() {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	if cr.debounceTimer != nil {
		cr.debounceTimer.Stop()
	}
	cr.debounceTimer = time.AfterFunc(cr.debounceDelay, func() {
		select {
		case cr.reloadChan <- struct{}{}:
		default:
		}
	})
}

// WatchedFiles returns the certificate and key paths.
func (cr *CertReloader) WatchedFiles() []string {
	return []string{cr.certFile, cr.keyFile}
}
