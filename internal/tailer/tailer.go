package tailer

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/atikulmunna/prettylog/internal/watcher"
)

const (
	reconnectAttempts = 5
	reconnectDelay    = time.Second
)

// Tailer follows watched files: it emits their current contents, then
// every line appended afterwards. It never reaches end of input.
type Tailer struct {
	mu     sync.Mutex
	files  map[string]*trackedFile
	watch  *watcher.Watcher
	reopen chan string
	logger *log.Logger
}

type trackedFile struct {
	path   string
	file   *os.File
	reader *bufio.Reader
	offset int64
	buf    string // partial line without its newline yet
}

// New creates a Tailer over the files of w.
func New(w *watcher.Watcher, logger *log.Logger) *Tailer {
	return &Tailer{
		files:  make(map[string]*trackedFile),
		watch:  w,
		reopen: make(chan string, 16),
		logger: logger,
	}
}

func (t *Tailer) Interruptible() bool { return true }

// Lines starts the watcher and emits lines until ctx is cancelled.
func (t *Tailer) Lines(ctx context.Context, emit func(string) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer t.closeAll()

	go t.watch.Start(ctx)

	for _, p := range t.watch.Paths() {
		t.openFile(p)
		if err := t.readNewLines(p, emit); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-t.watch.Events:
			if !ok {
				return nil
			}
			if err := t.handleEvent(ctx, ev, emit); err != nil {
				return err
			}

		case path := <-t.reopen:
			t.openFile(path)
			if err := t.readNewLines(path, emit); err != nil {
				return err
			}
		}
	}
}

func (t *Tailer) handleEvent(ctx context.Context, ev watcher.Event, emit func(string) error) error {
	switch {
	case ev.Op&fsnotify.Write != 0:
		return t.readNewLines(ev.Path, emit)

	case ev.Op&fsnotify.Create != 0:
		t.openFile(ev.Path)
		return t.readNewLines(ev.Path, emit)

	case ev.Op&fsnotify.Remove != 0, ev.Op&fsnotify.Rename != 0:
		// Rotated or deleted: close and wait for the path to come back.
		t.closeFile(ev.Path)
		go t.reconnect(ctx, ev.Path)
	}
	return nil
}

// openFile starts tracking path from its beginning.
func (t *Tailer) openFile(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.files[path]; exists {
		return
	}

	f, err := os.Open(path)
	if err != nil {
		t.logger.Error("cannot open file", "path", path, "err", err)
		return
	}

	t.files[path] = &trackedFile{
		path:   path,
		file:   f,
		reader: bufio.NewReader(f),
	}
}

// readNewLines reads from the last offset to EOF and emits complete lines.
// A trailing fragment is kept until its newline arrives.
func (t *Tailer) readNewLines(path string, emit func(string) error) error {
	t.mu.Lock()
	tf, ok := t.files[path]
	t.mu.Unlock()
	if !ok {
		return nil
	}

	if fi, err := tf.file.Stat(); err == nil && fi.Size() < tf.offset {
		t.logger.Info("file truncated, reading from start", "path", path)
		if _, err := tf.file.Seek(0, io.SeekStart); err != nil {
			t.logger.Error("seek failed", "path", path, "err", err)
			return nil
		}
		tf.reader.Reset(tf.file)
		tf.offset = 0
		tf.buf = ""
	}

	for {
		chunk, err := tf.reader.ReadString('\n')
		tf.offset += int64(len(chunk))

		if err != nil {
			tf.buf += chunk
			if err != io.EOF {
				t.logger.Error("read error", "path", path, "err", err)
			}
			return nil
		}

		line := tf.buf + chunk
		tf.buf = ""
		if err := emitLine(line, t.logger, emit); err != nil {
			return err
		}
	}
}

// closeFile releases a tracked file.
func (t *Tailer) closeFile(path string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if tf, ok := t.files[path]; ok {
		tf.file.Close()
		delete(t.files, path)
	}
}

// reconnect polls for a file to reappear after rotation.
func (t *Tailer) reconnect(ctx context.Context, path string) {
	for i := 0; i < reconnectAttempts; i++ {
		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnectDelay):
		}
		if _, err := os.Stat(path); err == nil {
			t.logger.Info("reconnected to rotated file", "path", path)
			if err := t.watch.ReWatch(path); err != nil {
				t.logger.Warn("cannot re-watch file", "path", path, "err", err)
			}
			select {
			case t.reopen <- path:
			case <-ctx.Done():
			}
			return
		}
	}
	t.logger.Warn("gave up reconnecting", "path", path, "attempts", reconnectAttempts)
}

// closeAll closes all tracked file handles.
func (t *Tailer) closeAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for path, tf := range t.files {
		tf.file.Close()
		delete(t.files, path)
	}
}
