// Package tailer produces input lines for the pipeline: from a stream,
// from a list of files read to the end, or from files followed as they grow.
package tailer

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// ErrInvalidUTF8 is logged for lines that are skipped because of their encoding.
var ErrInvalidUTF8 = errors.New("line is not valid UTF-8")

// Source produces input lines in order. Lines returns when input is
// exhausted, when emit fails, or (for interruptible sources) when ctx is done.
type Source interface {
	Lines(ctx context.Context, emit func(string) error) error
	// Interruptible reports whether Lines returns promptly after ctx is
	// cancelled. A stream blocked in a read is not.
	Interruptible() bool
}

// ReaderSource reads newline-delimited lines from a stream such as stdin.
type ReaderSource struct {
	r      io.Reader
	logger *log.Logger
}

// NewReaderSource returns a Source over r.
func NewReaderSource(r io.Reader, logger *log.Logger) *ReaderSource {
	return &ReaderSource{r: r, logger: logger}
}

func (s *ReaderSource) Lines(ctx context.Context, emit func(string) error) error {
	return scanLines(ctx, bufio.NewReader(s.r), s.logger, emit)
}

func (s *ReaderSource) Interruptible() bool { return false }

// FileSource reads each file to its end, one after another.
type FileSource struct {
	paths  []string
	logger *log.Logger
}

// NewFileSource returns a Source reading paths in order.
func NewFileSource(paths []string, logger *log.Logger) *FileSource {
	return &FileSource{paths: paths, logger: logger}
}

func (s *FileSource) Lines(ctx context.Context, emit func(string) error) error {
	for _, p := range s.paths {
		if err := s.readFile(ctx, p, emit); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
	}
	return nil
}

func (s *FileSource) readFile(ctx context.Context, path string, emit func(string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s.logger.Debug("reading file", "path", path)
	return scanLines(ctx, bufio.NewReader(f), s.logger, emit)
}

func (s *FileSource) Interruptible() bool { return true }

// scanLines emits every line of br, including a final line without a
// newline. Lines that are not valid UTF-8 are logged and skipped.
func scanLines(ctx context.Context, br *bufio.Reader, logger *log.Logger, emit func(string) error) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := br.ReadString('\n')
		if len(line) > 0 && (err == nil || err == io.EOF) {
			if emitErr := emitLine(line, logger, emit); emitErr != nil {
				return emitErr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	}
}

func emitLine(line string, logger *log.Logger, emit func(string) error) error {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	if !utf8.ValidString(line) {
		logger.Error("read error, line skipped", "err", ErrInvalidUTF8)
		return nil
	}
	return emit(line)
}
