package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// Page is a batch of lines plus the offset just past them.
type Page struct {
	Lines  []string
	Offset int64
}

// Last returns at most n trailing lines. A non-positive n returns no lines
// but still reports the end offset.
func Last(path string, n int) (Page, error) {
	file, err := open(path)
	if err != nil || file == nil {
		return Page{}, err
	}
	defer file.Close()

	scanner := newScanner(file)
	var ring []string
	if n > 0 {
		ring = make([]string, 0, n)
	}
	for scanner.Scan() {
		if n <= 0 {
			continue
		}
		if len(ring) == n {
			ring = append(ring[:0], ring[1:]...)
		}
		ring = append(ring, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return Page{}, fmt.Errorf("read log file: %w", err)
	}

	offset, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return Page{}, fmt.Errorf("seek log file: %w", err)
	}
	return Page{Lines: ring, Offset: offset}, nil
}

// Since returns every complete line written after offset. When the file has
// shrunk below offset (rotation or truncation) reading restarts at zero.
func Since(path string, offset int64) (Page, error) {
	file, err := open(path)
	if err != nil || file == nil {
		return Page{}, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return Page{}, fmt.Errorf("stat log file: %w", err)
	}
	if offset < 0 || offset > info.Size() {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return Page{}, fmt.Errorf("seek log file: %w", err)
	}

	reader := bufio.NewReader(file)
	page := Page{Offset: offset}
	for {
		line, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			// A partial trailing line is picked up on the next call.
			return page, nil
		}
		if err != nil {
			return page, fmt.Errorf("read log file: %w", err)
		}
		page.Offset += int64(len(line))
		page.Lines = append(page.Lines, trimNewline(line))
	}
}

// Follow polls path every interval and passes new lines to emit until ctx is
// done. It returns nil when the context ends.
func Follow(ctx context.Context, path string, offset int64, interval time.Duration, emit func(string)) error {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		page, err := Since(path, offset)
		if err != nil {
			return err
		}
		for _, line := range page.Lines {
			emit(line)
		}
		offset = page.Offset

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func open(path string) (*os.File, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("log path %q is a directory", path)
	}
	return file, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return scanner
}

func trimNewline(line string) string {
	line = line[:len(line)-1]
	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}
	return line
}
