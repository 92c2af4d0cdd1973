package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// maxLogSize is the size at which a log file is rotated away.
const maxLogSize = 5 * 1024 * 1024

// rotatingFile is an append-only log file that renames itself with a
// timestamp suffix once it reaches maxLogSize, then starts fresh.
type rotatingFile struct {
	mu   sync.Mutex
	path string
	file *os.File
	size int64
}

func newRotatingFile(path string) (*rotatingFile, error) {
	rf := &rotatingFile{path: path}
	if err := rf.open(); err != nil {
		return nil, err
	}
	return rf, nil
}

func (rf *rotatingFile) open() error {
	f, err := os.OpenFile(rf.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return err
	}
	rf.file = f
	rf.size = info.Size()
	return nil
}

func (rf *rotatingFile) Write(p []byte) (int, error) {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.size+int64(len(p)) > maxLogSize {
		if err := rf.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := rf.file.Write(p)
	rf.size += int64(n)
	return n, err
}

func (rf *rotatingFile) rotate() error {
	if err := rf.file.Close(); err != nil {
		return err
	}

	ext := filepath.Ext(rf.path)
	base := strings.TrimSuffix(rf.path, ext)
	stamp := time.Now().UTC().Format("2006-01-02T15-04-05")
	if err := os.Rename(rf.path, base+"-"+stamp+ext); err != nil {
		return err
	}

	return rf.open()
}

func (rf *rotatingFile) Close() error {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	return rf.file.Close()
}
