package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	DefaultMaxSize    = 10 * 1024 * 1024 // 10MB
	DefaultMaxBackups = 3                // Keep 3 backup files
)

// RotatingFile is an io.Writer that appends to a log file and rotates it
// once it grows past MaxSize. Backups are named file.1 (newest) .. file.N (oldest).
type RotatingFile struct {
	path       string
	maxSize    int64
	maxBackups int

	mu   sync.Mutex
	file *os.File
	size int64
}

// OpenRotatingFile opens (or creates) the log file at path.
// If the existing file is already over the size limit it is rotated before use.
//
// Parameters:
//   - path: Full path of the active log file
//   - maxSize: Size in bytes that triggers rotation (<= 0 uses DefaultMaxSize)
//   - maxBackups: Number of rotated files to keep (<= 0 uses DefaultMaxBackups)
func OpenRotatingFile(path string, maxSize int64, maxBackups int) (*RotatingFile, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if maxBackups <= 0 {
		maxBackups = DefaultMaxBackups
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	rf := &RotatingFile{path: path, maxSize: maxSize, maxBackups: maxBackups}

	// Check if we need to rotate before opening
	if info, err := os.Stat(path); err == nil {
		rf.size = info.Size()
		if rf.size >= maxSize {
			if err := rf.rotate(); err != nil {
				return nil, fmt.Errorf("failed to rotate logs: %w", err)
			}
		}
	}

	if err := rf.open(); err != nil {
		return nil, err
	}
	return rf, nil
}

// Path returns the location of the active log file.
func (rf *RotatingFile) Path() string {
	return rf.path
}

// Write implements io.Writer.
func (rf *RotatingFile) Write(p []byte) (int, error) {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.file == nil {
		return 0, os.ErrClosed
	}

	if rf.size > 0 && rf.size+int64(len(p)) > rf.maxSize {
		if err := rf.rotate(); err != nil {
			return 0, fmt.Errorf("failed to rotate logs: %w", err)
		}
		if err := rf.open(); err != nil {
			return 0, err
		}
	}

	n, err := rf.file.Write(p)
	rf.size += int64(n)
	return n, err
}

// Close closes the underlying file handle.
func (rf *RotatingFile) Close() error {
	rf.mu.Lock()
	defer rf.mu.Unlock()

	if rf.file == nil {
		return nil
	}
	err := rf.file.Close()
	rf.file = nil
	return err
}

func (rf *RotatingFile) open() error {
	file, err := os.OpenFile(rf.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to stat log file: %w", err)
	}

	rf.file = file
	rf.size = info.Size()
	return nil
}

// rotate shifts backups up by one and moves the active file to .1.
// Caller must hold rf.mu (or be the constructor).
func (rf *RotatingFile) rotate() error {
	if rf.file != nil {
		rf.file.Close()
		rf.file = nil
	}

	// Remove oldest backup
	os.Remove(fmt.Sprintf("%s.%d", rf.path, rf.maxBackups)) // Ignore error if file doesn't exist

	for i := rf.maxBackups - 1; i >= 1; i-- {
		os.Rename(fmt.Sprintf("%s.%d", rf.path, i), fmt.Sprintf("%s.%d", rf.path, i+1))
	}

	if err := os.Rename(rf.path, rf.path+".1"); err != nil && !os.IsNotExist(err) {
		return err
	}

	rf.size = 0
	return nil
}
