package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Open opens the journal in the workspace, creating it when missing.
// A corrupted journal is set aside and a fresh one is started.
func Open(config ...Config) (*Journal, error) {
	// Set default config
	cfg := configDefault(config...)

	return (&journalLoader{cfg: cfg}).load()
}

type journalLoader struct {
	cfg Config
}

func (l *journalLoader) load() (*Journal, error) {
	err := os.MkdirAll(l.cfg.Workspace, 0755)
	if err != nil {
		return nil, err
	}

	fPath := l.path("journal", 0)
	file, err := os.OpenFile(fPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}

	journal, err := NewJournal(file)
	if err == nil {
		return journal, nil
	}

	if !errors.Is(err, ErrInvalidFile) {
		_ = file.Close()
		return nil, err
	}

	err = l.markCorrupted(file)
	if err != nil {
		return nil, err
	}

	file, err = os.OpenFile(fPath, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}

	journal, err = NewJournal(file)
	if err != nil {
		_ = file.Close()
		return nil, err
	}

	return journal, nil
}

func (l *journalLoader) path(t string, n int) string {
	return filepath.Join(l.cfg.Workspace, fmt.Sprintf("%s_%d.%s", l.cfg.Name, n, t))
}

func (l *journalLoader) markCorrupted(file *os.File) error {
	err := file.Close()
	if err != nil {
		return err
	}

	if l.cfg.MaxHistory < 1 {
		return os.Remove(file.Name())
	}

	err = l.rotate(0)
	if err != nil {
		return err
	}

	return os.Rename(file.Name(), l.path("corrupted", 0))
}

// rotate shifts name_n.corrupted up by one, dropping the oldest past MaxHistory.
func (l *journalLoader) rotate(n int) error {
	prev := l.path("corrupted", n)
	if !exists(prev) {
		return nil
	}

	if n+1 >= l.cfg.MaxHistory {
		return os.Remove(prev)
	}

	err := l.rotate(n + 1)
	if err != nil {
		return err
	}

	return os.Rename(prev, l.path("corrupted", n+1))
}
