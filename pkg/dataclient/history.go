package dataclient

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dikaipan/rocdashboard-sub001/internal/models"
)

const (
	// DefaultHistoryKey is the storage key the dashboard has always used
	// for the stock edit trail.
	DefaultHistoryKey = "stock_edit_history"
	// DefaultHistoryCap bounds the log; the oldest entries are evicted
	// past this many.
	DefaultHistoryCap = 1000
)

// Storage persists one value per key. Get returns (nil, nil) for a key
// that was never written.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// MemoryStorage keeps values in a map. Used in tests and in tools that do
// not need the trail to survive the process.
type MemoryStorage struct {
	mu sync.Mutex
	m  map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{m: make(map[string][]byte)}
}

func (s *MemoryStorage) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *MemoryStorage) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]byte, len(value))
	copy(out, value)
	s.m[key] = out
	return nil
}

// FileStorage writes each key as a JSON file under dir.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

func (s *FileStorage) path(key string) string {
	// keys are fixed identifiers, but never trust them as paths
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, key)
	return filepath.Join(s.dir, safe+".json")
}

func (s *FileStorage) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	return data, err
}

func (s *FileStorage) Set(key string, value []byte) error {
	return os.WriteFile(s.path(key), value, 0o644)
}

// HistoryLog is the capped stock edit trail, most recent first. The
// injected Storage carries the serialized log so the policy stays
// testable without a browser or a disk.
type HistoryLog struct {
	mu      sync.Mutex
	storage Storage
	key     string
	cap     int
	entries []models.StockHistoryEntry
}

// NewHistoryLog loads the existing trail from storage. Zero values for key
// and cap select the defaults.
func NewHistoryLog(storage Storage, key string, capacity int) (*HistoryLog, error) {
	if key == "" {
		key = DefaultHistoryKey
	}
	if capacity <= 0 {
		capacity = DefaultHistoryCap
	}
	l := &HistoryLog{storage: storage, key: key, cap: capacity}

	raw, err := storage.Get(key)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &l.entries); err != nil {
			return nil, fmt.Errorf("decode history: %w", err)
		}
		if len(l.entries) > l.cap {
			l.entries = l.entries[:l.cap]
		}
	}
	return l, nil
}

// Append puts the entry at the front of the trail, evicting past the cap,
// and persists the whole log.
func (l *HistoryLog) Append(entry models.StockHistoryEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := make([]models.StockHistoryEntry, 0, len(l.entries)+1)
	next = append(next, entry)
	next = append(next, l.entries...)
	if len(next) > l.cap {
		next = next[:l.cap]
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := l.storage.Set(l.key, raw); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	l.entries = next
	return nil
}

// Entries returns the trail, most recent first.
func (l *HistoryLog) Entries() []models.StockHistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.StockHistoryEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *HistoryLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Clear empties the trail and persists the empty state.
func (l *HistoryLog) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	raw, err := json.Marshal([]models.StockHistoryEntry{})
	if err != nil {
		return err
	}
	if err := l.storage.Set(l.key, raw); err != nil {
		return fmt.Errorf("persist history: %w", err)
	}
	l.entries = nil
	return nil
}
