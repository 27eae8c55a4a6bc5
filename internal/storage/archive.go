package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Archiver keeps raw model outputs for later inspection.
type Archiver interface {
	Archive(ctx context.Context, agent, raw string) (key string, err error)
	Fetch(ctx context.Context, key string) (string, error)
}

// ObjectKey builds llm/<agent>/<yyyy/mm/dd>/<uuid>.txt.
func ObjectKey(agent string, at time.Time) string {
	return fmt.Sprintf("llm/%s/%s/%s.txt", agent, at.UTC().Format("2006/01/02"), uuid.NewString())
}

// NopArchiver discards everything; used when no object store is configured.
type NopArchiver struct{}

func (NopArchiver) Archive(context.Context, string, string) (string, error) { return "", nil }

func (NopArchiver) Fetch(_ context.Context, key string) (string, error) {
	return "", fmt.Errorf("archive disabled: cannot fetch %s", key)
}

// MemoryArchiver stores objects in a map.
type MemoryArchiver struct {
	mu      sync.RWMutex
	objects map[string]string
}

func NewMemoryArchiver() *MemoryArchiver {
	return &MemoryArchiver{objects: make(map[string]string)}
}

func (m *MemoryArchiver) Archive(_ context.Context, agent, raw string) (string, error) {
	key := ObjectKey(agent, time.Now())
	m.mu.Lock()
	m.objects[key] = raw
	m.mu.Unlock()
	return key, nil
}

func (m *MemoryArchiver) Fetch(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.objects[key]
	if !ok {
		return "", fmt.Errorf("object %s not found", key)
	}
	return raw, nil
}

// Keys lists stored object keys with the given prefix.
func (m *MemoryArchiver) Keys(prefix string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []string
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}

// MinIOArchiver writes transcripts to the configured bucket.
type MinIOArchiver struct {
	store *MinIOStorage
}

func NewMinIOArchiver(s *MinIOStorage) *MinIOArchiver {
	return &MinIOArchiver{store: s}
}

func (a *MinIOArchiver) Archive(ctx context.Context, agent, raw string) (string, error) {
	key := ObjectKey(agent, time.Now())
	if err := a.store.UploadFile(ctx, key, strings.NewReader(raw), int64(len(raw)), "text/plain; charset=utf-8"); err != nil {
		return "", fmt.Errorf("archive %s: %w", key, err)
	}
	return key, nil
}

func (a *MinIOArchiver) Fetch(ctx context.Context, key string) (string, error) {
	rc, err := a.store.DownloadFile(ctx, key)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", key, err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", key, err)
	}
	return string(b), nil
}
