package application_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/wtthornton/tappscheck/internal/domain"
)

// memSource serves files from memory.
type memSource struct {
	files   map[string][]byte
	readErr map[string]error
	delay   map[string]time.Duration
}

func newMemSource(files map[string]string) *memSource {
	m := &memSource{
		files:   make(map[string][]byte, len(files)),
		readErr: map[string]error{},
		delay:   map[string]time.Duration{},
	}
	for k, v := range files {
		m.files[k] = []byte(v)
	}
	return m
}

func (m *memSource) List(context.Context) ([]string, error) {
	paths := make([]string, 0, len(m.files)+len(m.readErr))
	for p := range m.files {
		paths = append(paths, p)
	}
	for p := range m.readErr {
		if _, ok := m.files[p]; !ok {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func (m *memSource) Read(ctx context.Context, path string) ([]byte, error) {
	if d := m.delay[path]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := m.readErr[path]; err != nil {
		return nil, err
	}
	b, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("%s: not found", path)
	}
	return b, nil
}

type memSourceFactory struct{ src *memSource }

func (f memSourceFactory) Open(string, domain.ProjectConfig) (domain.FileSource, error) {
	return f.src, nil
}

type fakeConfig struct {
	cfg domain.ProjectConfig
	err error
}

func (f fakeConfig) Load(string) (domain.ProjectConfig, error) { return f.cfg, f.err }

type fakeStandards struct {
	std map[string]string
	err error
}

func (f fakeStandards) Load(string, domain.ProjectConfig) (map[string]string, error) {
	return f.std, f.err
}

// memHistory validates like the file store but keeps entries in memory.
type memHistory struct {
	mu        sync.Mutex
	entries   []domain.HistoryEntry
	appendErr error
	loadErr   error
	discarded int
}

func (h *memHistory) Append(e domain.HistoryEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.appendErr != nil {
		return h.appendErr
	}
	if err := e.Validate(); err != nil {
		return err
	}
	h.entries = append(h.entries, e)
	return nil
}

func (h *memHistory) Load() ([]domain.HistoryEntry, domain.LoadStats, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.loadErr != nil {
		return nil, domain.LoadStats{}, h.loadErr
	}
	out := append([]domain.HistoryEntry(nil), h.entries...)
	return out, domain.LoadStats{Total: len(out) + h.discarded, Valid: len(out), Discarded: h.discarded}, nil
}

type memHistoryFactory struct{ h *memHistory }

func (f memHistoryFactory) Open(string, domain.ProjectConfig) domain.HistoryStore { return f.h }

type memBaselines struct {
	b       *domain.PerformanceBaselines
	loadErr error
	saved   int
}

func (m *memBaselines) Load(string) (*domain.PerformanceBaselines, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.b == nil {
		return domain.DefaultBaselines(), nil
	}
	return m.b, nil
}

func (m *memBaselines) Save(_ string, b *domain.PerformanceBaselines) error {
	m.b = b
	m.saved++
	return nil
}

func (m *memBaselines) Reset(string) error {
	m.b = nil
	return nil
}

type fakeGit struct{ hash string }

func (g fakeGit) CommitHash(string) (string, error) {
	if g.hash == "" {
		return "", errors.New("not a repository")
	}
	return g.hash, nil
}

func longDoc(title string, words int) string {
	return "# " + title + "\n\n" + strings.Repeat("word ", words) + "\n"
}
