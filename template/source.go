// Package template provides sources of cataloging templates.
package template

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/acervolab/catalogagent/types"
)

// Source lists the templates available for selection.
type Source interface {
	GetTemplates(ctx context.Context) ([]types.Template, error)
}

// MemorySource serves a fixed template list, for tests and local usage.
type MemorySource struct {
	templates []types.Template
}

func NewMemorySource(templates ...types.Template) *MemorySource {
	return &MemorySource{templates: templates}
}

func (m *MemorySource) GetTemplates(ctx context.Context) ([]types.Template, error) {
	out := make([]types.Template, len(m.templates))
	copy(out, m.templates)
	return out, nil
}

type templateFile struct {
	Templates []types.Template `json:"templates"`
}

// FileSource reads templates from a JSON file of the shape
// {"templates": [...]}. The file is read on every call; wrap with
// CachedSource to avoid repeated disk access.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (f *FileSource) GetTemplates(ctx context.Context) ([]types.Template, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read templates file: %w", err)
	}
	var file templateFile
	if err := sonic.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse templates file %s: %w", f.path, err)
	}
	return file.Templates, nil
}

// CachedSource caches the inner source's result for a TTL. A TTL of zero
// or less caches forever until Invalidate is called.
type CachedSource struct {
	inner Source
	ttl   time.Duration

	mu        sync.Mutex
	cached    []types.Template
	fetchedAt time.Time
}

func NewCachedSource(inner Source, ttl time.Duration) *CachedSource {
	return &CachedSource{inner: inner, ttl: ttl}
}

func (c *CachedSource) GetTemplates(ctx context.Context) ([]types.Template, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && (c.ttl <= 0 || time.Since(c.fetchedAt) < c.ttl) {
		return c.cached, nil
	}

	templates, err := c.inner.GetTemplates(ctx)
	if err != nil {
		// Serve stale templates rather than failing the turn.
		if c.cached != nil {
			return c.cached, nil
		}
		return nil, err
	}
	c.cached = templates
	c.fetchedAt = time.Now()
	return c.cached, nil
}

// Invalidate drops the cached result.
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}
