package classifier

import (
	"context"
	"log/slog"
	"sync"
)

// Cache loads the classifier at most once per process and shares it.
//
// The loaded classifier is read-only, so after the first successful load
// callers get it without any further coordination. Concurrent first calls
// wait on the mutex and only one of them runs the underlying loader.
// A failed load is NOT remembered: the next request tries again, which lets
// an operator fix a missing artifact without restarting the process.
type Cache struct {
	loader Loader

	mu     sync.Mutex
	loaded Classifier
}

// NewCache wraps loader so it runs at most once successfully.
func NewCache(loader Loader) *Cache {
	return &Cache{loader: loader}
}

// Load returns the cached classifier, loading it on first use.
func (c *Cache) Load(ctx context.Context) (Classifier, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded != nil {
		return c.loaded, nil
	}

	clf, err := c.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("classifier loaded")
	c.loaded = clf
	return clf, nil
}

// Loaded reports whether a classifier has been loaded successfully.
func (c *Cache) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded != nil
}
