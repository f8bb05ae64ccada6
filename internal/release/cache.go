package release

import (
	"context"
	"fmt"
)

// Fetcher fetches a complete release catalog.
type Fetcher interface {
	FetchCatalog(ctx context.Context, owner, repo string) (*Catalog, error)
}

// Cache holds at most one release catalog for the lifetime of its owner.
// It is written once, by the first successful CacheCatalog call, and is not
// safe for concurrent use.
type Cache struct {
	fetcher Fetcher
	catalog *Catalog
}

// NewCache creates an empty cache backed by fetcher.
func NewCache(fetcher Fetcher) *Cache {
	return &Cache{fetcher: fetcher}
}

// CacheCatalog fetches and stores the catalog for owner/repo. It is a no-op
// when a catalog is already held, whatever owner/repo it was fetched for.
// On failure nothing is stored, so a later call retries the fetch.
func (c *Cache) CacheCatalog(ctx context.Context, owner, repo string) error {
	if c.catalog != nil {
		return nil
	}
	if c.fetcher == nil {
		return fmt.Errorf("cache catalog: no fetcher configured")
	}

	catalog, err := c.fetcher.FetchCatalog(ctx, owner, repo)
	if err != nil {
		return fmt.Errorf("cache catalog %s/%s: %w", owner, repo, err)
	}

	c.catalog = catalog
	return nil
}

// IsCached reports whether a catalog is held.
func (c *Cache) IsCached() bool {
	return c.catalog != nil
}

// Catalog returns the held catalog.
func (c *Cache) Catalog() (*Catalog, error) {
	if c.catalog == nil {
		return nil, ErrCatalogNotCached
	}
	return c.catalog, nil
}
