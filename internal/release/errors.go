package release

import (
	"errors"
	"fmt"
)

var (
	// ErrCatalogNotCached is returned by every query made before a catalog
	// has been cached successfully.
	ErrCatalogNotCached = errors.New("release catalog is not cached: call CacheCatalog first")

	// ErrNoDefaultTag is returned when the catalog has no normal release
	// with assets to fall back on.
	ErrNoDefaultTag = errors.New("no normal release with assets is available as a default tag")
)

// RemoteAPIError is returned when the release API answers with a non-success
// status. It is never retried.
type RemoteAPIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("release API error: status=%s body=%s", e.Status, e.Body)
}

// NoCompatibleAssetError is returned when no asset of a tag passes the
// installable asset rule.
type NoCompatibleAssetError struct {
	Tag string
}

func (e *NoCompatibleAssetError) Error() string {
	return fmt.Sprintf("unable to find a compatible UE4SS release for tag %q", e.Tag)
}
