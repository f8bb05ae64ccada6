// Package release models the UE4SS release catalog published on a GitHub-style
// release hosting API and answers the questions the installer needs to ask it.
//
// # Catalog
//
// A Client fetches every release of an owner/repo (paginated, 100 per page,
// until the first empty page) and normalizes the result into a Catalog:
// tags sorted newest first by creation timestamp, with exactly zero or one tag
// flagged as latest (the newest tag that is not a prerelease).
//
// # Cache
//
// A Cache holds at most one Catalog for the lifetime of its owner. The first
// successful CacheCatalog call populates it; later calls are no-ops, even for a
// different owner/repo. A failed fetch leaves the Cache empty so the caller may
// retry. Every query on an empty Cache returns ErrCatalogNotCached.
//
// # Selection
//
// A release may ship a developer build next to the redistributable. The
// installable asset of a tag is the first asset, in API order, whose download
// URL contains "ue4ss" and does not contain "zdev" (both case-insensitive).
//
// # Usage
//
//	cache := release.NewCache(release.NewClient(release.ClientConfig{}))
//	if err := cache.CacheCatalog(ctx, release.DefaultOwner, release.DefaultRepo); err != nil {
//	    return err
//	}
//	tag, err := cache.DefaultTag()
//	if err != nil {
//	    return err
//	}
//	url, err := cache.SelectInstallableAsset(tag)
package release
