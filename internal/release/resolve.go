package release

import (
	"strings"

	semver "github.com/Masterminds/semver/v3"
)

// ResolveTag turns a user request into a concrete tag name.
//
//   - "" resolves to DefaultTag.
//   - A name present in the catalog resolves to itself.
//   - A semver constraint such as "~3.0" or ">=3.0.0 <4" resolves to the
//     newest tag with assets whose version satisfies it, preferring normal
//     releases over prereleases.
//
// Anything else is returned unchanged; selecting an asset for it then fails
// with NoCompatibleAssetError.
func (c *Cache) ResolveTag(requested string) (string, error) {
	catalog, err := c.Catalog()
	if err != nil {
		return "", err
	}

	requested = strings.TrimSpace(requested)
	if requested == "" {
		return c.DefaultTag()
	}

	if _, ok := catalog.Tag(requested); ok {
		return requested, nil
	}

	constraint, err := semver.NewConstraint(requested)
	if err != nil {
		return requested, nil
	}

	if name, ok := matchConstraint(catalog.Tags, constraint, false); ok {
		return name, nil
	}
	if name, ok := matchConstraint(catalog.Tags, constraint, true); ok {
		return name, nil
	}
	return requested, nil
}

func matchConstraint(tags []Tag, constraint *semver.Constraints, prerelease bool) (string, bool) {
	for _, t := range tags {
		if !t.HasAssets() || t.IsPrerelease != prerelease {
			continue
		}
		v, err := semver.NewVersion(t.Name)
		if err != nil {
			continue
		}
		if constraint.Check(v) {
			return t.Name, true
		}
	}
	return "", false
}
