package release

// TagsWithAssets returns every tag that has assets, newest first.
func (c *Cache) TagsWithAssets() ([]string, error) {
	return c.filterTags(func(t Tag) bool { return true })
}

// PrereleaseTagsWithAssets returns the prerelease tags that have assets.
func (c *Cache) PrereleaseTagsWithAssets() ([]string, error) {
	return c.filterTags(func(t Tag) bool { return t.IsPrerelease })
}

// NormalTagsWithAssets returns the non-prerelease tags that have assets.
func (c *Cache) NormalTagsWithAssets() ([]string, error) {
	return c.filterTags(func(t Tag) bool { return !t.IsPrerelease })
}

// DefaultTag returns the newest normal release with assets.
func (c *Cache) DefaultTag() (string, error) {
	tags, err := c.NormalTagsWithAssets()
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		return "", ErrNoDefaultTag
	}
	return tags[0], nil
}

// AssetMapForTag maps file names to download URLs for tag. An unknown tag
// yields an empty map, not an error.
func (c *Cache) AssetMapForTag(tag string) (AssetMap, error) {
	catalog, err := c.Catalog()
	if err != nil {
		return AssetMap{}, err
	}

	var m AssetMap
	t, ok := catalog.Tag(tag)
	if !ok {
		return m, nil
	}
	for _, a := range t.Assets {
		m.Set(a.FileName, a.DownloadURL)
	}
	return m, nil
}

// SelectInstallableAsset returns the download URL of the installable asset
// of tag.
func (c *Cache) SelectInstallableAsset(tag string) (string, error) {
	m, err := c.AssetMapForTag(tag)
	if err != nil {
		return "", err
	}

	u, ok := SelectInstallable(m)
	if !ok {
		return "", &NoCompatibleAssetError{Tag: tag}
	}
	return u, nil
}

func (c *Cache) filterTags(keep func(Tag) bool) ([]string, error) {
	catalog, err := c.Catalog()
	if err != nil {
		return nil, err
	}

	tags := []string{}
	for _, t := range catalog.Tags {
		if t.HasAssets() && keep(t) {
			tags = append(tags, t.Name)
		}
	}
	return tags, nil
}
