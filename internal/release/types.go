package release

const (
	// DefaultOwner is the owner of the canonical UE4SS repository.
	DefaultOwner = "UE4SS-RE"
	// DefaultRepo is the canonical UE4SS repository name.
	DefaultRepo = "RE-UE4SS"
)

// Asset is a single downloadable file attached to a release tag.
// Values are treated as read-only once built by the Client.
type Asset struct {
	FileName    string
	DownloadURL string
	CreatedAt   string
}

// Tag is a named release point in the catalog.
type Tag struct {
	Name         string
	IsPrerelease bool
	IsLatest     bool
	CreatedAt    string
	Assets       []Asset
}

// HasAssets reports whether the tag has at least one downloadable asset.
func (t Tag) HasAssets() bool {
	return len(t.Assets) > 0
}

// Catalog is the in-memory model of all fetched tags for one owner/repo.
// Tags are ordered by CreatedAt, newest first.
type Catalog struct {
	Owner string
	Repo  string
	Tags  []Tag
}

// Tag returns the first tag with the given name.
func (c *Catalog) Tag(name string) (Tag, bool) {
	for _, t := range c.Tags {
		if t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}

// Latest returns the tag flagged as latest, if any.
func (c *Catalog) Latest() (Tag, bool) {
	for _, t := range c.Tags {
		if t.IsLatest {
			return t, true
		}
	}
	return Tag{}, false
}

// apiRelease models the fields of a GET /repos/{owner}/{repo}/releases
// entry that the catalog needs.
type apiRelease struct {
	TagName    string     `json:"tag_name"`
	Prerelease bool       `json:"prerelease"`
	CreatedAt  string     `json:"created_at"`
	Assets     []apiAsset `json:"assets"`
}

// apiAsset models a release asset entry.
type apiAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	CreatedAt          string `json:"created_at"`
}
