package release

import "strings"

// AssetMap maps asset file names to download URLs and remembers the order in
// which names were first inserted. The zero value is an empty map.
type AssetMap struct {
	names []string
	urls  map[string]string
}

// Set stores url under name. A name that is already present keeps its
// original position and takes the new URL.
func (m *AssetMap) Set(name, url string) {
	if m.urls == nil {
		m.urls = make(map[string]string)
	}
	if _, ok := m.urls[name]; !ok {
		m.names = append(m.names, name)
	}
	m.urls[name] = url
}

// URL returns the download URL stored under name.
func (m AssetMap) URL(name string) (string, bool) {
	u, ok := m.urls[name]
	return u, ok
}

// Names returns the file names in insertion order.
func (m AssetMap) Names() []string {
	names := make([]string, len(m.names))
	copy(names, m.names)
	return names
}

// Len returns the number of entries.
func (m AssetMap) Len() int {
	return len(m.names)
}

// SelectInstallable returns the first URL, in insertion order, that contains
// "ue4ss" and does not contain "zdev", compared case-insensitively.
// Later matches are never preferred over earlier ones.
func SelectInstallable(m AssetMap) (string, bool) {
	for _, name := range m.names {
		u := m.urls[name]
		lower := strings.ToLower(u)
		if strings.Contains(lower, "ue4ss") && !strings.Contains(lower, "zdev") {
			return u, true
		}
	}
	return "", false
}
