package testutil

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// Release is a release served by ReleaseServer. Asset URLs are generated
// below the server's /download/ path.
type Release struct {
	Tag        string
	Prerelease bool
	CreatedAt  string
	Assets     map[string][]byte // file name -> content
}

// ReleaseServer fakes the release listing and asset downloads of a
// GitHub-compatible API for one owner/repo.
type ReleaseServer struct {
	*httptest.Server

	mu        sync.Mutex
	pageHits  int
	downloads []string
}

// NewReleaseServer starts a server listing releases, in the given order, for
// owner/repo. Pages hold at most two releases so pagination is exercised.
func NewReleaseServer(t *testing.T, owner, repo string, releases ...Release) *ReleaseServer {
	t.Helper()

	s := &ReleaseServer{}
	mux := http.NewServeMux()

	mux.HandleFunc("/repos/"+owner+"/"+repo+"/releases", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.pageHits++
		s.mu.Unlock()

		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		if page < 1 {
			page = 1
		}
		const perPage = 2
		start := (page - 1) * perPage
		end := min(start+perPage, len(releases))

		body := []map[string]any{}
		for i := start; i < end; i++ {
			body = append(body, s.releaseJSON(releases[i]))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	})

	mux.HandleFunc("/download/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/download/"), "/", 2)
		if len(parts) != 2 {
			http.NotFound(w, r)
			return
		}
		for _, rel := range releases {
			if rel.Tag != parts[0] {
				continue
			}
			if content, ok := rel.Assets[parts[1]]; ok {
				s.mu.Lock()
				s.downloads = append(s.downloads, r.URL.Path)
				s.mu.Unlock()
				_, _ = w.Write(content)
				return
			}
		}
		http.NotFound(w, r)
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func (s *ReleaseServer) releaseJSON(rel Release) map[string]any {
	names := make([]string, 0, len(rel.Assets))
	for name := range rel.Assets {
		names = append(names, name)
	}
	sort.Strings(names)

	assets := []map[string]any{}
	for _, name := range names {
		assets = append(assets, map[string]any{
			"name":                 name,
			"browser_download_url": s.URL + "/download/" + rel.Tag + "/" + name,
			"created_at":           rel.CreatedAt,
		})
	}
	return map[string]any{
		"tag_name":   rel.Tag,
		"prerelease": rel.Prerelease,
		"created_at": rel.CreatedAt,
		"assets":     assets,
	}
}

// PageHits returns how many release pages were requested.
func (s *ReleaseServer) PageHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pageHits
}

// Downloads returns the asset paths downloaded so far.
func (s *ReleaseServer) Downloads() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.downloads...)
}

// ZipArchive builds an in-memory zip archive from name -> content pairs.
func ZipArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range names {
		f, err := w.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry %s: %v", name, err)
		}
		if _, err := f.Write([]byte(files[name])); err != nil {
			t.Fatalf("failed to write zip entry %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}
