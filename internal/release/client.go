package release

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the GitHub REST API root.
	DefaultBaseURL = "https://api.github.com"
	// DefaultTimeout bounds a single page request.
	DefaultTimeout = 60 * time.Second
	// DefaultUserAgent is the User-Agent header sent with requests
	DefaultUserAgent = "ue4ss-installer/1.0"
	// PageSize is the number of releases requested per page.
	PageSize = 100
	// MaxPages stops runaway pagination against a misbehaving server.
	MaxPages = 1000

	acceptHeader = "application/vnd.github.v3+json"
	maxErrorBody = 64 << 10
)

// ClientConfig holds configuration for the release API client.
// Zero values fall back to the package defaults.
type ClientConfig struct {
	// BaseURL is the API root (default: https://api.github.com)
	BaseURL string
	// Token is an optional bearer token for rate-limit relief
	Token string
	// UserAgent overrides DefaultUserAgent
	UserAgent string
	// HTTPClient overrides the default client (used by tests)
	HTTPClient *http.Client
	// Logger receives debug output; nil discards it
	Logger *slog.Logger
}

// Client fetches release catalogs from the release hosting API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	userAgent  string
	logger     *slog.Logger
}

// NewClient creates a new release API client.
func NewClient(cfg ClientConfig) *Client {
	c := &Client{
		httpClient: cfg.HTTPClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      strings.TrimSpace(cfg.Token),
		userAgent:  cfg.UserAgent,
		logger:     cfg.Logger,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.userAgent == "" {
		c.userAgent = DefaultUserAgent
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// FetchCatalog fetches every release of owner/repo and builds a catalog
// sorted newest first. Pagination ends at the first empty page.
func (c *Client) FetchCatalog(ctx context.Context, owner, repo string) (*Catalog, error) {
	var all []apiRelease

	for page := 1; ; page++ {
		if page > MaxPages {
			return nil, fmt.Errorf("fetch releases: more than %d pages", MaxPages)
		}

		releases, err := c.fetchPage(ctx, owner, repo, page)
		if err != nil {
			return nil, err
		}
		c.logger.Debug("fetched releases page", "owner", owner, "repo", repo, "page", page, "count", len(releases))

		if len(releases) == 0 {
			break
		}
		all = append(all, releases...)
	}

	return buildCatalog(owner, repo, all), nil
}

// fetchPage performs a single page request
func (c *Client) fetchPage(ctx context.Context, owner, repo string, page int) ([]apiRelease, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(PageSize))

	apiURL := fmt.Sprintf("%s/repos/%s/%s/releases?%s",
		c.baseURL, url.PathEscape(owner), url.PathEscape(repo), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch releases page %d: %w", page, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &RemoteAPIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(body),
		}
	}

	var releases []apiRelease
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, fmt.Errorf("decode releases page %d: %w", page, err)
	}
	return releases, nil
}

// buildCatalog sorts releases by created_at descending (stable with respect
// to API order) and flags the newest non-prerelease as latest.
func buildCatalog(owner, repo string, releases []apiRelease) *Catalog {
	sorted := make([]apiRelease, len(releases))
	copy(sorted, releases)
	// created_at is ISO 8601 UTC, so lexical order is chronological order
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt > sorted[j].CreatedAt
	})

	latest := -1
	for i, r := range sorted {
		if !r.Prerelease {
			latest = i
			break
		}
	}

	tags := make([]Tag, 0, len(sorted))
	for i, r := range sorted {
		assets := make([]Asset, 0, len(r.Assets))
		for _, a := range r.Assets {
			assets = append(assets, Asset{
				FileName:    a.Name,
				DownloadURL: a.BrowserDownloadURL,
				CreatedAt:   a.CreatedAt,
			})
		}
		tags = append(tags, Tag{
			Name:         r.TagName,
			IsPrerelease: r.Prerelease,
			IsLatest:     i == latest,
			CreatedAt:    r.CreatedAt,
			Assets:       assets,
		})
	}

	return &Catalog{Owner: owner, Repo: repo, Tags: tags}
}
