package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Config is the decoded ue4ss table. Empty fields mean "use the default".
type Config struct {
	CacheDir   string     `json:"cache_dir,omitempty" yaml:"cache_dir,omitempty"`
	Repository Repository `json:"repository" yaml:"repository"`
	Tag        string     `json:"tag,omitempty" yaml:"tag,omitempty"`
	Token      string     `json:"-" yaml:"-"`
	Games      []string   `json:"games,omitempty" yaml:"games,omitempty"`
}

// Repository names the release source.
type Repository struct {
	Owner  string `json:"owner,omitempty" yaml:"owner,omitempty"`
	Repo   string `json:"repo,omitempty" yaml:"repo,omitempty"`
	APIURL string `json:"api_url,omitempty" yaml:"api_url,omitempty"`
}

// ValidationError reports an invalid field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "config validation failed for " + e.Field + ": " + e.Message
	}
	return "config validation failed: " + e.Message
}

var repoNamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Validate checks the fields that are set.
func (c *Config) Validate() error {
	if c.Repository.Owner != "" {
		if err := validateRepoName(c.Repository.Owner); err != nil {
			return &ValidationError{Field: "repository.owner", Message: err.Error()}
		}
	}
	if c.Repository.Repo != "" {
		if err := validateRepoName(c.Repository.Repo); err != nil {
			return &ValidationError{Field: "repository.repo", Message: err.Error()}
		}
	}
	if c.Repository.APIURL != "" {
		if err := ValidateAPIURL(c.Repository.APIURL); err != nil {
			return &ValidationError{Field: "repository.api_url", Message: err.Error()}
		}
	}

	if len(c.Games) > MaxGameCount {
		return &ValidationError{
			Field:   "games",
			Message: fmt.Sprintf("too many games (%d), maximum is %d", len(c.Games), MaxGameCount),
		}
	}
	for i, game := range c.Games {
		if strings.TrimSpace(game) == "" {
			return &ValidationError{Field: fmt.Sprintf("games[%d]", i+1), Message: "path cannot be empty"}
		}
	}

	return nil
}

func validateRepoName(name string) error {
	if len(name) > 100 {
		return fmt.Errorf("name too long (%d chars, max 100)", len(name))
	}
	if !repoNamePattern.MatchString(name) {
		return fmt.Errorf("invalid name %q", name)
	}
	return nil
}

// ValidateAPIURL accepts absolute http and https URLs.
func ValidateAPIURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("URL must use https:// or http:// scheme (got: %q)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}
