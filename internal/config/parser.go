package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/ZebulonRouseFrantzich/ue4ss-installer/internal/platform"
	lua "github.com/yuin/gopher-lua"
)

// Parser evaluates configuration files.
type Parser struct {
	detector platform.Detector
	logger   *slog.Logger
}

// NewParser returns a parser. A nil detector leaves the platform table
// undefined; a nil logger discards output.
func NewParser(detector platform.Detector, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Parser{detector: detector, logger: logger}
}

// ParseError is a configuration file that could not be evaluated.
type ParseError struct {
	Message string // user-facing summary
	Detail  string // raw Lua or validation error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Message, e.Detail)
}

// ParseFile reads and evaluates the configuration file at path.
func (p *Parser) ParseFile(ctx context.Context, path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxConfigSize+1))
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > MaxConfigSize {
		return nil, &ParseError{
			Message: "config file too large",
			Detail:  fmt.Sprintf("%s exceeds %d bytes", path, MaxConfigSize),
		}
	}

	for _, finding := range DetectSensitiveData(string(data)) {
		p.logger.Warn("config contains a hardcoded secret",
			"path", path, "line", finding.Line, "kind", finding.PatternName,
			"hint", "set UE4SS_INSTALLER_TOKEN or GITHUB_TOKEN instead")
	}

	cfg, err := p.ParseString(ctx, string(data))
	if err != nil {
		return nil, err
	}
	p.logger.Debug("config loaded", "path", path, "games", len(cfg.Games))
	return cfg, nil
}

// ParseString evaluates configuration source code.
func (p *Parser) ParseString(ctx context.Context, code string) (*Config, error) {
	L := newSandboxedVM()
	defer L.Close()
	L.SetContext(ctx)

	if p.detector != nil {
		info, err := p.detector.Detect(ctx)
		if err != nil {
			return nil, fmt.Errorf("platform detection failed: %w", err)
		}
		if err := platform.InjectPlatformTable(L, info); err != nil {
			return nil, fmt.Errorf("inject platform table: %w", err)
		}
	}

	if err := L.DoString(code); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &ParseError{Message: "Lua error", Detail: err.Error()}
	}

	return extractConfig(L)
}

func extractConfig(L *lua.LState) (*Config, error) {
	root := L.GetGlobal(luaGlobal)
	switch root.Type() {
	case lua.LTNil:
		return &Config{}, nil
	case lua.LTTable:
	default:
		return nil, &ParseError{
			Message: "invalid 'ue4ss' table",
			Detail:  fmt.Sprintf("expected table, got %s", root.Type()),
		}
	}
	table := root.(*lua.LTable)

	cfg := &Config{}
	var err error
	if cfg.CacheDir, err = optionalString(table, luaFieldCacheDir, luaFieldCacheDir); err != nil {
		return nil, err
	}
	if cfg.Tag, err = optionalString(table, luaFieldTag, luaFieldTag); err != nil {
		return nil, err
	}
	if cfg.Token, err = optionalString(table, luaFieldToken, luaFieldToken); err != nil {
		return nil, err
	}

	switch repo := table.RawGetString(luaFieldRepo); repo.Type() {
	case lua.LTNil:
	case lua.LTTable:
		if cfg.Repository, err = extractRepository(repo.(*lua.LTable)); err != nil {
			return nil, err
		}
	default:
		return nil, typeError(luaFieldRepo, "table", repo)
	}

	switch games := table.RawGetString(luaFieldGames); games.Type() {
	case lua.LTNil:
	case lua.LTTable:
		if cfg.Games, err = extractGames(games.(*lua.LTable)); err != nil {
			return nil, err
		}
	default:
		return nil, typeError(luaFieldGames, "table", games)
	}

	if err := cfg.Validate(); err != nil {
		return nil, &ParseError{Message: "invalid configuration", Detail: err.Error()}
	}
	return cfg, nil
}

func extractRepository(table *lua.LTable) (Repository, error) {
	var (
		repo Repository
		err  error
	)
	if repo.Owner, err = optionalString(table, luaFieldOwner, luaFieldRepo+"."+luaFieldOwner); err != nil {
		return repo, err
	}
	if repo.Repo, err = optionalString(table, luaFieldRepoName, luaFieldRepo+"."+luaFieldRepoName); err != nil {
		return repo, err
	}
	if repo.APIURL, err = optionalString(table, luaFieldAPIURL, luaFieldRepo+"."+luaFieldAPIURL); err != nil {
		return repo, err
	}
	return repo, nil
}

// extractGames reads the array part in index order. nil holes left by
// platform conditionals are skipped.
func extractGames(table *lua.LTable) ([]string, error) {
	type indexed struct {
		idx  int
		path string
	}
	var (
		items []indexed
		bad   error
	)

	table.ForEach(func(key, value lua.LValue) {
		if bad != nil {
			return
		}
		n, ok := key.(lua.LNumber)
		if !ok {
			bad = &ParseError{
				Message: "invalid 'games' list",
				Detail:  fmt.Sprintf("unexpected key %s; games must be a list of paths", key),
			}
			return
		}
		switch value.Type() {
		case lua.LTString:
			items = append(items, indexed{idx: int(n), path: value.String()})
		case lua.LTBool:
			// `cond and "path"` evaluates to false when cond fails
		default:
			bad = typeError(fmt.Sprintf("%s[%d]", luaFieldGames, int(n)), "string", value)
		}
	})
	if bad != nil {
		return nil, bad
	}

	sort.Slice(items, func(i, j int) bool { return items[i].idx < items[j].idx })
	games := make([]string, 0, len(items))
	for _, it := range items {
		games = append(games, it.path)
	}
	return games, nil
}

func optionalString(table *lua.LTable, key, field string) (string, error) {
	v := table.RawGetString(key)
	switch v.Type() {
	case lua.LTNil:
		return "", nil
	case lua.LTString:
		return strings.TrimSpace(v.String()), nil
	default:
		return "", typeError(field, "string", v)
	}
}

func typeError(field, want string, got lua.LValue) error {
	return &ParseError{
		Message: fmt.Sprintf("invalid '%s' field", field),
		Detail:  fmt.Sprintf("expected %s, got %s", want, got.Type()),
	}
}

// FormatError renders err for the terminal. Lua stack tracebacks are only
// shown when verbose is set.
func FormatError(err error, verbose bool) string {
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		return err.Error()
	}
	if verbose {
		return fmt.Sprintf("%s\n\nDetails:\n%s", parseErr.Message, parseErr.Detail)
	}
	detail := parseErr.Detail
	if idx := strings.Index(detail, "stack traceback"); idx > 0 {
		detail = strings.TrimSpace(detail[:idx])
	}
	return fmt.Sprintf("%s: %s", parseErr.Message, detail)
}
