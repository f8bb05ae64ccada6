package config

import (
	"strings"
)

// Generator renders a Config as Lua source.
type Generator struct {
	indent string
}

// NewGenerator returns a generator indenting with two spaces.
func NewGenerator() *Generator {
	return &Generator{indent: "  "}
}

// Generate renders cfg as a configuration file. The token is never written;
// it belongs in the environment.
func (g *Generator) Generate(cfg *Config) string {
	var b strings.Builder

	b.WriteString("-- ue4ss-installer configuration\n")
	b.WriteString("-- The read-only `platform` table describes this machine, e.g.\n")
	b.WriteString("--   platform.is_windows and \"D:/Games/Foo\" or nil\n")
	b.WriteString("-- Set the API token through UE4SS_INSTALLER_TOKEN or GITHUB_TOKEN.\n\n")

	b.WriteString(luaGlobal + " = {\n")

	if cfg.CacheDir != "" {
		g.field(&b, 1, luaFieldCacheDir, quoteLuaString(cfg.CacheDir))
	}

	repo := cfg.Repository
	if repo.Owner != "" || repo.Repo != "" || repo.APIURL != "" {
		g.line(&b, 1, luaFieldRepo+" = {")
		if repo.Owner != "" {
			g.field(&b, 2, luaFieldOwner, quoteLuaString(repo.Owner))
		}
		if repo.Repo != "" {
			g.field(&b, 2, luaFieldRepoName, quoteLuaString(repo.Repo))
		}
		if repo.APIURL != "" {
			g.field(&b, 2, luaFieldAPIURL, quoteLuaString(repo.APIURL))
		}
		g.line(&b, 1, "},")
	}

	if cfg.Tag != "" {
		g.field(&b, 1, luaFieldTag, quoteLuaString(cfg.Tag))
	}

	g.line(&b, 1, luaFieldGames+" = {")
	for _, game := range cfg.Games {
		g.line(&b, 2, quoteLuaString(game)+",")
	}
	g.line(&b, 1, "},")

	b.WriteString("}\n")
	return b.String()
}

func (g *Generator) field(b *strings.Builder, depth int, key, value string) {
	g.line(b, depth, key+" = "+value+",")
}

func (g *Generator) line(b *strings.Builder, depth int, text string) {
	b.WriteString(strings.Repeat(g.indent, depth))
	b.WriteString(text)
	b.WriteString("\n")
}

var luaEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// quoteLuaString returns s as a double-quoted Lua string literal.
func quoteLuaString(s string) string {
	return `"` + luaEscaper.Replace(s) + `"`
}
