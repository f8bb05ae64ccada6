package config

import (
	"regexp"
	"strings"
)

// SensitivePattern is a pattern that suggests a credential written into the
// configuration file.
type SensitivePattern struct {
	Name    string
	Pattern *regexp.Regexp
}

var sensitivePatterns = []SensitivePattern{
	{
		Name:    "GitHub Token",
		Pattern: regexp.MustCompile(`\b(gh[pousr]_[A-Za-z0-9]{36,}|github_pat_[A-Za-z0-9_]{22,})\b`),
	},
	{
		Name:    "Token",
		Pattern: regexp.MustCompile(`(?i)\btoken\s*=\s*['"][^'"]{15,}['"]`),
	},
}

// SensitiveDataFinding is one match of a sensitive pattern.
type SensitiveDataFinding struct {
	PatternName string
	Line        int
	Preview     string
}

// DetectSensitiveData reports lines that look like hardcoded credentials.
// Each line is reported at most once, for the first pattern it matches.
// Lua comments are ignored.
func DetectSensitiveData(content string) []SensitiveDataFinding {
	var findings []SensitiveDataFinding

	for i, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		for _, p := range sensitivePatterns {
			if p.Pattern.MatchString(line) {
				findings = append(findings, SensitiveDataFinding{
					PatternName: p.Name,
					Line:        i + 1,
					Preview:     redactSensitiveValue(line),
				})
				break
			}
		}
	}

	return findings
}

func redactSensitiveValue(line string) string {
	key, _, found := strings.Cut(line, "=")
	if !found {
		return "[REDACTED]"
	}
	return strings.TrimSpace(key) + " = [REDACTED]"
}
