package platform

import "strings"

var familyMap = map[string]string{
	"debian":   FamilyDebian,
	"ubuntu":   FamilyDebian,
	"rhel":     FamilyRHEL,
	"centos":   FamilyRHEL,
	"rocky":    FamilyRHEL,
	"fedora":   FamilyFedora,
	"suse":     FamilySUSE,
	"opensuse": FamilySUSE,
	"arch":     FamilyArch,
	"manjaro":  FamilyArch,
	"steamos":  FamilyArch,
}

// normalizeArch maps architecture aliases to GOARCH names. Unknown values are
// lower-cased and passed through.
func normalizeArch(arch string) string {
	switch a := strings.ToLower(strings.TrimSpace(arch)); a {
	case "amd64", "x86_64", "x64":
		return "amd64"
	case "arm64", "aarch64":
		return "arm64"
	case "386", "i386", "i686", "x86":
		return "386"
	default:
		return a
	}
}

func normalizeID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func mapFamily(family string) string {
	if canonical, ok := familyMap[normalizeID(family)]; ok {
		return canonical
	}
	return FamilyUnknown
}
