package settings

import "strings"

// normalizeHeader turns "General" into "[General]"; bracketed and empty
// headers are returned unchanged.
func normalizeHeader(header string) string {
	header = strings.TrimSpace(header)
	if header == "" || (strings.HasPrefix(header, "[") && strings.HasSuffix(header, "]")) {
		return header
	}
	return "[" + header + "]"
}

// Lookup returns the first entry named key in the first section matching
// header. Header and key comparisons ignore case; header may be given with
// or without brackets.
func (f File) Lookup(header, key string) (Entry, bool) {
	header = normalizeHeader(header)
	for _, section := range f.Sections {
		if !strings.EqualFold(section.Header, header) {
			continue
		}
		for _, entry := range section.Entries {
			if strings.EqualFold(entry.Key, key) {
				return entry, true
			}
		}
	}
	return Entry{}, false
}

// Set updates the value of the first matching entry, keeping its comments.
// When no entry matches, it is appended to the first section with a matching
// header, or to a new section at the end of the file.
func (f *File) Set(header, key, value string) {
	header = normalizeHeader(header)
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	for i := range f.Sections {
		section := &f.Sections[i]
		if !strings.EqualFold(section.Header, header) {
			continue
		}
		for j := range section.Entries {
			if strings.EqualFold(section.Entries[j].Key, key) {
				section.Entries[j].Value = value
				return
			}
		}
	}

	for i := range f.Sections {
		if strings.EqualFold(f.Sections[i].Header, header) {
			f.Sections[i].Entries = append(f.Sections[i].Entries, Entry{Key: key, Value: value})
			return
		}
	}

	f.Sections = append(f.Sections, Section{
		Header:  header,
		Entries: []Entry{{Key: key, Value: value}},
	})
}
