package settings

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Entry is a single key/value setting with the comment lines that preceded it.
type Entry struct {
	Key      string
	Value    string
	Comments []string
}

// Section is a bracketed header and its entries. Header holds the literal
// bracketed text, e.g. "[General]", or "" for entries before any header.
type Section struct {
	Header  string
	Entries []Entry
}

// File is a parsed settings file. Duplicate headers and keys are kept as they
// appear.
type File struct {
	Sections []Section
}

// ParseString parses settings text. Lines may be of any length.
func ParseString(text string) File {
	// strings.Reader never fails, so neither does Parse
	f, _ := Parse(strings.NewReader(text))
	return f
}

// Parse parses settings text from r. It only fails when r fails.
func Parse(r io.Reader) (File, error) {
	var (
		file     File
		current  *Section
		comments []string
	)

	br := bufio.NewReader(r)
	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return File{}, fmt.Errorf("read settings: %w", readErr)
		}
		line := strings.TrimSpace(raw)

		switch {
		case line == "":

		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
			if current != nil {
				file.Sections = append(file.Sections, *current)
			}
			current = &Section{Header: line}
			comments = nil

		case strings.HasPrefix(line, ";"):
			comments = append(comments, line)

		case strings.Contains(line, "="):
			if current == nil {
				current = &Section{}
			}
			key, value, _ := strings.Cut(line, "=")
			current.Entries = append(current.Entries, Entry{
				Key:      strings.TrimSpace(key),
				Value:    strings.TrimSpace(value),
				Comments: comments,
			})
			comments = nil

		default:
			comments = append(comments, line)
		}

		if readErr == io.EOF {
			break
		}
	}

	if current != nil {
		file.Sections = append(file.Sections, *current)
	}
	return file, nil
}

// WriteTo serializes the file to w.
func (f File) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var n int64

	write := func(s string) error {
		written, err := bw.WriteString(s)
		n += int64(written)
		return err
	}

	for _, section := range f.Sections {
		if section.Header != "" {
			if err := write(section.Header + "\n"); err != nil {
				return n, err
			}
		}
		for _, entry := range section.Entries {
			for _, comment := range entry.Comments {
				if err := write(comment + "\n"); err != nil {
					return n, err
				}
			}
			if err := write(entry.Key + " = " + entry.Value + "\n"); err != nil {
				return n, err
			}
		}
		if err := write("\n"); err != nil {
			return n, err
		}
	}

	return n, bw.Flush()
}

// String returns the serialized file.
func (f File) String() string {
	var sb strings.Builder
	_, _ = f.WriteTo(&sb)
	return sb.String()
}
