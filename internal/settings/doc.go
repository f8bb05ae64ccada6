// Package settings reads and writes the UE4SS settings file
// (UE4SS-settings.ini) without losing the comments users keep next to
// individual settings.
//
// # Grammar
//
// The file is parsed line by line; each line is trimmed before it is
// classified:
//   - blank lines are skipped and do not end a run of comments
//   - "[Header]" starts a new section and drops comments not yet attached
//   - lines starting with ";" are comments
//   - lines containing "=" are entries; the key is left of the first "=",
//     the value is everything after it, both trimmed. An entry before any
//     header opens a section with an empty header.
//   - any other line is kept as a comment too, so stray prose survives
//
// Pending comments are attached to the next entry. Comments after the last
// entry of the file are dropped.
//
// # Serialization
//
// Each section is written as its header (omitted when empty), then every
// entry's comments followed by "key = value", then one blank line. For text
// already in that shape, Parse(Serialize(Parse(x))) equals Parse(x);
// arbitrary hand-formatted input is normalized rather than reproduced byte
// for byte.
package settings
