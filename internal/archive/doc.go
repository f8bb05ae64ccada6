// Package archive provides the byte-level collaborators of the installer:
// streaming a remote file to disk and reading or extracting zip archives.
//
// Downloads are written to a temporary file next to the destination and
// renamed into place, so a failed transfer never leaves a partial file at the
// destination path. Failures are returned as *TransferError.
//
// Extraction writes every entry of a zip archive under a destination
// directory, overwriting files that already exist. Entries that would escape
// the destination are rejected. Failures are returned as *ExtractionError.
package archive
