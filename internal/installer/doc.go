// Package installer places a UE4SS release into a game's executable
// directory and reports whether a game already has one.
//
// An install resolves the requested tag against the release catalog, picks
// the installable asset, downloads it to <cacheDir>/ue4ss.zip, extracts it
// over the target directory and deletes the archive. An archive left in the
// cache by an interrupted run is extracted without contacting the release
// API. Installs are not transactional: a failed extraction leaves the
// archive and whatever was already written in place.
package installer
