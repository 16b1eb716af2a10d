package binary

import "errors"

var (
	// ErrUnsupportedPlatform is returned when the host os or cpu architecture
	// has no release artifact.
	ErrUnsupportedPlatform = errors.New("unsupported platform")
	// ErrRegistry is returned when the release registry can't be queried or
	// doesn't hold a qualifying release.
	ErrRegistry = errors.New("failed to look up latest release")
	// ErrAssetNotFound is returned when the release has no asset for the platform.
	ErrAssetNotFound = errors.New("asset not found")
	// ErrDownload is returned when fetching or extracting the archive fails.
	ErrDownload = errors.New("failed to download binary")
	// ErrInvalidVersion is returned when a release tag can't be used as a
	// single directory name under the storage root.
	ErrInvalidVersion = errors.New("invalid version")
	// ErrDirectoryRead is returned when the storage root can't be opened for pruning.
	ErrDirectoryRead = errors.New("failed to read directory")
	// ErrDirectoryEntry is returned when enumerating the storage root fails midway.
	ErrDirectoryEntry = errors.New("failed to read entry")
	// ErrStalePrune marks a stale version that couldn't be removed.
	// It is only ever logged, never returned.
	ErrStalePrune = errors.New("failed to remove directory")
)
