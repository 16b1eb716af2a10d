package binary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Installer keeps versioned copies of a binary under a storage root, laid out as
// <root>/<name>-<version>/<name>. After a fresh install, everything else in
// the root is removed.
type Installer struct {
	root     string
	name     string
	client   *http.Client
	lockpath string
	log      logger

	// swapped in tests to simulate filesystem failures
	listdir   func(root string) ([]string, error)
	removeall func(path string) error
}

// InstallerOption customizes an [Installer] built by [NewInstaller].
type InstallerOption func(i *Installer)

// WithDownloadClient sets the client used to fetch release archives.
func WithDownloadClient(client *http.Client) InstallerOption {
	return func(i *Installer) {
		i.client = client
	}
}

// WithLockPath overrides where the inter-process install lock is kept.
// It must not live inside the storage root.
func WithLockPath(path string) InstallerOption {
	return func(i *Installer) {
		i.lockpath = path
	}
}

// WithInstallLog sets where the installer prints its step logs; nil silences them.
func WithInstallLog(w io.Writer) InstallerOption {
	return func(i *Installer) {
		i.log = newlogger(w)
	}
}

// NewInstaller constructs an installer for binary name storing versions under root.
func NewInstaller(root, name string, opts ...InstallerOption) *Installer {
	inst := Installer{
		root:   root,
		name:   name,
		client: http.DefaultClient,
		log:    newlogger(os.Stderr),

		listdir:   listdir,
		removeall: os.RemoveAll,
	}

	for _, opt := range opts {
		opt(&inst)
	}

	if inst.lockpath == "" {
		inst.lockpath = defaultLockPath(root, name)
	}

	return &inst
}

// Root is the storage root versions are installed into.
func (i *Installer) Root() string {
	return i.root
}

// VersionDir is the directory name holding the given version.
func (i *Installer) VersionDir(version string) string {
	return i.name + "-" + version
}

// BinPath is where the binary of the given version lives once installed.
func (i *Installer) BinPath(version string) string {
	return filepath.Join(i.root, i.VersionDir(version), i.name)
}

// Install makes sure version is present on disk, downloading the archive at url
// when it isn't, and returns the path to the binary.
//
// When the binary already exists nothing is downloaded and nothing is pruned;
// pruning is a side effect of a fresh install only. downloading, if set, is
// called right before the download starts.
//
// A version that isn't a single path element is rejected before anything
// touches the storage root.
func (i *Installer) Install(ctx context.Context, version, url string, downloading func()) (string, error) {
	if err := validversion(version); err != nil {
		return "", err
	}

	versiondir := i.VersionDir(version)
	binpath := i.BinPath(version)

	if isRegularFile(binpath) {
		return binpath, nil
	}

	if downloading != nil {
		downloading()
	}
	i.log.step(fmt.Sprintf("installing %s %s", i.name, version))

	if err := os.MkdirAll(i.root, 0o755); err != nil {
		return "", fmt.Errorf("failed to create destination folder %s: %w", i.root, err)
	}

	lock, err := acquire(ctx, i.lockpath, i.log)
	if err != nil {
		return "", err
	}
	defer lock.Unlock()

	// another process may have installed the same version while we were waiting
	if isRegularFile(binpath) {
		i.log.detail(fmt.Sprintf("%s %s was installed concurrently", i.name, version))
		return binpath, nil
	}

	if err := i.download(ctx, url, versiondir); err != nil {
		return "", fmt.Errorf("%w: %w", ErrDownload, err)
	}

	if err := i.prune(versiondir); err != nil {
		return "", err
	}

	return binpath, nil
}

// validversion makes sure version maps to exactly one directory in the root,
// since pruning compares top level entries against it.
func validversion(version string) error {
	switch {
	case version == "":
		return fmt.Errorf("%w: empty release tag", ErrInvalidVersion)
	case strings.ContainsAny(version, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidVersion, version)
	}
	return nil
}

// download unpacks the archive into a staging directory first and moves it in
// place once complete, so a partially extracted version is never picked up.
func (i *Installer) download(ctx context.Context, url, versiondir string) error {
	target := filepath.Join(i.root, versiondir)
	staging := target + ".partial"

	if err := os.RemoveAll(staging); err != nil {
		return fmt.Errorf("failed to clear staging directory %s: %w", staging, err)
	}
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return fmt.Errorf("failed to create staging directory %s: %w", staging, err)
	}

	if err := fetch(ctx, i.client, i.log, url, staging); err != nil {
		_ = os.RemoveAll(staging)
		return err
	}

	if !isRegularFile(filepath.Join(staging, i.name)) {
		_ = os.RemoveAll(staging)
		return fmt.Errorf("archive %s does not contain %s", url, i.name)
	}

	// a version dir without the binary is leftover from an interrupted run
	if err := os.RemoveAll(target); err != nil {
		_ = os.RemoveAll(staging)
		return fmt.Errorf("failed to clear %s: %w", target, err)
	}

	if err := os.Rename(staging, target); err != nil {
		_ = os.RemoveAll(staging)
		return fmt.Errorf("failed to move %s into place: %w", versiondir, err)
	}

	return nil
}

// prune removes every entry of the storage root except keep.
// Entries that can't be removed are logged and skipped.
func (i *Installer) prune(keep string) error {
	start := time.Now()

	names, err := i.listdir(i.root)
	if err != nil {
		return err
	}

	var failed int
	for _, name := range names {
		if name == keep {
			continue
		}

		i.log.detail(fmt.Sprintf("removing stale %s", name))
		if err := i.removeall(filepath.Join(i.root, name)); err != nil {
			failed++
			i.log.warn(fmt.Sprintf("%s %s: %s", ErrStalePrune, name, err))
		}
	}

	if failed > 0 {
		i.log.detail(fmt.Sprintf("pruned with %d failures after %s", failed, time.Since(start).Round(time.Millisecond)))
	}

	return nil
}

// listdir returns the names of the immediate children of root.
func listdir(root string) ([]string, error) {
	dir, err := os.Open(root)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrDirectoryRead, root, err)
	}
	defer dir.Close()

	var names []string
	for {
		entries, err := dir.ReadDir(64)
		for _, entry := range entries {
			names = append(names, entry.Name())
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w in %s: %w", ErrDirectoryEntry, root, err)
		}
	}

	return names, nil
}
