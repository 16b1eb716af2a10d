package binary

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/mod/semver"
)

// Installed lists the versions of name present under root, newest first.
// Only version directories that actually contain the binary are reported.
func Installed(root, name string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w %s: %w", ErrDirectoryRead, root, err)
	}

	prefix := name + "-"

	var versions []string
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) || strings.HasSuffix(entry.Name(), ".partial") {
			continue
		}

		if !isRegularFile(filepath.Join(root, entry.Name(), name)) {
			continue
		}

		versions = append(versions, strings.TrimPrefix(entry.Name(), prefix))
	}

	slices.SortStableFunc(versions, func(a, b string) int {
		return compareversions(b, a)
	})

	return versions, nil
}

// compareversions orders semver tags by precedence, with or without the v prefix;
// anything else falls back to lexical order.
func compareversions(a, b string) int {
	canonical := func(v string) string {
		if !strings.HasPrefix(v, "v") {
			return "v" + v
		}
		return v
	}

	ca, cb := canonical(a), canonical(b)
	if semver.IsValid(ca) && semver.IsValid(cb) {
		return semver.Compare(ca, cb)
	}

	return strings.Compare(a, b)
}
