package binary

import "os"

// PathFinder looks up executables on a project's command path.
type PathFinder interface {
	Which(name string) (string, bool)
}

// Probe looks for a runnable binary without touching the network.
// A hit on the command path always wins; otherwise the cached path is returned
// as long as it still points at a regular file. A miss is not an error.
func Probe(finder PathFinder, name, cached string) (string, bool) {
	if finder != nil {
		if path, ok := finder.Which(name); ok {
			return path, true
		}
	}

	if cached != "" && isRegularFile(cached) {
		return cached, true
	}

	return "", false
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
