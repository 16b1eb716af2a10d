package textls

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
)

// ServerID identifies the language server instance the host asks about.
type ServerID string

// InstallationStatus is a progress signal shown by the host; it carries no control flow.
type InstallationStatus int

// Statuses reported while resolving a binary that isn't on the command path.
const (
	StatusCheckingForUpdate InstallationStatus = iota + 1
	StatusDownloading
)

// String returns the status as shown to the user.
func (s InstallationStatus) String() string {
	switch s {
	case StatusCheckingForUpdate:
		return "checking for update"
	case StatusDownloading:
		return "downloading"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Host receives installation status updates. Updates are fire and forget.
type Host interface {
	SetInstallationStatus(id ServerID, status InstallationStatus)
}

// Worktree is the project a language server is started for.
// It is only used to look up executables on the project's command path.
type Worktree interface {
	Which(name string) (string, bool)
}

// LogHost renders installation statuses as step logs.
type LogHost struct {
	Output io.Writer
}

// SetInstallationStatus prints the status for id to Output, or stderr when unset.
func (h LogHost) SetInstallationStatus(id ServerID, status InstallationStatus) {
	out := h.Output
	if out == nil {
		out = os.Stderr
	}

	fmt.Fprintln(
		out,
		color.MagentaString(" ⌘"),
		color.New(color.Bold).Sprintf("%s: %s", id, status),
	)
}

type nophost struct{}

func (nophost) SetInstallationStatus(ServerID, InstallationStatus) {}

// PathWorktree looks executables up in a PATH style list of directories.
type PathWorktree struct {
	Path string
}

// EnvWorktree is a worktree whose command path is the process PATH.
func EnvWorktree() PathWorktree {
	return PathWorktree{Path: os.Getenv("PATH")}
}

// Which returns the first regular, executable file called name on the path.
func (w PathWorktree) Which(name string) (string, bool) {
	for _, dir := range filepath.SplitList(w.Path) {
		if dir == "" {
			continue
		}

		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil || !info.Mode().IsRegular() || info.Mode().Perm()&0o111 == 0 {
			continue
		}

		return candidate, true
	}

	return "", false
}
