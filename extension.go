// Package textls wires the text-language-server into a host editor, resolving
// which binary to launch: one found on the project's command path, a version
// resolved earlier in this process, or the latest github release, installed on demand.
package textls

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/aexvir/zed-text-language-server/binary"
)

const (
	// BinaryName is the name of the language server executable.
	BinaryName = "text-language-server"
	// Repository is the github repository releases are published in.
	Repository = "Lev1ty/text-language-server"
)

// Extension resolves the language server binary for a host.
// It is meant to be driven by a single caller; the resolved path is kept in
// memory for the lifetime of the value.
type Extension struct {
	host      Host
	registry  *binary.Registry
	installer *binary.Installer
	platform  func() (binary.Platform, error)

	storagedir string
	installops []binary.InstallerOption
	output     io.Writer

	// last successfully installed binary; never set from a command path hit
	cachedPath string
}

// Option configures an [Extension] built by [New].
type Option func(e *Extension)

// WithHost sets who receives installation status updates.
func WithHost(host Host) Option {
	return func(e *Extension) {
		if host == nil {
			host = nophost{}
		}
		e.host = host
	}
}

// WithStorageDir sets the directory versions are installed into.
// Everything else inside it is removed after a fresh install.
func WithStorageDir(dir string) Option {
	return func(e *Extension) {
		e.storagedir = dir
	}
}

// WithRegistry replaces the github registry client.
// The registry keeps its own log output, see [binary.WithRegistryLog].
func WithRegistry(registry *binary.Registry) Option {
	return func(e *Extension) {
		e.registry = registry
	}
}

// WithDownloadClient sets the http client used to fetch release archives.
func WithDownloadClient(client *http.Client) Option {
	return func(e *Extension) {
		e.installops = append(e.installops, binary.WithDownloadClient(client))
	}
}

// WithInstallerOptions passes additional options to the installer.
func WithInstallerOptions(opts ...binary.InstallerOption) Option {
	return func(e *Extension) {
		e.installops = append(e.installops, opts...)
	}
}

// WithPlatform pins the platform instead of detecting the running one.
func WithPlatform(os binary.OS, arch binary.Arch) Option {
	return func(e *Extension) {
		e.platform = func() (binary.Platform, error) {
			return binary.PlatformTag(os, arch)
		}
	}
}

// WithOutput redirects the step logs of this extension's default registry and
// its installer. A nil writer silences them.
func WithOutput(w io.Writer) Option {
	return func(e *Extension) {
		e.output = w
	}
}

// New constructs an extension installing into the current directory.
func New(opts ...Option) *Extension {
	e := Extension{
		host:       nophost{},
		platform:   binary.CurrentPlatform,
		storagedir: ".",
		output:     os.Stderr,
	}

	for _, opt := range opts {
		opt(&e)
	}

	if e.registry == nil {
		e.registry = binary.NewRegistry(binary.WithRegistryLog(e.output))
	}

	installops := append([]binary.InstallerOption{binary.WithInstallLog(e.output)}, e.installops...)
	e.installer = binary.NewInstaller(e.storagedir, BinaryName, installops...)

	return &e
}

// LanguageServerCommand returns the command the host should run for server id.
func (e *Extension) LanguageServerCommand(ctx context.Context, id ServerID, worktree Worktree) (Command, error) {
	path, err := e.Resolve(ctx, id, worktree)
	if err != nil {
		return Command{}, err
	}

	return Command{Path: path}, nil
}

// Resolve returns the path of the binary to run.
//
// A binary on the worktree's command path always wins and is not remembered,
// so it never masks versions installed later. Otherwise the path resolved
// earlier is reused while it still exists, and only then the latest release
// is looked up and installed.
// Nothing is remembered when resolution fails.
func (e *Extension) Resolve(ctx context.Context, id ServerID, worktree Worktree) (string, error) {
	var finder binary.PathFinder
	if worktree != nil {
		finder = worktree
	}

	if path, ok := binary.Probe(finder, BinaryName, e.cachedPath); ok {
		return path, nil
	}

	e.host.SetInstallationStatus(id, StatusCheckingForUpdate)

	platform, err := e.platform()
	if err != nil {
		return "", err
	}

	release, err := e.registry.Latest(
		ctx,
		Repository,
		binary.ReleaseOptions{
			RequireAssets: true,
			PreRelease:    false,
		},
	)
	if err != nil {
		return "", err
	}

	asset, err := release.Asset(platform.AssetName(BinaryName))
	if err != nil {
		return "", err
	}

	path, err := e.installer.Install(
		ctx,
		release.Version,
		asset.URL,
		func() { e.host.SetInstallationStatus(id, StatusDownloading) },
	)
	if err != nil {
		return "", fmt.Errorf("failed to install %s %s: %w", BinaryName, release.Version, err)
	}

	e.cachedPath = path
	return path, nil
}

// StorageDir is the directory versions are installed into.
func (e *Extension) StorageDir() string {
	return e.installer.Root()
}
