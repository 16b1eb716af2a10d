// Package binary resolves and installs release builds of an external binary.
//
// The pieces compose into a single resolution:
// - [Probe] checks the project command path and a previously resolved path, without network access
// - [PlatformTag] maps the host os and architecture to the fragments used in artifact names
// - [Registry] finds the latest qualifying github release and [Release.Asset] picks the artifact
// - [Installer] downloads and unpacks the artifact into a version directory and prunes the others
//
// Installed versions are laid out under a storage root as
//
//	<root>/<name>-<version>/<name>
//
// and after every fresh install only the new version directory is left in the root.
//
// example usage
//
//	platform, err := binary.CurrentPlatform()
//	if err != nil {
//		return err
//	}
//
//	release, err := binary.NewRegistry().Latest(ctx, "Lev1ty/text-language-server", binary.ReleaseOptions{RequireAssets: true})
//	if err != nil {
//		return err
//	}
//
//	asset, err := release.Asset(platform.AssetName("text-language-server"))
//	if err != nil {
//		return err
//	}
//
//	path, err := binary.NewInstaller(".", "text-language-server").Install(ctx, release.Version, asset.URL, nil)
package binary
