package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	textls "github.com/aexvir/zed-text-language-server"
	"github.com/aexvir/zed-text-language-server/binary"
)

var (
	storageDir  string
	registryURL string
	quiet       bool
)

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "textls-zed",
		Short:         "Resolve and install the text language server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(
		&storageDir,
		"storage-dir",
		defaultStorageDir(),
		"Directory installed versions are kept in; anything else inside it is deleted after an install (env TEXTLS_STORAGE_DIR)",
	)
	cmd.PersistentFlags().StringVar(&registryURL, "registry", binary.DefaultRegistryURL, "GitHub API root used to look up releases")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")

	cmd.AddCommand(newResolveCmd())
	cmd.AddCommand(newInstalledCmd())
	cmd.AddCommand(newPlatformCmd())

	return cmd
}

// defaultStorageDir is a private directory under the user cache, never the
// working directory, since installing prunes everything else in the root.
func defaultStorageDir() string {
	if dir := os.Getenv("TEXTLS_STORAGE_DIR"); dir != "" {
		return dir
	}

	cache, err := os.UserCacheDir()
	if err != nil {
		cache = os.TempDir()
	}
	return filepath.Join(cache, "textls-zed")
}

// newExtension builds an extension from the persistent flags.
func newExtension(cmd *cobra.Command) *textls.Extension {
	var output io.Writer = cmd.ErrOrStderr()
	var host textls.Host = textls.LogHost{Output: output}
	if quiet {
		output, host = nil, nil
	}

	registry := binary.NewRegistry(
		binary.WithRegistryURL(registryURL),
		binary.WithToken(os.Getenv("GITHUB_TOKEN")),
		binary.WithRegistryLog(output),
	)

	return textls.New(
		textls.WithStorageDir(storageDir),
		textls.WithRegistry(registry),
		textls.WithOutput(output),
		textls.WithHost(host),
	)
}
