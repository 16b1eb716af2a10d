package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	textls "github.com/aexvir/zed-text-language-server"
	"github.com/aexvir/zed-text-language-server/binary"
)

func newInstalledCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "installed",
		Short: "List installed versions, newest first",
		Args:  cobra.NoArgs,
		RunE:  runInstalled,
	}
}

func runInstalled(cmd *cobra.Command, _ []string) error {
	versions, err := binary.Installed(storageDir, textls.BinaryName)
	if err != nil {
		return err
	}

	if len(versions) == 0 {
		cmd.PrintErrln("no versions installed in", storageDir)
		return nil
	}

	for _, version := range versions {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", version, filepath.Join(storageDir, textls.BinaryName+"-"+version, textls.BinaryName))
	}

	return nil
}
