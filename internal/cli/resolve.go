package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	textls "github.com/aexvir/zed-text-language-server"
)

var (
	serverID    string
	commandPath string
)

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the path of the language server binary, installing it if needed",
		Args:  cobra.NoArgs,
		RunE:  runResolve,
	}

	cmd.Flags().StringVar(&serverID, "id", textls.BinaryName, "Language server id reported in status updates")
	cmd.Flags().StringVar(&commandPath, "path", os.Getenv("PATH"), "Command path searched before installing")

	return cmd
}

func runResolve(cmd *cobra.Command, _ []string) error {
	ext := newExtension(cmd)

	command, err := ext.LanguageServerCommand(
		cmd.Context(),
		textls.ServerID(serverID),
		textls.PathWorktree{Path: commandPath},
	)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), command.Path)
	return nil
}
