package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	textls "github.com/aexvir/zed-text-language-server"
	"github.com/aexvir/zed-text-language-server/binary"
)

func newPlatformCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platform",
		Short: "Print the release asset name for the running platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			platform, err := binary.CurrentPlatform()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), platform.AssetName(textls.BinaryName))
			return nil
		},
	}
}
