package cli

import (
	"github.com/spf13/cobra"

	"github.com/hadley31/chess-image-generator/pkg/render/styles"
)

// stylesCommand creates the styles command listing the bundled piece sets.
func (c *CLI) stylesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the bundled piece styles",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printInfo("Available piece styles:")
			for _, name := range styles.Names {
				if name == styles.Default {
					printDetail("%s (default)", name)
				} else {
					printDetail("%s", name)
				}
			}
		},
	}
}
