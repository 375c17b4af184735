package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var iconsCmd = &cobra.Command{
	Use:   "icons",
	Short: "List the icons available for databases",
	Run: func(cmd *cobra.Command, args []string) {
		icons, err := app.API.Icons(cmd.Context())
		if err != nil {
			fail("Error listing icons: %v", err)
		}
		fmt.Printf("🖼️  %d icons:\n", len(icons))
		for _, i := range icons {
			fmt.Printf("  %-20s %s\n", i.Name, i.URL)
		}
	},
}
