package cmd

import (
	"fmt"
	"os"

	"github.com/ridoystarlord/invctl/config"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default invctl.yaml",
	Long: `Write a commented invctl.yaml into the current directory.

Examples:
  invctl init            # Create invctl.yaml
  invctl init --force    # Overwrite an existing file`,
	Annotations: map[string]string{"bare": "true"},
	Run: func(cmd *cobra.Command, args []string) {
		path := config.FileName + ".yaml"
		if _, err := os.Stat(path); err == nil && !initForce {
			fail("%s already exists! Use --force to overwrite it", path)
		}
		if err := os.WriteFile(path, []byte(config.Template), 0644); err != nil {
			fail("Error creating %s: %v", path, err)
		}
		fmt.Printf("✅ Created %s\n", path)
		fmt.Println("📝 Set api.url to your inventory server")
		fmt.Println("🚀 Run 'invctl health' to check the connection")
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing file")
}
