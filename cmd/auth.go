package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/ridoystarlord/invctl/api"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the API token",
}

var authLoginCmd = &cobra.Command{
	Use:   "login [token]",
	Short: "Save a bearer token; read from stdin when omitted",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		token := ""
		if len(args) == 1 {
			token = args[0]
		} else {
			fmt.Print("🔑 Token: ")
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			token = line
		}
		token = strings.TrimSpace(token)
		if token == "" {
			fail("No token given")
		}

		claims, err := api.InspectToken(token)
		if err != nil {
			fail("%v", err)
		}
		if claims.Expired(time.Now()) {
			fail("Token expired at %s", claims.ExpiresAt.Local().Format(time.RFC1123))
		}
		if err := app.Prefs.SetAuthToken(cmd.Context(), token); err != nil {
			fail("Error saving token: %v", err)
		}
		color.Green("✅ Signed in as %s", claims.Identity())
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved token",
	Run: func(cmd *cobra.Command, args []string) {
		if err := app.Prefs.SetAuthToken(cmd.Context(), ""); err != nil {
			fail("Error clearing token: %v", err)
		}
		fmt.Println("👋 Signed out")
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show who the saved token belongs to",
	Run: func(cmd *cobra.Command, args []string) {
		token, err := app.Prefs.AuthToken(cmd.Context())
		if err != nil {
			fail("Error reading token: %v", err)
		}
		if token == "" {
			fmt.Println("🔒 Not signed in")
			return
		}
		claims, err := api.InspectToken(token)
		if err != nil {
			fail("Saved token is unreadable: %v", err)
		}

		fmt.Printf("👤 %s\n", claims.Identity())
		if claims.ExpiresAt == nil {
			fmt.Println("  • Expires: never")
			return
		}
		exp := claims.ExpiresAt.Local()
		if claims.Expired(time.Now()) {
			color.Red("  • Expired: %s", exp.Format(time.RFC1123))
			return
		}
		fmt.Printf("  • Expires: %s (in %s)\n", exp.Format(time.RFC1123), time.Until(exp).Round(time.Minute))
	},
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
}
