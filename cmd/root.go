package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ridoystarlord/invctl/appcontext"
	"github.com/ridoystarlord/invctl/config"
	"github.com/ridoystarlord/invctl/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFile string
	apiURL     string
	verbose    bool
	dbFlag     string

	app *appcontext.Context
)

var rootCmd = &cobra.Command{
	Use:   "invctl",
	Short: "Inventory database client",
	Long: `invctl browses, searches, prints and counts inventory databases.

Examples:

  invctl db list
  invctl db use 12
  invctl records --search "blue vase"
  invctl inventory 012345678905 3
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations["bare"] == "true" {
			return nil
		}
		return setupContext(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if app != nil {
			_ = app.Close()
		}
	},
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println("❌", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ./invctl.yaml or $HOME/invctl.yaml)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Inventory API base URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&dbFlag, "db", "", "Location ID (default: the one selected with 'invctl db use')")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(columnsCmd)
	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(inventoryCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(iconsCmd)
	rootCmd.AddCommand(authCmd)
}

func setupContext(cmd *cobra.Command) error {
	cfg, envLoaded, err := loadConfig()
	if err != nil {
		return err
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	if !envLoaded {
		logger.Debug("no .env file found, continuing")
	}

	app, err = appcontext.Init(cmd.Context(), cfg, logger)
	return err
}

// loadConfig reads .env before the config so its variables reach viper's
// environment lookups.
func loadConfig() (*config.Config, bool, error) {
	envLoaded := utils.LoadEnv()

	v := viper.New()
	if apiURL != "" {
		v.Set(config.KeyAPIURL, apiURL)
	}
	cfg, err := config.Load(v, configFile)
	if err != nil {
		return nil, envLoaded, err
	}
	return cfg, envLoaded, nil
}

// fail prints a message in the CLI's error style and exits.
func fail(format string, args ...any) {
	fmt.Printf("❌ "+format+"\n", args...)
	if app != nil {
		_ = app.Close()
	}
	os.Exit(1)
}

// locationID returns --db or the location saved by 'invctl db use'.
func locationID(ctx context.Context) (string, error) {
	if dbFlag != "" {
		return dbFlag, nil
	}
	id, err := app.Prefs.LoadedLocation(ctx)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("no database selected; pass --db or run 'invctl db use <id>'")
	}
	return id, nil
}
