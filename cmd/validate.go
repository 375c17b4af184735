package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/ridoystarlord/invctl/loader"
	"github.com/ridoystarlord/invctl/validator"
	"github.com/spf13/cobra"
)

var (
	validateRemote bool
	validateFormat string
)

var columnsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a column set",
	Long: `Check a column set for duplicate names, attributes held by more than one
column and missing roles (primary, quantity, search).

Examples:
  invctl columns validate                 # Validate columns.yaml
  invctl columns validate --remote        # Validate the server's column set
  invctl columns validate --format json   # Output validation results as JSON
`,
	Run: func(cmd *cobra.Command, args []string) {
		var result *validator.ValidationResult
		if validateRemote {
			ed, _ := openEditor(cmd.Context())
			result = validator.ValidateColumns(ed.Columns())
		} else {
			_, columns, err := loader.LoadColumnsFromYAML(columnsFile)
			if err != nil {
				fail("Error loading %s: %v", columnsFile, err)
			}
			result = validator.ValidateColumns(columns)
		}

		var err error
		if validateFormat == "json" {
			err = outputJSON(result)
		} else {
			err = outputText(result)
		}
		if err != nil {
			fail("%v", err)
		}
		if !result.Valid {
			os.Exit(1)
		}
	},
}

func init() {
	columnsValidateCmd.Flags().BoolVar(&validateRemote, "remote", false, "Validate the column set stored on the server")
	columnsValidateCmd.Flags().StringVar(&validateFormat, "format", "text", "Output format (text, json)")
}

func outputJSON(result *validator.ValidationResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputText(result *validator.ValidationResult) error {
	if result.Valid {
		color.Green("✅ Column validation passed!")
	} else {
		color.Red("❌ Column validation failed!")
	}

	printFindings("🔴 Errors", result.Errors)
	printFindings("🟡 Warnings", result.Warnings)
	printFindings("🔵 Info", result.Info)

	fmt.Printf("\n📊 Summary:\n")
	fmt.Printf("  • Errors: %d\n", len(result.Errors))
	fmt.Printf("  • Warnings: %d\n", len(result.Warnings))
	fmt.Printf("  • Info: %d\n", len(result.Info))

	if !result.Valid {
		fmt.Printf("\n💡 Fix the errors above before saving.\n")
	}
	return nil
}

func printFindings(title string, findings []validator.ValidationError) {
	if len(findings) == 0 {
		return
	}
	fmt.Printf("\n%s (%d):\n", title, len(findings))
	for i, f := range findings {
		fmt.Printf("  %d. ", i+1)
		if f.Column != "" {
			fmt.Printf("[%s] ", f.Column)
		}
		fmt.Printf("%s\n", f.Message)
	}
}
