package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/ridoystarlord/invctl/events"
	"github.com/ridoystarlord/invctl/importer"
	"github.com/ridoystarlord/invctl/loader"
	"github.com/spf13/cobra"
)

var (
	importEncoding string
	importMappings []string
	importChunk    int
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Upload a CSV file into the selected database",
	Long: `Upload every row of a CSV file as a new record, 100 rows per request.

Headers map onto columns of the same name unless --map says otherwise.
A mapping may tag a new column and give it a display name:

  --map "UPC=upc;primary;search"
  --map "Retail=price;price;display:Retail Price"
  --map "Internal=notes;hidden"

Failed chunks are reported and skipped.

Examples:
  invctl import stock.csv
  invctl import stock.csv --encoding windows-1252 --map "UPC=upc;primary"
`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		id, err := locationID(ctx)
		if err != nil {
			fail("%v", err)
		}
		mappings, err := loader.ParseMappings(importMappings)
		if err != nil {
			fail("%v", err)
		}

		f, err := os.Open(args[0])
		if err != nil {
			fail("Error opening %s: %v", args[0], err)
		}
		table, err := importer.ReadTable(f, importEncoding)
		f.Close()
		if err != nil {
			fail("Error reading %s: %v", args[0], err)
		}
		fmt.Printf("📄 %d rows, %d columns\n", len(table.Rows), len(table.Headers))

		unsubscribe := events.Subscribe(app.Bus, func(ev events.ImportProgress) {
			status := color.GreenString("ok")
			if ev.Failed {
				status = color.RedString("failed")
			}
			fmt.Printf("  ⏳ chunk %d/%d %s, %d rows, ETA %s\n",
				ev.Chunk, ev.Chunks, status, ev.Rows, ev.ETA.Round(time.Second))
		})
		defer unsubscribe()

		summary, err := importer.Run(ctx, importer.Config{
			LocationID: id,
			Mappings:   mappings,
			ChunkSize:  importChunk,
			Backend:    app.API,
			Bus:        app.Bus,
			Logger:     app.Logger.Named("import"),
		}, table)
		if err != nil {
			fail("Import failed: %v", err)
		}

		for _, c := range summary.NewColumns {
			fmt.Printf("  ➕ column %s\n", c)
		}
		fmt.Printf("\n📊 Summary:\n")
		fmt.Printf("  • Rows: %d\n", summary.Rows)
		fmt.Printf("  • Uploaded: %d\n", summary.Uploaded)
		fmt.Printf("  • Failed chunks: %d of %d\n", summary.FailedChunks, summary.Chunks)
		fmt.Printf("  • Took: %s\n", summary.Elapsed.Round(time.Millisecond))
		if summary.FailedChunks > 0 {
			color.Yellow("⚠️  Some rows were not uploaded, see the log above")
			os.Exit(1)
		}
		color.Green("✅ Import complete")
	},
}

func init() {
	importCmd.Flags().StringVarP(&importEncoding, "encoding", "e", "utf-8", "File encoding (utf-8, windows-1252, shift_jis)")
	importCmd.Flags().StringArrayVarP(&importMappings, "map", "m", nil, "Header mapping header=column;options (repeatable)")
	importCmd.Flags().IntVar(&importChunk, "chunk", importer.ChunkSize, "Records per request")
}
