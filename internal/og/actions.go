// Package og implements the social-card pass: one PNG per CSV row.
package og

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/gorod-legends/lunapages/internal/common"
	"github.com/gorod-legends/lunapages/models"
	"github.com/gorod-legends/lunapages/pkg/csvsource"
	"github.com/gorod-legends/lunapages/pkg/ogimage"
	"github.com/gorod-legends/lunapages/pkg/output"
)

// OgAction draws a 1200x630 social card for every CSV row into
// <out>/og/<slug>.png. Font trouble never fails the run; the writer falls
// back to a built-in bitmap face.
func OgAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	cfg, err := models.LoadSiteConfig()
	if err != nil {
		logger.Error("failed to load site config", "error", err)
		os.Exit(2)
	}

	csvPath, found := common.LocateCSV(c.String("csv"))
	if !found {
		if c.String("csv") != "" {
			fmt.Fprintf(os.Stderr, "Error: CSV file not found: %s\n", c.String("csv"))
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage:")
			fmt.Fprintln(os.Stderr, `  lunapages og --csv data/pages.csv`)
			fmt.Fprintln(os.Stderr, `  lunapages og --font /path/to/Font.ttf`)
			os.Exit(1)
		}
		fmt.Println("No CSV found; nothing to draw.")
		return nil
	}

	loader := &csvsource.Loader{Logger: logger}
	records, stats, err := loader.Load(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		fmt.Printf("No usable rows in %s (%d seen, %d skipped); nothing to draw.\n", csvPath, stats.Rows, stats.Skipped)
		return nil
	}

	root, err := output.NewRoot(c.String("out"))
	if err != nil {
		logger.Error("failed to prepare output root", "error", err, "dir", c.String("out"))
		os.Exit(2)
	}

	writer := ogimage.NewWriter(cfg, root, c.String("font"))

	drawn := 0
	for _, rec := range records {
		path, err := writer.Write(rec)
		if err != nil {
			logger.Warn("skipping row, image write failed", "line", rec.Line, "url", rec.URL, "error", err)
			continue
		}
		fmt.Printf("[OK] line %d: %s\n", rec.Line, path)
		drawn++
	}

	fmt.Printf("[DONE] Generated %d OG image(s) into %s\n", drawn, root.Path("og"))
	return nil
}
