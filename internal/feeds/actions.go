// Package feeds implements the standalone sitemap/RSS/robots pass.
package feeds

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/gorod-legends/lunapages/internal/common"
	"github.com/gorod-legends/lunapages/models"
	"github.com/gorod-legends/lunapages/pkg/buildlog"
	"github.com/gorod-legends/lunapages/pkg/csvsource"
	feedspkg "github.com/gorod-legends/lunapages/pkg/feeds"
	"github.com/gorod-legends/lunapages/pkg/language"
	"github.com/gorod-legends/lunapages/pkg/output"
	"github.com/gorod-legends/lunapages/pkg/sitescan"
)

// FeedsAction writes sitemap.xml and rss.xml (plus robots.txt with
// --robots) from the source CSV when one exists, otherwise from a scan of
// the already-built output tree.
func FeedsAction(c *cli.Context) error {
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

	outDir := c.String("out")

	var records []models.PageRecord
	csvPath, found := common.LocateCSV(c.String("csv"))
	switch {
	case found:
		loader := &csvsource.Loader{Logger: logger, Detector: language.NewDetector()}
		var stats csvsource.Stats
		records, stats, err = loader.Load(csvPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger.Info("rows loaded", "csv", csvPath, "loaded", stats.Loaded, "skipped", stats.Skipped)
	case c.String("csv") != "":
		fmt.Fprintf(os.Stderr, "Error: CSV file not found: %s\n", c.String("csv"))
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, `  lunapages feeds --csv data/pages.csv`)
		fmt.Fprintln(os.Stderr, `  lunapages feeds                 # scans --out for built pages when no CSV exists`)
		os.Exit(1)
	default:
		records, err = sitescan.Scan(outDir)
		if err != nil {
			logger.Error("failed to scan output tree", "error", err, "dir", outDir)
			os.Exit(2)
		}
		logger.Info("no CSV found, scanned output tree", "dir", outDir, "pages", len(records))
	}

	if len(records) == 0 {
		fmt.Println("No pages found; nothing to write.")
		return nil
	}

	root, err := output.NewRoot(outDir)
	if err != nil {
		logger.Error("failed to prepare output root", "error", err, "dir", outDir)
		os.Exit(2)
	}

	// Opening the build log would create it, so only consult one a
	// generate run already left behind.
	var lastMod feedspkg.LastModFunc
	if _, statErr := os.Stat(filepath.Join(root.Dir, buildlog.FileName)); statErr == nil {
		blog, err := buildlog.Open(root.Dir)
		if err != nil {
			logger.Warn("build log unreadable, lastmod falls back to run time", "error", err)
		} else {
			defer blog.Close()
			lastMod = blog.LastModified
		}
	}

	now := time.Now().UTC()
	items := feedspkg.FromRecords(cfg, records, lastMod)

	if err := feedspkg.WriteSitemap(root, items, now); err != nil {
		logger.Error("failed to write sitemap", "error", err)
		os.Exit(2)
	}
	fmt.Printf("[OK] sitemap.xml (%d url(s))\n", len(items))

	limit := c.Int("limit")
	if err := feedspkg.WriteRSS(root, cfg, items, limit, now); err != nil {
		logger.Error("failed to write rss", "error", err)
		os.Exit(2)
	}
	fmt.Printf("[OK] rss.xml (%d item(s))\n", rssCount(len(items), limit))

	if c.Bool("robots") {
		if err := feedspkg.WriteRobots(root, cfg); err != nil {
			logger.Error("failed to write robots.txt", "error", err)
			os.Exit(2)
		}
		fmt.Println("[OK] robots.txt")
	}

	fmt.Printf("[DONE] Feeds written into %s\n", root.Dir)
	return nil
}

// rssCount is how many items the RSS writer will actually emit.
func rssCount(n, limit int) int {
	if limit <= 0 {
		limit = feedspkg.DefaultRSSLimit
	}
	if n > limit {
		return limit
	}
	return n
}
