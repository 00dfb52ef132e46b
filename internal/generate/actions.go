// Package generate implements the page pipeline behind the root action:
// CSV rows in, rendered landing pages plus sidecar artifacts out.
package generate

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/gorod-legends/lunapages/internal/common"
	"github.com/gorod-legends/lunapages/models"
	"github.com/gorod-legends/lunapages/pkg/buildlog"
	"github.com/gorod-legends/lunapages/pkg/csvsource"
	"github.com/gorod-legends/lunapages/pkg/feeds"
	"github.com/gorod-legends/lunapages/pkg/language"
	"github.com/gorod-legends/lunapages/pkg/links"
	"github.com/gorod-legends/lunapages/pkg/manifest"
	"github.com/gorod-legends/lunapages/pkg/normalize"
	"github.com/gorod-legends/lunapages/pkg/output"
	"github.com/gorod-legends/lunapages/pkg/render"
)

// GenerateAction loads the source CSV, renders one landing page per row,
// refreshes the sidecar manifest and the build log, and writes the sitemap
// when WRITE_SITEMAP is set. It is both the root action and the explicit
// `generate` subcommand.
func GenerateAction(c *cli.Context) error {
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
			fmt.Fprintln(os.Stderr, `  lunapages --csv data/pages.csv`)
			fmt.Fprintf(os.Stderr, "  lunapages                       # probes %s\n", strings.Join(csvsource.DefaultCandidates, ", "))
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Need help? Run: lunapages quickstart")
			os.Exit(1)
		}
		fmt.Printf("No CSV found (tried %s); nothing to generate.\n", strings.Join(csvsource.DefaultCandidates, ", "))
		return nil
	}

	tpl, err := render.LoadTemplate(c.String("template"))
	if err != nil {
		logger.Error("failed to load template", "error", err, "path", c.String("template"))
		os.Exit(2)
	}

	root, err := output.NewRoot(c.String("out"))
	if err != nil {
		logger.Error("failed to prepare output root", "error", err, "dir", c.String("out"))
		os.Exit(2)
	}

	if c.Bool("clean") {
		if err := root.Clean(); err != nil {
			logger.Error("failed to clean output root", "error", err)
			os.Exit(2)
		}
		fmt.Printf("Cleaned generated content under %s\n", root.Dir)
	}

	loader := &csvsource.Loader{
		Logger:        logger,
		Strict:        c.Bool("strict-header"),
		RelatedWindow: c.Int("related-window"),
		Detector:      language.NewDetector(),
	}
	records, stats, err := loader.Load(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "The canonical column list is in: lunapages quickstart")
		os.Exit(1)
	}
	if len(records) == 0 {
		fmt.Printf("No usable rows in %s (%d seen, %d skipped); nothing to generate.\n", csvPath, stats.Rows, stats.Skipped)
		return nil
	}
	logger.Info("rows loaded", "csv", csvPath, "rows", stats.Rows, "loaded", stats.Loaded, "skipped", stats.Skipped)

	m, err := manifest.Load(manifest.Path(root.Dir))
	if err != nil {
		logger.Warn("manifest unreadable, starting from empty", "error", err)
		m = &manifest.Manifest{}
	}

	resolver := &links.Resolver{
		Config:   cfg,
		Index:    links.BuildIndex(records),
		Manifest: m,
		Root:     root,
	}
	renderer := render.NewRenderer(cfg, tpl, resolver)

	blog, err := buildlog.Open(root.Dir)
	if err != nil {
		logger.Warn("build log unavailable, sitemap lastmod falls back to run time", "error", err)
		blog = nil
	} else {
		defer blog.Close()
	}

	now := time.Now().UTC()
	var entries []manifest.Entry
	for _, rec := range records {
		page, err := renderer.Render(rec)
		if err != nil {
			logger.Warn("skipping row, render failed", "line", rec.Line, "url", rec.URL, "error", err)
			continue
		}
		path, err := root.WritePage(rec.URL, page)
		if err != nil {
			logger.Warn("skipping row, write failed", "line", rec.Line, "url", rec.URL, "error", err)
			continue
		}
		fmt.Printf("[OK] line %d: %s -> %s\n", rec.Line, rec.URL, path)

		if blog != nil {
			if _, err := blog.Touch(rec.URL, rec.Title, common.Fingerprint(rec), now); err != nil {
				logger.Warn("build log update failed", "url", rec.URL, "error", err)
			}
		}
		entries = append(entries, manifest.Entry{
			URL:         rec.URL,
			Title:       rec.Title,
			Slug:        rec.Slug,
			Description: rec.Description,
		})
	}

	if err := manifest.Update(manifest.Path(root.Dir), entries); err != nil {
		logger.Warn("manifest update failed", "error", err)
	}

	if c.Bool("replace-md") {
		removed, err := root.ReplaceMarkdown()
		if err != nil {
			logger.Warn("markdown cleanup incomplete", "error", err, "removed", removed)
		} else if removed > 0 {
			fmt.Printf("[OK] removed %d competing markdown file(s)\n", removed)
		}
	}

	if normalize.Truthy(cfg.WriteSitemap) {
		items := feeds.FromRecords(cfg, records, lastModFunc(blog))
		if err := feeds.WriteSitemap(root, items, now); err != nil {
			logger.Warn("sitemap write failed", "error", err)
		} else {
			fmt.Printf("[OK] sitemap.xml (%d url(s))\n", len(items))
		}
	}

	fmt.Printf("[DONE] Generated/updated %d page(s) into %s\n", len(entries), root.Dir)
	return nil
}

// lastModFunc adapts an optional build log into the feed writers' lookup.
func lastModFunc(blog *buildlog.Log) feeds.LastModFunc {
	if blog == nil {
		return nil
	}
	return blog.LastModified
}
