package main

import (
	"fmt"
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/gorod-legends/lunapages/internal/feeds"
	"github.com/gorod-legends/lunapages/internal/generate"
	"github.com/gorod-legends/lunapages/internal/og"
	feedspkg "github.com/gorod-legends/lunapages/pkg/feeds"
	"github.com/gorod-legends/lunapages/pkg/help"
)

func main() {
	app := &cli.App{
		Name:   "lunapages",
		Usage:  "generate Luna Chat landing pages, feeds and OG images from a CSV",
		Flags:  generateFlags(),
		Action: generate.GenerateAction,
		Commands: []*cli.Command{
			{
				Name:   "generate",
				Usage:  "render one landing page per CSV row (same as the bare command)",
				Flags:  generateFlags(),
				Action: generate.GenerateAction,
			},
			{
				Name:   "feeds",
				Usage:  "write sitemap.xml and rss.xml, optionally robots.txt",
				Flags:  feedsFlags(),
				Action: feeds.FeedsAction,
			},
			{
				Name:   "og",
				Usage:  "draw 1200x630 social cards, one per CSV row",
				Flags:  ogFlags(),
				Action: og.OgAction,
			},
			{
				Name:  "quickstart",
				Usage: "print the annotated quick-start reference",
				Action: func(c *cli.Context) error {
					fmt.Print(help.QuickstartYAML)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// generateFlags is shared by the root action and the generate subcommand.
func generateFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "csv", Usage: "path to the source CSV (default: probe well-known locations)"},
		&cli.StringFlag{Name: "template", Usage: "path to a custom page template (default: embedded)"},
		&cli.StringFlag{Name: "out", Value: "docs", Usage: "output root directory"},
		&cli.BoolFlag{Name: "clean", Usage: "remove previously generated content first"},
		&cli.BoolFlag{Name: "replace-md", Usage: "delete markdown files that compete with generated pages"},
		&cli.IntFlag{Name: "related-window", Usage: "give rows without related links the previous N rows as defaults"},
		&cli.BoolFlag{Name: "strict-header", Usage: "require the canonical 25-column CSV header"},
		&cli.BoolFlag{Name: "quiet", Usage: "log errors only"},
	}
}

func feedsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "csv", Usage: "path to the source CSV (default: probe well-known locations)"},
		&cli.StringFlag{Name: "out", Value: "docs", Usage: "output root directory"},
		&cli.IntFlag{Name: "limit", Value: feedspkg.DefaultRSSLimit, Usage: "RSS item cap, newest first"},
		&cli.BoolFlag{Name: "robots", Usage: "also write robots.txt"},
		&cli.BoolFlag{Name: "quiet", Usage: "log errors only"},
	}
}

func ogFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "csv", Usage: "path to the source CSV (default: probe well-known locations)"},
		&cli.StringFlag{Name: "out", Value: "docs", Usage: "output root directory"},
		&cli.StringFlag{Name: "font", Usage: "path to a TTF for the card text (default: probe system fonts)"},
		&cli.BoolFlag{Name: "quiet", Usage: "log errors only"},
	}
}
