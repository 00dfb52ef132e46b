// Package models defines the site configuration and page records the
// generator pipeline passes between its stages.
package models

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// SiteConfig holds site-wide values read from the environment once at
// startup. It is passed by value into the loader, renderer and feed
// writers; nothing mutates it after Load.
type SiteConfig struct {
	// Base is the site origin used to build absolute URLs.
	Base string `envconfig:"SITE_BASE" default:"https://gorod-legends.ru"`

	// BotURL is the outbound call-to-action target (the Telegram deep link).
	BotURL string `envconfig:"BOT_URL" default:"https://t.me/luciddreams?start=_tgr_ChFKPawxOGRi"`

	CTAText string `envconfig:"CTA_TEXT" default:"Открыть в Telegram"`
	CTAHref string `envconfig:"CTA_HREF" default:"/go/telegram"`

	Brand     string `envconfig:"BRAND_NAME" default:"Luna Chat"`
	SiteTitle string `envconfig:"SITE_TITLE" default:"Luna Chat"`
	SiteDesc  string `envconfig:"SITE_DESCRIPTION" default:"Уютное общение 24/7"`

	// MetrikaID enables the Yandex Metrika counter snippet when non-empty.
	MetrikaID string `envconfig:"METRIKA_ID"`

	// WriteSitemap makes the generate pipeline emit sitemap.xml after the
	// pages. Kept as a raw string because the truthy set includes values
	// ("да", "on") that strconv.ParseBool rejects.
	WriteSitemap string `envconfig:"WRITE_SITEMAP"`
}

// envAliases maps legacy variable names onto the canonical ones. The alias
// applies only when the canonical variable is unset.
var envAliases = map[string]string{
	"SITE_ORIGIN": "SITE_BASE",
	"SITE_NAME":   "BRAND_NAME",
}

// LoadSiteConfig reads .env (best effort) and the process environment into
// a SiteConfig.
func LoadSiteConfig() (SiteConfig, error) {
	// A missing .env is the normal case; only a present-but-broken file is
	// worth a warning.
	if err := godotenv.Load(); err != nil {
		if _, statErr := os.Stat(".env"); statErr == nil {
			slog.Warn(".env file found but could not be loaded", "error", err)
		}
	}

	for alias, canonical := range envAliases {
		if os.Getenv(canonical) == "" {
			if v := os.Getenv(alias); v != "" {
				os.Setenv(canonical, v)
			}
		}
	}

	var cfg SiteConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return SiteConfig{}, err
	}
	return cfg, nil
}

// Origin returns the site base without a trailing slash.
func (c SiteConfig) Origin() string {
	return strings.TrimRight(c.Base, "/")
}

// AbsoluteURL prefixes a site-relative path with the origin. Already
// absolute http(s) URLs pass through untouched.
func (c SiteConfig) AbsoluteURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.Origin() + path
}
