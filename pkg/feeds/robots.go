package feeds

import (
	"fmt"

	"github.com/gorod-legends/lunapages/models"
	"github.com/gorod-legends/lunapages/pkg/output"
)

// WriteRobots writes <out>/robots.txt allowing everything and pointing
// crawlers at the sitemap.
func WriteRobots(root *output.Root, cfg models.SiteConfig) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s\n",
		cfg.AbsoluteURL("/sitemap.xml"))
	return root.WriteFile("robots.txt", []byte(body))
}
