package main

import (
	"log"
	"strconv"
	"time"

	"github.com/jmaretta/folio"
)

func main() {
	cfg := folio.SiteConfig{
		Name:        folio.EnvOr("SITE_NAME", "Folio"),
		URL:         folio.EnvOr("SITE_URL", "http://localhost:3000"),
		Description: folio.EnvOr("SITE_DESCRIPTION", ""),
		Author:      folio.EnvOr("SITE_AUTHOR", ""),
		Copyright:   folio.EnvOr("SITE_COPYRIGHT", ""),

		Addr:         folio.EnvOr("ADDR", ":3000"),
		DatabasePath: folio.EnvOr("DATABASE_PATH", "data/site.db"),

		AdminPassword: folio.MustEnv("ADMIN_PASSWORD"),
		AdminToken:    folio.EnvOr("ADMIN_TOKEN", ""),
		StatsToken:    folio.EnvOr("STATS_TOKEN", ""),
		SessionSecret: folio.MustEnv("SESSION_SECRET"),
		CookieSecure:  folio.EnvOr("COOKIE_SECURE", "") == "true",

		PostCacheTTL: 5 * time.Minute,
	}
	if v := folio.EnvOr("CRAWLER_CAPACITY", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("folio: invalid CRAWLER_CAPACITY %q", v)
		}
		cfg.CrawlerCapacity = n
	}

	app := folio.New(cfg)
	defer app.Close()

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
