package seo

import (
	"fmt"
	"time"

	"github.com/golang-cafe/job-portal/internal/company"

	"github.com/snabb/sitemap"
)

// StaticPages are the portal paths that exist independently of any data.
func StaticPages() []string {
	return []string{
		"empresas",
		"empresas/nueva",
		"vacantes/nueva",
		"postulaciones/nueva",
		"estadisticas",
	}
}

// Sitemap lists the static pages and one listing page per company.
func Sitemap(base string, companies []company.Company, now time.Time) *sitemap.Sitemap {
	sm := sitemap.New()
	sm.Add(&sitemap.URL{
		Loc:        base + "/",
		LastMod:    &now,
		ChangeFreq: sitemap.Daily,
	})
	for _, p := range StaticPages() {
		sm.Add(&sitemap.URL{
			Loc:        fmt.Sprintf("%s/%s", base, p),
			LastMod:    &now,
			ChangeFreq: sitemap.Weekly,
		})
	}
	for _, c := range companies {
		lastMod := c.RegisteredAt.Time
		sm.Add(&sitemap.URL{
			Loc:        fmt.Sprintf("%s/empresas?empresa=%d", base, c.ID),
			LastMod:    &lastMod,
			ChangeFreq: sitemap.Weekly,
		})
	}
	return sm
}
