package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-cafe/job-portal/internal/company"
	"github.com/golang-cafe/job-portal/internal/job"
	"github.com/golang-cafe/job-portal/internal/seo"
	"github.com/golang-cafe/job-portal/internal/server"

	humanize "github.com/dustin/go-humanize"
	"github.com/gorilla/feeds"
	"github.com/gosimple/slug"
)

const feedSize = 20

func siteURL(svr server.Server) string {
	cfg := svr.GetConfig()
	if cfg.Env == "dev" {
		return fmt.Sprintf("http://%s:%s", cfg.SiteHost, cfg.Port)
	}
	return fmt.Sprintf("https://%s", cfg.SiteHost)
}

// ServeRSSFeed publishes the most recently published vacancies.
func ServeRSSFeed(svr server.Server, companyRepo *company.Repository, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		jobs, err := jobRepo.Jobs(ctx, job.Filters{Limit: feedSize})
		if err != nil {
			svr.Log(err, "unable to retrieve vacantes for RSS feed")
			svr.XML(w, http.StatusInternalServerError, []byte{})
			return
		}
		companies, err := companyRepo.Companies(ctx)
		if err != nil {
			svr.Log(err, "unable to retrieve empresas for RSS feed")
			svr.XML(w, http.StatusInternalServerError, []byte{})
			return
		}
		names := make(map[int64]string, len(companies))
		for _, c := range companies {
			names[c.ID] = c.Name
		}
		base := siteURL(svr)
		cfg := svr.GetConfig()
		feed := &feeds.Feed{
			Title:       cfg.SiteName,
			Link:        &feeds.Link{Href: base},
			Description: fmt.Sprintf("Vacantes publicadas en %s", cfg.SiteName),
			Created:     time.Now(),
		}
		for _, j := range jobs {
			feed.Items = append(feed.Items, &feeds.Item{
				Id:          fmt.Sprintf("%s/vacantes/%d", base, j.ID),
				Title:       fmt.Sprintf("%s en %s - %s", j.Title, names[j.CompanyID], j.Mode),
				Link:        &feeds.Link{Href: fmt.Sprintf("%s/empresas?empresa=%d#%s", base, j.CompanyID, slug.Make(j.Title))},
				Description: string(svr.MarkdownToHTML(j.Description + "\n\n**Salario:** " + humanize.Commaf(j.Salary))),
				Created:     j.PublishedAt.Time,
			})
		}
		rssFeed, err := feed.ToRss()
		if err != nil {
			svr.Log(err, "unable to convert rss feed to xml")
			svr.XML(w, http.StatusInternalServerError, []byte{})
			return
		}
		svr.XML(w, http.StatusOK, []byte(rssFeed))
	}
}

func SitemapHandler(svr server.Server, companyRepo *company.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companies, err := companyRepo.Companies(r.Context())
		if err != nil {
			svr.Log(err, "unable to retrieve empresas for sitemap")
			svr.XML(w, http.StatusInternalServerError, []byte{})
			return
		}
		buf := new(bytes.Buffer)
		if _, err := seo.Sitemap(siteURL(svr), companies, time.Now()).WriteTo(buf); err != nil {
			svr.Log(err, "unable to write sitemap")
			svr.XML(w, http.StatusInternalServerError, []byte{})
			return
		}
		svr.XML(w, http.StatusOK, buf.Bytes())
	}
}
