// Package site renders the public pages and the admin console.
// Pages read and write data only through the JSON API client.
package site

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"dstclan/config"
	"dstclan/pkg/client"
	"dstclan/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "news", "vip", "clan", "login", "admin"}

// Site server-rendered pages
type Site struct {
	baseURL    string
	httpClient *http.Client
	secure     bool
	logger     *logger.Logger
	pages      map[string]*template.Template
}

// New parses the templates and prepares the API client settings
func New(cfg config.SiteConfig, logger *logger.Logger) (*Site, error) {
	funcs := template.FuncMap{
		"categoryClass": func(category string) string { return strings.ToLower(category) },
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	timeout := cfg.ClientTimeout
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}

	return &Site{
		baseURL:    cfg.APIBaseURL,
		httpClient: &http.Client{Timeout: timeout},
		secure:     cfg.SecureCookies,
		logger:     logger,
		pages:      pages,
	}, nil
}

// Register mounts the pages on the router
func (s *Site) Register(router *gin.Engine) {
	router.GET("/", s.Home)
	router.POST("/listings/submit", s.SubmitListing)
	router.GET("/news", s.News)
	router.GET("/vip", s.Vip)
	router.POST("/vip/select", s.SelectVip)
	router.GET("/clan", s.Clan)

	admin := router.Group("/admin")
	{
		admin.GET("", s.Admin)
		admin.POST("/login", s.Login)
		admin.POST("/logout", s.Logout)
		admin.POST("/listings/:id/:action", s.ModerateListing)
		admin.POST("/news", s.CreateNews)
		admin.POST("/news/:id/delete", s.DeleteNews)
	}
}

// api returns a client acting for the visitor of c, attaching the token from ts when given
func (s *Site) api(c *gin.Context, ts client.TokenSource) *client.Client {
	opts := []client.Option{client.WithHTTPClient(s.httpClient), client.WithForwardedFor(c.ClientIP())}
	if ts != nil {
		opts = append(opts, client.WithTokenSource(ts))
	}
	return client.New(s.baseURL, opts...)
}

// render writes a page inside the layout with the pending flash notice
func (s *Site) render(c *gin.Context, name, title string, data gin.H) {
	data["Title"] = title
	data["Active"] = name
	if name == "login" {
		data["Active"] = "admin"
	}
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = s.takeFlash(c)
	}
	c.Render(http.StatusOK, render.HTML{Template: s.pages[name], Name: "layout", Data: data})
}

func (s *Site) redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
