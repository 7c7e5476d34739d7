package main

import (
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"

	"github.com/Edgar-mwila/portfolio/internal/content"
	"github.com/Edgar-mwila/portfolio/internal/showcase"
	"github.com/Edgar-mwila/portfolio/internal/store"
)

func main() {
	Execute()
}

type server struct {
	cfg      Config
	site     content.Portfolio
	store    *store.Store
	mailer   Mailer
	sessions *showcase.Registry

	adminToken string
	salt       string

	// background tracks visit writes and cleanups still in flight.
	background sync.WaitGroup
}

func newServer(cfg Config, site content.Portfolio, st *store.Store, mailer Mailer, sessions *showcase.Registry) *server {
	s := &server{
		cfg:        cfg,
		site:       site,
		store:      st,
		mailer:     mailer,
		sessions:   sessions,
		adminToken: generateAdminToken(),
		salt:       generateAdminToken(),
	}

	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", s.adminToken)
	}
	if cfg.TrackVisitors {
		log.Println("Privacy: Visitor tracking enabled with hashed IP addresses")
	}

	return s
}

// close waits for background writes, then releases every carousel.
func (s *server) close() {
	s.background.Wait()
	s.sessions.Shutdown()
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"ago":     humanize.Time,
		"bytes":   humanize.Bytes,
		"comma":   humanize.Comma,
		"join":    strings.Join,
		"percent": func(f float64) string { return humanize.FtoaWithDigits(f, 1) + "%" },
		"add":     func(a, b int) int { return a + b },
		"year":    func() int { return time.Now().Year() },
	}
}

func (s *server) routes() *gin.Engine {
	r := gin.Default()

	tmpl := template.Must(template.New("").Funcs(templateFuncs()).ParseFS(templatesFS, "templates/*.html"))
	r.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatal("Failed to load static assets:", err)
	}
	r.StaticFS("/static", http.FS(static))
	// Project screenshots stay on disk so content files can add galleries
	// without a rebuild.
	r.Static("/images", s.cfg.ImagesDir)

	if s.cfg.TrackVisitors {
		r.Use(s.visitorTrackingMiddleware())
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	// Home page route
	r.GET("/", s.handleIndex)

	// CV download
	r.GET("/cv", func(c *gin.Context) {
		if _, err := os.Stat(s.cfg.CVPath); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "CV is not available"})
			return
		}
		name := strings.ReplaceAll(s.site.Profile.Name, " ", "-") + "-CV.pdf"
		c.FileAttachment(s.cfg.CVPath, name)
	})

	setupThemeRoutes(r)
	s.setupContactRoutes(r)
	s.setupShowcaseRoutes(r)
	s.setupAdminRoutes(r)

	return r
}

// handleIndex renders the whole page and mounts a fresh showcase session
// for its carousels.
func (s *server) handleIndex(c *gin.Context) {
	// A reload unmounts the previous view.
	if previous, err := c.Cookie(showcaseCookie); err == nil {
		s.sessions.Close(previous)
	}

	session := s.sessions.Open(s.site.Galleries())
	sessionID := ""
	if session != nil {
		sessionID = session.ID
		c.SetCookie(showcaseCookie, sessionID, int(s.cfg.SessionTTL.Seconds()), "/", "", false, true)
	}

	active := c.DefaultQuery("section", "home")
	if !s.site.HasSection(active) {
		active = "home"
	}

	c.Header("Accept-CH", "Sec-CH-Prefers-Color-Scheme")
	c.Header("Vary", "Sec-CH-Prefers-Color-Scheme")
	c.HTML(http.StatusOK, "index.html", gin.H{
		"site":        s.site,
		"theme":       themeFor(c),
		"active":      active,
		"session":     sessionID,
		"projects":    s.projectCards(session),
		"analyticsID": s.cfg.AnalyticsID,
	})
}
