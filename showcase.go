package main

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Edgar-mwila/portfolio/internal/content"
	"github.com/Edgar-mwila/portfolio/internal/showcase"
)

const showcaseCookie = "showcase"

// carouselView is what carousel.html renders for one project card.
type carouselView struct {
	Session    string
	Project    string
	Title      string
	Images     []string
	Current    string
	Index      int
	Length     int
	Paused     bool
	State      string
	Progress   float64
	IntervalMs int64
}

func newCarouselView(sessionID string, project content.Project, car *showcase.Carousel) carouselView {
	snap := car.Snapshot()
	current, _ := car.Current()

	return carouselView{
		Session:    sessionID,
		Project:    project.Slug,
		Title:      project.Title,
		Images:     project.Images,
		Current:    current,
		Index:      snap.Index,
		Length:     snap.Length,
		Paused:     snap.Paused,
		State:      snap.State,
		Progress:   snap.Progress * 100,
		IntervalMs: car.Interval().Milliseconds(),
	}
}

// projectCard pairs a project with the carousel of the current page view.
type projectCard struct {
	content.Project
	Carousel carouselView
}

func (s *server) projectCards(session *showcase.Session) []projectCard {
	cards := make([]projectCard, 0, len(s.site.Projects))
	for _, project := range s.site.Projects {
		card := projectCard{Project: project}
		if session != nil {
			if car, ok := session.Carousel(project.Slug); ok {
				card.Carousel = newCarouselView(session.ID, project, car)
			}
		}
		cards = append(cards, card)
	}

	return cards
}

// withCarousel resolves the session and project of a showcase route and
// passes them to next. Unknown sessions and projects get a 404.
func (s *server) withCarousel(next func(*gin.Context, *showcase.Session, content.Project, *showcase.Carousel)) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := s.sessions.Get(c.Param("session"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Showcase session not found"})
			return
		}

		project, ok := s.site.Project(c.Param("project"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}

		car, ok := session.Carousel(project.Slug)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}

		next(c, session, project, car)
	}
}

func (s *server) renderCarousel(c *gin.Context, session *showcase.Session, project content.Project, car *showcase.Carousel) {
	c.HTML(http.StatusOK, "carousel.html", newCarouselView(session.ID, project, car))
}

// Setup the carousel routes. Pointer enter/leave on a card map to pause and
// resume; the page sends the close beacon when it unloads.
func (s *server) setupShowcaseRoutes(r *gin.Engine) {
	closeSession := func(c *gin.Context) {
		if !s.sessions.Close(c.Param("session")) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Showcase session not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
	// sendBeacon can only POST.
	r.POST("/showcase/:session", closeSession)
	r.DELETE("/showcase/:session", closeSession)

	g := r.Group("/showcase/:session/:project")

	g.GET("", s.withCarousel(s.renderCarousel))

	g.GET("/state", s.withCarousel(func(c *gin.Context, _ *showcase.Session, _ content.Project, car *showcase.Carousel) {
		c.JSON(http.StatusOK, car.Snapshot())
	}))

	g.GET("/events", s.withCarousel(s.streamCarousel))

	g.POST("/next", s.withCarousel(func(c *gin.Context, session *showcase.Session, project content.Project, car *showcase.Carousel) {
		car.Advance()
		s.renderCarousel(c, session, project, car)
	}))

	g.POST("/prev", s.withCarousel(func(c *gin.Context, session *showcase.Session, project content.Project, car *showcase.Carousel) {
		car.Retreat()
		s.renderCarousel(c, session, project, car)
	}))

	g.POST("/goto/:index", s.withCarousel(func(c *gin.Context, session *showcase.Session, project content.Project, car *showcase.Carousel) {
		// Out of range or malformed indexes leave the carousel where it is.
		if index, err := strconv.Atoi(c.Param("index")); err == nil {
			car.GoTo(index)
		}
		s.renderCarousel(c, session, project, car)
	}))

	g.POST("/pause", s.withCarousel(func(c *gin.Context, session *showcase.Session, project content.Project, car *showcase.Carousel) {
		car.Pause()
		s.renderCarousel(c, session, project, car)
	}))

	g.POST("/resume", s.withCarousel(func(c *gin.Context, session *showcase.Session, project content.Project, car *showcase.Carousel) {
		car.Resume()
		s.renderCarousel(c, session, project, car)
	}))
}

// streamCarousel sends a "state" event whenever the carousel changes and on
// every sampling tick so the progress bar can be redrawn.
func (s *server) streamCarousel(c *gin.Context, session *showcase.Session, _ content.Project, car *showcase.Carousel) {
	updates, cancel := car.Subscribe()
	defer cancel()

	ticker := time.NewTicker(s.cfg.SampleEvery)
	defer ticker.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("state", car.Snapshot())

	ctx := c.Request.Context()
	c.Stream(func(_ io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case snap, ok := <-updates:
			if !ok {
				c.SSEvent("closed", gin.H{"state": "closed"})
				return false
			}
			c.SSEvent("state", snap)
			return true
		case <-ticker.C:
			// An open stream keeps the session from expiring.
			s.sessions.Get(session.ID)
			c.SSEvent("state", car.Snapshot())
			return true
		}
	})
}
