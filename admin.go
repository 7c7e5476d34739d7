// admin.go - privacy-conscious visitor tracking and the owner's dashboard
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/process"

	"github.com/Edgar-mwila/portfolio/internal/showcase"
	"github.com/Edgar-mwila/portfolio/internal/store"
)

const (
	// Visitor rows older than this are purged.
	visitorRetention = 12 * 30 * 24 * time.Hour

	adminCookie = "admin_token"
)

type resourceStats struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

type AdminStats struct {
	*store.Stats
	Showcase    showcase.Stats `json:"showcase"`
	Resources   resourceStats  `json:"resources"`
	GeneratedAt time.Time      `json:"generated_at"`
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate admin token:", err)
	}
	return hex.EncodeToString(bytes)
}

// Hash IP address for privacy compliance (consistent per IP and salt)
func hashIP(salt, ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + salt))
	return hex.EncodeToString(hash.Sum(nil))[:16] // Truncate for storage efficiency
}

// Middleware to check admin authentication
func (s *server) adminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

var untrackedPrefixes = []string{
	"/static/", "/images/", "/admin/", "/favicon", "/privacy", "/showcase/", "/healthz",
}

// Privacy-conscious visitor tracking middleware
func (s *server) visitorTrackingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range untrackedPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		// Respect Do Not Track header
		if c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		visit := store.Visit{
			HashedIP:  hashIP(s.salt, c.ClientIP()),
			UserAgent: c.GetHeader("User-Agent"),
			Path:      path,
			Timestamp: time.Now(),
		}

		// Record in background so the page is not held up by the write.
		s.background.Add(1)
		go func() {
			defer s.background.Done()
			if err := s.store.RecordVisit(context.Background(), visit); err != nil {
				log.Printf("Error recording visitor: %v", err)
			}
		}()

		c.Next()
	}
}

// Cleanup old visitor data for privacy compliance
func cleanupOldVisitorData(ctx context.Context, st *store.Store) {
	rowsDeleted, err := st.CleanupVisits(ctx, time.Now().Add(-visitorRetention))
	if err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
		return
	}

	if rowsDeleted > 0 {
		log.Printf("Privacy cleanup: Removed %d visitor records older than 12 months", rowsDeleted)
	}
}

func processResources() (resourceStats, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return resourceStats{}, err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return resourceStats{}, err
	}

	memory, err := p.MemoryInfo()
	if err != nil {
		return resourceStats{}, err
	}

	return resourceStats{CPUPercent: cpuPercent, MemorySize: memory.RSS}, nil
}

// Get comprehensive admin statistics
func (s *server) getAdminStats(ctx context.Context) (*AdminStats, error) {
	now := time.Now()

	stats, err := s.store.Stats(ctx, now)
	if err != nil {
		return nil, err
	}

	resources, err := processResources()
	if err != nil {
		// Resource numbers are informational only.
		log.Printf("Error reading process resources: %v", err)
	}

	return &AdminStats{
		Stats:       stats,
		Showcase:    s.sessions.Stats(),
		Resources:   resources,
		GeneratedAt: now,
	}, nil
}

func (s *server) setupAdminRoutes(r *gin.Engine) {
	r.GET("/privacy", s.handlePrivacy)

	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{"title": "Admin Login"})
	})
	r.POST("/admin/login", s.handleAdminLogin)
	r.GET("/admin/logout", s.handleAdminLogout)

	admin := r.Group("/admin", s.adminAuthMiddleware())
	admin.GET("/dashboard", s.handleDashboard)
	admin.GET("/api/stats", s.handleStatsJSON(false))
	admin.GET("/export/stats", s.handleStatsJSON(true))
	admin.GET("/messages", s.handleMessages)
	admin.GET("/visitors", s.handleVisitors)
	admin.DELETE("/messages/:id", s.handleDeleteMessage)
	admin.POST("/privacy/cleanup", s.handlePrivacyCleanup)
}

func (s *server) handlePrivacy(c *gin.Context) {
	c.HTML(http.StatusOK, "privacy.html", gin.H{
		"title": "Privacy Policy",
		"site":  s.site,
		"theme": themeFor(c),
	})
}

// adminCredentials falls back to development defaults when the environment
// leaves them unset.
func (s *server) adminCredentials() (username, password string) {
	username, password = s.cfg.AdminUsername, s.cfg.AdminPassword
	debug := gin.Mode() == gin.DebugMode

	if username == "" {
		username = "admin"
		if debug {
			log.Println("WARNING: Using default admin username. Set ADMIN_USERNAME environment variable.")
		}
	}
	if password == "" {
		password = "admin123"
		if debug {
			log.Println("WARNING: Using default admin password. Set ADMIN_PASSWORD environment variable.")
		}
	}

	return username, password
}

func (s *server) handleAdminLogin(c *gin.Context) {
	wantUser, wantPass := s.adminCredentials()
	visitor := hashIP(s.salt, c.ClientIP())

	userOK := subtle.ConstantTimeCompare([]byte(c.PostForm("username")), []byte(wantUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(c.PostForm("password")), []byte(wantPass)) == 1
	if !userOK || !passOK {
		log.Printf("Failed admin login attempt from %s", visitor)
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
		return
	}

	// 24 hours, scoped to the admin pages.
	c.SetCookie(adminCookie, s.adminToken, 24*3600, "/admin", "", false, true)
	log.Printf("Admin login successful from %s", visitor)
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (s *server) handleAdminLogout(c *gin.Context) {
	c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
	log.Printf("Admin logout from %s", hashIP(s.salt, c.ClientIP()))
	c.Redirect(http.StatusFound, "/admin/login")
}

func adminError(c *gin.Context, msg string, err error) {
	log.Printf("%s: %v", msg, err)
	c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{"error": msg})
}

func (s *server) handleDashboard(c *gin.Context) {
	stats, err := s.getAdminStats(c.Request.Context())
	if err != nil {
		adminError(c, "Failed to load statistics", err)
		return
	}

	c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
		"title": "Dashboard",
		"stats": stats,
	})
}

// handleStatsJSON serves the dashboard numbers for HTMX polling, or as a
// download when attachment is set.
func (s *server) handleStatsJSON(attachment bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := s.getAdminStats(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if attachment {
			c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
			log.Printf("Admin stats exported by %s", hashIP(s.salt, c.ClientIP()))
		}
		c.JSON(http.StatusOK, stats)
	}
}

func (s *server) handleMessages(c *gin.Context) {
	messages, err := s.store.Messages(c.Request.Context(), 200)
	if err != nil {
		adminError(c, "Failed to load messages", err)
		return
	}

	c.HTML(http.StatusOK, "admin-messages.html", gin.H{
		"title":    "Messages",
		"messages": messages,
	})
}

func (s *server) handleVisitors(c *gin.Context) {
	visitors, err := s.store.RecentVisits(c.Request.Context(), 200)
	if err != nil {
		adminError(c, "Failed to load visitors", err)
		return
	}

	c.HTML(http.StatusOK, "admin-visitors.html", gin.H{
		"title":    "Visitors",
		"visitors": visitors,
	})
}

func (s *server) handleDeleteMessage(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message id"})
		return
	}

	err = s.store.DeleteMessage(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}
	if err != nil {
		log.Printf("Error deleting message %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		return
	}

	log.Printf("Message %d deleted by admin from %s", id, hashIP(s.salt, c.ClientIP()))
	c.JSON(http.StatusOK, gin.H{"message": "Message deleted successfully"})
}

func (s *server) handlePrivacyCleanup(c *gin.Context) {
	s.background.Add(1)
	go func() {
		defer s.background.Done()
		cleanupOldVisitorData(context.Background(), s.store)
	}()

	c.JSON(http.StatusOK, gin.H{"message": "Privacy cleanup initiated"})
}
