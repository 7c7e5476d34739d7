package main

import (
	"log"
	"os"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
)

type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// Config is read once from the environment (and a .env file, if present).
type Config struct {
	Port        string
	DBPath      string
	ContentFile string
	CVPath      string
	ImagesDir   string
	AnalyticsID string

	CarouselInterval time.Duration
	SessionTTL       time.Duration
	SampleEvery      time.Duration
	MaxSessions      int
	TrackVisitors    bool

	SMTP SMTPConfig

	AdminUsername string
	AdminPassword string
}

func loadConfig() Config {
	cfg := Config{
		Port:        getenv("PORT", "8080"),
		DBPath:      getenv("DB_PATH", "portfolio.db"),
		ContentFile: os.Getenv("CONTENT_FILE"),
		CVPath:      getenv("CV_PATH", "static/CV.pdf"),
		ImagesDir:   getenv("IMAGES_DIR", "images"),
		AnalyticsID: os.Getenv("ANALYTICS_MEASUREMENT_ID"),

		CarouselInterval: getDuration("CAROUSEL_INTERVAL", 5*time.Second),
		SessionTTL:       getDuration("SESSION_TTL", 30*time.Minute),
		SampleEvery:      getDuration("PROGRESS_SAMPLE_EVERY", 100*time.Millisecond),
		MaxSessions:      getInt("MAX_SHOWCASE_SESSIONS", 1000),
		TrackVisitors:    getBool("TRACK_VISITORS", true),

		SMTP: SMTPConfig{
			Host: getenv("SMTP_HOST", "smtp.gmail.com"),
			Port: getenv("SMTP_PORT", "587"),
			User: os.Getenv("SMTP_USER"),
			Pass: os.Getenv("SMTP_PASS"),
			To:   os.Getenv("TO_EMAIL"),
		},

		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("Ignoring %s=%q: want a positive duration such as 5s", key, v)
		return fallback
	}

	return d
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		log.Printf("Ignoring %s=%q: want a whole number, 0 for no limit", key, v)
		return fallback
	}

	return n
}

func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Ignoring %s=%q: want true or false", key, v)
		return fallback
	}

	return b
}
