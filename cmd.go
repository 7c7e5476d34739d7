package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/Edgar-mwila/portfolio/internal/content"
	"github.com/Edgar-mwila/portfolio/internal/showcase"
	"github.com/Edgar-mwila/portfolio/internal/store"
)

var (
	flagPort    string
	flagContent string
	flagImages  string
	flagOpen    bool
)

// rootCmd serves the site when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Personal portfolio website with a project showcase and contact form.",
	RunE:  runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the portfolio over HTTP.",
	RunE:  runServe,
}

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Print the effective site content as YAML.",
	Long: `Print the effective site content as YAML. The output is a valid ` +
		`CONTENT_FILE and is a good starting point for customising the site.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		site, err := loadSite(applyFlags(loadConfig()))
		if err != nil {
			return err
		}

		data, err := content.Encode(site)
		if err != nil {
			return err
		}

		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete visitor records older than 12 months.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := store.Open(loadConfig().DBPath)
		if err != nil {
			return err
		}
		atexit.Register(func() { st.Close() })

		cleanupOldVisitorData(cmd.Context(), st)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagContent, "content", "", "YAML content file (overrides CONTENT_FILE)")
	rootCmd.PersistentFlags().StringVar(&flagImages, "images", "", "directory served at /images (overrides IMAGES_DIR)")
	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		cmd.Flags().StringVarP(&flagPort, "port", "p", "", "port to listen on (overrides PORT)")
		cmd.Flags().BoolVar(&flagOpen, "open", false, "open the site in a browser once it is listening")
	}

	rootCmd.AddCommand(serveCmd, contentCmd, cleanupCmd)
}

// Execute runs the CLI and the registered exit hooks.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func applyFlags(cfg Config) Config {
	if flagPort != "" {
		cfg.Port = flagPort
	}
	if flagContent != "" {
		cfg.ContentFile = flagContent
	}
	if flagImages != "" {
		cfg.ImagesDir = flagImages
	}
	return cfg
}

// loadSite returns the built-in copy, overridden by the content file when
// one is configured.
func loadSite(cfg Config) (content.Portfolio, error) {
	site := defaultPortfolio()
	if cfg.ContentFile == "" {
		return site, nil
	}

	site, err := content.Load(cfg.ContentFile, site)
	if err != nil {
		return content.Portfolio{}, fmt.Errorf("content file %s: %w", cfg.ContentFile, err)
	}

	return site, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := applyFlags(loadConfig())

	site, err := loadSite(cfg)
	if err != nil {
		return err
	}
	if cfg.SMTP.To == "" {
		cfg.SMTP.To = site.Profile.Email
	}
	if _, err := os.Stat(cfg.ImagesDir); err != nil {
		log.Printf("Images directory %q is not readable (%v); project images will 404. Set IMAGES_DIR or --images.", cfg.ImagesDir, err)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}

	sessions := showcase.NewRegistry(cfg.CarouselInterval, cfg.SessionTTL,
		showcase.WithMaxSessions(cfg.MaxSessions))
	srv := newServer(cfg, site, st, newSMTPMailer(cfg.SMTP), sessions)

	// Hooks run last-registered first: drain the server, then the database.
	atexit.Register(func() {
		if err := st.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	})
	atexit.Register(srv.close)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sessions.Run(ctx, time.Minute)
	go cleanupOldVisitorData(ctx, st)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Listening on http://localhost:%s", cfg.Port)
		errCh <- httpServer.ListenAndServe()
	}()

	if flagOpen {
		if err := browser.OpenURL("http://localhost:" + cfg.Port); err != nil {
			log.Printf("Could not open a browser: %v", err)
		}
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
	case <-ctx.Done():
		log.Println("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Carousels end open event streams, so close them before draining.
	sessions.Shutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
