package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/smtp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Edgar-mwila/portfolio/internal/store"
)

//go:generate mockgen -destination "mock_mailer_test.go" -package main -write_package_comment=false . Mailer

// Mailer delivers contact form messages to the site owner.
type Mailer interface {
	Send(ctx context.Context, m store.Message) error
}

var errMailNotConfigured = errors.New("SMTP credentials not configured")

type smtpMailer struct {
	cfg      SMTPConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func newSMTPMailer(cfg SMTPConfig) *smtpMailer {
	return &smtpMailer{cfg: cfg, sendMail: smtp.SendMail}
}

func (m *smtpMailer) Send(ctx context.Context, msg store.Message) error {
	if m.cfg.User == "" || m.cfg.Pass == "" {
		return errMailNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	err := m.sendMail(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.User, []string{m.cfg.To}, composeMail(m.cfg, msg))
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	return nil
}

// composeMail builds the RFC 5322 message. Header values are stripped of
// line breaks so form input cannot inject headers.
func composeMail(cfg SMTPConfig, msg store.Message) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", msg.Name)
	if msg.Subject != "" {
		subject += " - " + msg.Subject
	}

	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Subject: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Subject, msg.Body)

	return []byte("To: " + headerValue(cfg.To) + "\r\n" +
		"Subject: " + headerValue(subject) + "\r\n" +
		"From: " + headerValue(cfg.User) + "\r\n" +
		"Reply-To: " + headerValue(msg.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

func headerValue(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}

type contactForm struct {
	Name    string `form:"name" binding:"required,max=100"`
	Email   string `form:"email" binding:"required,email,max=254"`
	Subject string `form:"subject" binding:"max=200"`
	Message string `form:"message" binding:"required,max=5000"`
}

func (s *server) setupContactRoutes(r *gin.Engine) {
	// HTMX contact form endpoint - returns just the form HTML
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Send Me a Message",
			"theme": themeFor(c),
		})
	})

	r.POST("/contact", s.handleContact)
}

func (s *server) handleContact(c *gin.Context) {
	var form contactForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please fill in your name, a valid email address and a message.",
		})
		return
	}

	msg := store.Message{
		Name:      strings.TrimSpace(form.Name),
		Email:     strings.TrimSpace(form.Email),
		Subject:   strings.TrimSpace(form.Subject),
		Body:      strings.TrimSpace(form.Message),
		CreatedAt: time.Now(),
	}
	if err := s.store.SaveMessage(c.Request.Context(), &msg); err != nil {
		log.Printf("Error saving contact message: %v", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	err := s.mailer.Send(c.Request.Context(), msg)
	switch {
	case errors.Is(err, errMailNotConfigured):
		log.Printf("Contact message %d stored; mail delivery is not configured", msg.ID)
	case err != nil:
		log.Printf("Error sending contact message %d: %v", msg.ID, err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	default:
		if err := s.store.MarkMessageSent(c.Request.Context(), msg.ID); err != nil {
			log.Printf("Error marking contact message %d sent: %v", msg.ID, err)
		}
		log.Printf("Contact message %d mailed for %s", msg.ID, hashIP(s.salt, c.ClientIP()))
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
