package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Theme is the color palette handed to the templates.
type Theme struct {
	Name       string
	Primary    string
	Secondary  string
	Light      string
	Background string
	Card       string
	Text       string
	Subtext    string
}

var (
	lightTheme = Theme{
		Name:       "light",
		Primary:    "#7b2cbf",
		Secondary:  "#9d4edd",
		Light:      "#e0aaff",
		Background: "#f8f9fa",
		Card:       "#ffffff",
		Text:       "#212529",
		Subtext:    "#6c757d",
	}
	darkTheme = Theme{
		Name:       "dark",
		Primary:    "#9d4edd",
		Secondary:  "#c77dff",
		Light:      "#e0aaff",
		Background: "#10002b",
		Card:       "#240046",
		Text:       "#f8f9fa",
		Subtext:    "#ced4da",
	}
)

const themeCookie = "theme"

// themeFor picks the palette from the visitor's saved choice, falling back
// to the prefers-color-scheme client hint.
func themeFor(c *gin.Context) Theme {
	if name, err := c.Cookie(themeCookie); err == nil {
		switch name {
		case "dark":
			return darkTheme
		case "light":
			return lightTheme
		}
	}

	// Structured header: browsers send the quoted string "dark".
	if strings.Trim(c.GetHeader("Sec-CH-Prefers-Color-Scheme"), `" `) == "dark" {
		return darkTheme
	}

	return lightTheme
}

func setupThemeRoutes(r *gin.Engine) {
	r.POST("/theme", func(c *gin.Context) {
		next := darkTheme
		if themeFor(c).Name == darkTheme.Name {
			next = lightTheme
		}

		// One year.
		c.SetCookie(themeCookie, next.Name, 3600*24*365, "/", "", false, true)

		if c.GetHeader("HX-Request") == "true" {
			c.Header("HX-Refresh", "true")
			c.Status(http.StatusNoContent)
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
	})
}
