package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	flashCookieName = "probank_flash"

	FlashSuccess = "success"
	FlashDanger  = "danger"
)

// Flash is a one-shot status banner carried across a redirect
type Flash struct {
	Level   string
	Message string
}

// SetFlash stores a flash message in a short-lived cookie so it survives the
// post-redirect-get hop.
func SetFlash(c echo.Context, level, message string) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(level + "|" + message),
		Path:     "/",
		MaxAge:   int(time.Minute.Seconds()),
		HttpOnly: true,
	})
}

// PopFlash reads and clears the pending flash message, if any
func PopFlash(c echo.Context) *Flash {
	cookie, err := c.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	// Clear it: flash messages are shown exactly once.
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}

	level, message, found := strings.Cut(raw, "|")
	if !found || message == "" {
		return nil
	}

	return &Flash{Level: level, Message: message}
}
