package handlers

import (
	"net/http"
	"net/url"
	"strings"
)

const flashCookie = "flash"

// Flash is a one-shot message shown on the next rendered page
type Flash struct {
	Kind    string // success or error
	Message string
}

func setFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(kind + "|" + message),
		Path:     "/",
		HttpOnly: true,
	})
}

// popFlash reads the flash cookie and expires it
func popFlash(w http.ResponseWriter, r *http.Request) *Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return nil
	}
	kind, message, ok := strings.Cut(raw, "|")
	if !ok {
		return nil
	}
	return &Flash{Kind: kind, Message: message}
}
