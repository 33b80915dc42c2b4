package httpapi

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{
	"login.html",
	"products_list.html",
	"restaurants_list.html",
	"order_items.html",
}

// templateSet parses every page together with base.html once, on first use.
type templateSet struct {
	once  sync.Once
	pages map[string]*template.Template
	err   error
}

func (s *templateSet) load() {
	s.pages = make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.New(page).ParseFS(templateFS, "templates/base.html", "templates/"+page)
		if err != nil {
			s.err = fmt.Errorf("parse %s: %w", page, err)
			return
		}
		s.pages[page] = tmpl
	}
}

func (s *templateSet) render(w http.ResponseWriter, status int, page string, data map[string]interface{}) error {
	s.once.Do(s.load)
	if s.err != nil {
		http.Error(w, s.err.Error(), http.StatusInternalServerError)
		return s.err
	}

	tmpl, ok := s.pages[page]
	if !ok {
		err := fmt.Errorf("unknown page %s", page)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
