package ui

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/roach88/providers/internal/provider"
)

//go:embed templates/*.html
var tplFS embed.FS

var pageTpl = template.Must(template.ParseFS(tplFS, "templates/page.html"))

// Handler returns the HTTP surface of the presenter.
//
//	GET  /                -> form + table page
//	POST /submit          -> apply posted fields, submit the draft
//	POST /edit/{id}       -> load a provider into the draft
//	POST /delete/{id}     -> delete a provider
//	POST /reset           -> abandon the draft
//	GET  /providers.json  -> table contents as JSON, ETag from the revision
//
// Every POST answers 303 See Other back to "/" so a reload never repeats
// the intent.
func (p *Presenter) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", p.handleIndex)
	mux.HandleFunc("POST /submit", p.handleSubmit)
	mux.HandleFunc("POST /edit/{id}", p.handleEdit)
	mux.HandleFunc("POST /delete/{id}", p.handleDelete)
	mux.HandleFunc("POST /reset", p.handleReset)
	mux.HandleFunc("GET /providers.json", p.handleJSON)
	return mux
}

func (p *Presenter) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := p.View()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pageTpl.Execute(w, page); err != nil {
		p.logger.Error("render page", "error", err)
	}
}

func (p *Presenter) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	values := make(map[provider.Field]string)
	for _, f := range provider.Fields() {
		if _, ok := r.PostForm[string(f)]; ok {
			values[f] = r.PostForm.Get(string(f))
		}
	}

	// Validation failures are already queued as notifications.
	_ = p.Submit(r.Context(), values)
	backToIndex(w, r)
}

func (p *Presenter) handleEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := p.Edit(id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	backToIndex(w, r)
}

func (p *Presenter) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p.Delete(r.Context(), id)
	backToIndex(w, r)
}

func (p *Presenter) handleReset(w http.ResponseWriter, r *http.Request) {
	p.Reset()
	backToIndex(w, r)
}

func (p *Presenter) handleJSON(w http.ResponseWriter, r *http.Request) {
	records, revision := p.table()
	etag := `W/"` + strconv.FormatUint(revision, 10) + `"`
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if strings.Contains(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(records); err != nil {
		p.logger.Error("encode providers", "error", err)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "provider id must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func backToIndex(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
