package server

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/ytget/playlist-packager/internal/model"
	"github.com/ytget/playlist-packager/internal/platform"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type formData struct {
	Mode           model.Mode
	Concurrency    int
	MinConcurrency int
	MaxConcurrency int
	Modes          []model.Mode
	QualityPresets []model.QualityPreset
	AudioFormats   []model.AudioFormat
	AudioBitrates  []model.AudioBitrate
	Ceiling        string
}

type errorData struct {
	Status  int
	Kind    string
	Message string
	JobID   string
}

func (h *Handler) renderForm(w http.ResponseWriter, code int, data formData) {
	data.MinConcurrency = model.MinConcurrency
	data.MaxConcurrency = model.MaxConcurrency
	data.Modes = model.Modes
	data.QualityPresets = model.QualityPresets
	data.AudioFormats = model.AudioFormats
	data.AudioBitrates = model.AudioBitrates
	if h.ceilingBytes > 0 {
		data.Ceiling = platform.HumanBytes(h.ceilingBytes)
	}
	render(w, code, "index.html", data)
}

func renderError(w http.ResponseWriter, code int, data errorData) {
	render(w, code, "error.html", data)
}

// render executes into a buffer first so a template failure still yields a
// clean 500
func render(w http.ResponseWriter, code int, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}
