package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ytget/playlist-packager/internal/logging"
	"github.com/ytget/playlist-packager/internal/model"
	"github.com/ytget/playlist-packager/internal/platform"
)

// Response headers describing a delivered archive
const (
	HeaderJobID          = "X-Job-Id"
	HeaderFilesProduced  = "X-Files-Produced"
	HeaderItemsRequested = "X-Items-Requested"
)

// Runner runs one packaging job
type Runner interface {
	Run(ctx context.Context, req model.DownloadRequest, progress model.ProgressReporter) model.JobResult
}

// DependencyChecker reports the availability of external tools
type DependencyChecker func() []platform.Status

// Handler serves the web form, the download endpoint and the health check
type Handler struct {
	runner             Runner
	checkDeps          DependencyChecker
	defaultConcurrency int
	ceilingBytes       int64
	logger             zerolog.Logger
}

// HandlerOptions configures a Handler
type HandlerOptions struct {
	DefaultConcurrency int
	CeilingBytes       int64 // shown on the form
	CheckDeps          DependencyChecker
}

// NewHandler creates the HTTP handlers
func NewHandler(runner Runner, opts HandlerOptions, logger zerolog.Logger) *Handler {
	concurrency := opts.DefaultConcurrency
	if concurrency < model.MinConcurrency || concurrency > model.MaxConcurrency {
		concurrency = model.DefaultConcurrency
	}
	checkDeps := opts.CheckDeps
	if checkDeps == nil {
		checkDeps = func() []platform.Status {
			return platform.CheckBinaries(platform.Requirements("", ""))
		}
	}
	return &Handler{
		runner:             runner,
		checkDeps:          checkDeps,
		defaultConcurrency: concurrency,
		ceilingBytes:       opts.CeilingBytes,
		logger:             logger.With().Str("component", "http").Logger(),
	}
}

// Index renders the submission form
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, http.StatusOK, formData{
		Mode:        model.ModeVideo,
		Concurrency: h.defaultConcurrency,
	})
}

// Download runs the pipeline for the submitted form and streams the archive back
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseRequest(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.KindInvalidRequest.String(), err.Error(), "")
		return
	}

	logger := h.logger.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()
	result := h.runner.Run(r.Context(), req, logging.NewProgressLogger(logger))

	if !result.Status.IsSuccess() {
		kind := model.KindOf(result.Err)
		writeError(w, r, StatusForKind(kind), kind.String(), result.Message, result.JobID)
		return
	}

	header := w.Header()
	header.Set("Content-Type", model.ArchiveMIMEType)
	header.Set("Content-Disposition", `attachment; filename="`+model.ArchiveFileName+`"`)
	header.Set("Content-Length", strconv.Itoa(len(result.Payload)))
	header.Set(HeaderJobID, result.JobID)
	header.Set(HeaderFilesProduced, strconv.Itoa(result.Files))
	if result.Requested > 0 {
		header.Set(HeaderItemsRequested, strconv.Itoa(result.Requested))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.Payload); err != nil {
		logger.Warn().Err(err).Str("job_id", result.JobID).Msg("client went away during transfer")
	}
}

type dependencyStatus struct {
	Name      string `json:"name"`
	Command   string `json:"command"`
	Available bool   `json:"available"`
	Optional  bool   `json:"optional"`
	Path      string `json:"path,omitempty"`
	Detail    string `json:"detail,omitempty"`
}

// Health reports whether the required external tools are installed. A missing
// required tool makes the service unhealthy because every job would fail.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	statuses := h.checkDeps()
	deps := make([]dependencyStatus, 0, len(statuses))
	healthy := true
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			healthy = false
		}
		deps = append(deps, dependencyStatus{
			Name:      s.Name,
			Command:   s.Command,
			Available: s.Available,
			Optional:  s.Optional,
			Path:      s.Path,
			Detail:    s.Detail,
		})
	}

	status, code := "ok", http.StatusOK
	if !healthy {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]any{"status": status, "dependencies": deps})
}

// parseRequest maps form values onto a normalized DownloadRequest. Fields of
// the mode that was not chosen are dropped, as the form always submits both.
func (h *Handler) parseRequest(r *http.Request) (model.DownloadRequest, error) {
	if err := r.ParseForm(); err != nil {
		return model.DownloadRequest{}, fmt.Errorf("%w: %v", model.ErrInvalidRequest, err)
	}

	mode, err := model.ParseMode(r.PostFormValue("mode"))
	if err != nil {
		return model.DownloadRequest{}, err
	}

	req := model.DownloadRequest{
		URL:  r.PostFormValue("url"),
		Mode: mode,
	}

	switch mode {
	case model.ModeVideo:
		if q := strings.TrimSpace(r.PostFormValue("quality")); q != "" {
			if req.Quality, err = model.ParseQualityPreset(q); err != nil {
				return model.DownloadRequest{}, err
			}
		}
	case model.ModeAudio:
		req.AudioFormat = model.AudioFormat(strings.ToLower(strings.TrimSpace(r.PostFormValue("format"))))
		req.AudioBitrate = model.AudioBitrate(strings.ToLower(strings.TrimSpace(r.PostFormValue("bitrate"))))
	}

	if req.Limit, err = formInt(r, "limit", 0); err != nil {
		return model.DownloadRequest{}, err
	}
	if req.Concurrency, err = formInt(r, "concurrency", h.defaultConcurrency); err != nil {
		return model.DownloadRequest{}, err
	}

	req = req.Normalize()
	if err := req.Validate(); err != nil {
		return model.DownloadRequest{}, err
	}
	return req, nil
}

func formInt(r *http.Request, key string, fallback int) (int, error) {
	v := strings.TrimSpace(r.PostFormValue(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a whole number", model.ErrInvalidRequest, key)
	}
	return n, nil
}

// StatusForKind maps a failure kind to the HTTP status returned to clients
func StatusForKind(kind model.ErrorKind) int {
	switch kind {
	case model.KindInvalidRequest:
		return http.StatusBadRequest
	case model.KindTooLarge:
		return http.StatusRequestEntityTooLarge
	case model.KindMissingDependency:
		return http.StatusServiceUnavailable
	case model.KindDownloadEngine:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
	JobID string `json:"job_id,omitempty"`
}

// writeError answers with JSON when the client asks for it and with the error
// page otherwise
func writeError(w http.ResponseWriter, r *http.Request, code int, kind, message, jobID string) {
	if wantsJSON(r) {
		var body errorBody
		body.Error.Kind = kind
		body.Error.Message = message
		body.JobID = jobID
		writeJSON(w, code, body)
		return
	}
	renderError(w, code, errorData{Status: code, Kind: kind, Message: message, JobID: jobID})
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
