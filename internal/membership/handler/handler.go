// Package handler is the thin HTTP layer for membership registration. It
// decodes the multipart form, stages the photo upload, and delegates to the
// submission pipeline; business logic stays out of here.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"adhesion/internal/membership/models"
	"adhesion/internal/membership/service"
	"adhesion/internal/platform/middleware"
)

const maxFormMemory = 32 << 20

// Submitter runs the submission pipeline.
type Submitter interface {
	Submit(ctx context.Context, m models.Member) (service.Result, error)
}

// Handler serves the membership API.
type Handler struct {
	svc        Submitter
	uploadsDir string
	infosPath  string
	log        *slog.Logger
	health     func(ctx context.Context) error
}

// Option configures optional Handler collaborators.
type Option func(*Handler)

// WithHealthCheck wires a numbering-backend connectivity check into
// GET /healthz. Without it the route reports ok unconditionally.
func WithHealthCheck(check func(ctx context.Context) error) Option {
	return func(h *Handler) { h.health = check }
}

// New creates a membership Handler.
func New(svc Submitter, uploadsDir, infosPath string, log *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		svc:        svc,
		uploadsDir: uploadsDir,
		infosPath:  infosPath,
		log:        log,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the membership routes on the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/membership", h.handleSubmit)
	r.Get("/api/infos", h.handleInfos)
	r.Get("/healthz", h.handleHealth)
}

// submitResponse is the membership route envelope. The route answers 200
// for internal failures too, signaling them via Success; existing clients
// depend on that contract.
type submitResponse struct {
	Success    bool    `json:"success"`
	Numero     string  `json:"numero"`
	PaymentURL *string `json:"paymentUrl"`
}

type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		h.log.WarnContext(ctx, "invalid multipart form", "request_id", requestID, "error", err)
		h.writeFailure(w, "Formulaire invalide")
		return
	}

	m := models.FromForm(r.MultipartForm.Value)

	photoPath, err := h.stagePhoto(r)
	if err != nil {
		h.log.ErrorContext(ctx, "photo upload failed", "request_id", requestID, "error", err)
		h.writeFailure(w, "Erreur serveur")
		return
	}
	m.PhotoPath = photoPath

	result, err := h.svc.Submit(ctx, m)
	if err != nil {
		h.log.ErrorContext(ctx, "submission failed", "request_id", requestID, "error", err)
		h.writeFailure(w, "Erreur serveur")
		return
	}

	resp := submitResponse{Success: true, Numero: result.Numero}
	if result.PaymentURL != "" {
		resp.PaymentURL = &result.PaymentURL
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// stagePhoto copies the optional photo upload into the uploads area under a
// random name, keeping the original extension for image-type detection.
// Returns "" when no photo was submitted.
func (h *Handler) stagePhoto(r *http.Request) (string, error) {
	file, header, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read photo field: %w", err)
	}
	defer file.Close()

	if err := os.MkdirAll(h.uploadsDir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}
	path := filepath.Join(h.uploadsDir, uuid.NewString()+stagedExt(header))
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create staged photo: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write staged photo: %w", err)
	}
	return path, nil
}

func stagedExt(header *multipart.FileHeader) string {
	return strings.ToLower(filepath.Ext(header.Filename))
}

func (h *Handler) handleInfos(w http.ResponseWriter, r *http.Request) {
	raw, err := os.ReadFile(h.infosPath)
	if err != nil {
		h.log.ErrorContext(r.Context(), "infos file unreadable", "path", h.infosPath, "error", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "Impossible de charger les infos",
		})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health(r.Context()); err != nil {
			h.log.ErrorContext(r.Context(), "health check failed", "error", err)
			h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeFailure(w http.ResponseWriter, message string) {
	h.writeJSON(w, http.StatusOK, failureResponse{Success: false, Message: message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
