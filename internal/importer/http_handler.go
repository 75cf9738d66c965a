package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rpattn/clubsync/internal/auth"
	"github.com/rpattn/clubsync/pkg/apierror"

	"github.com/go-chi/chi/v5"
)

// Transport-layer ceiling on upload size. Call sites documenting the nominal
// guidance should quote 5 MiB; the hard limit is enforced here.
const DefaultMaxUploadBytes = 20 << 20

// Handler exposes the import pipeline as an HTTP endpoint family, one route
// per upload format with the entity type as a URL parameter.
type Handler struct {
	service        *Service
	maxUploadBytes int64
}

// NewHTTPHandler wraps the service with the upload routes.
func NewHTTPHandler(service *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{service: service, maxUploadBytes: maxUploadBytes}
}

// Routes mounts the upload endpoint family and the audit listing.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/upload-csv/{entityType}", h.upload(FormatCSV))
	r.Post("/upload-json/{entityType}", h.upload(FormatJSON))
	r.Post("/upload-xlsx/{entityType}", h.upload(FormatXLSX))
	r.Get("/import-history", h.listHistory)
	r.Get("/import-summary", h.summary)
	return r
}

func (h *Handler) upload(format Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			apierror.Write(w, apierror.Unauthorized(""))
			return
		}

		slug := chi.URLParam(r, "entityType")
		entityType, ok := EntityTypeFromSlug(slug)
		if !ok {
			apierror.Write(w, apierror.BadRequest(fmt.Sprintf("unknown entity type %q", slug)))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
		if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
			apierror.Write(w, apierror.BadRequest(fmt.Sprintf("invalid form data: %v", err)))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			apierror.Write(w, apierror.BadRequest(fmt.Sprintf("file required: %v", err)))
			return
		}
		defer file.Close()

		payload, err := io.ReadAll(file)
		if err != nil {
			apierror.Write(w, apierror.BadRequest(fmt.Sprintf("failed to read file: %v", err)))
			return
		}

		result, err := h.service.Process(r.Context(), Request{
			UploaderID: userID,
			FileName:   header.Filename,
			Format:     format,
			EntityType: entityType,
			Payload:    payload,
		})
		if err != nil {
			apierror.Write(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"message": fmt.Sprintf("imported %d records into %s", result.RecordsProcessed, slug),
			"data":    result,
		})
	}
}

func (h *Handler) listHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		apierror.Write(w, apierror.Unauthorized(""))
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	entries, err := h.service.History(r.Context(), userID, limit, offset)
	if err != nil {
		apierror.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": entries})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		apierror.Write(w, apierror.Unauthorized(""))
		return
	}

	summary, err := h.service.Summary(r.Context(), userID)
	if err != nil {
		apierror.Write(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": summary})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
