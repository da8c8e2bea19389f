package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/internal/extraction/domain"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/internal/extraction/service"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/pkg/httputil"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/pkg/logger"
)

// ExtractPath is the route of the extraction endpoint
const ExtractPath = "/api/extract_seal_stamp_data__from_image"

const maxBodySize = 1 << 20 // 1MB

// Handler handles HTTP requests for seal/stamp extraction
type Handler struct {
	service *service.Service
	log     *logger.Logger
}

// NewHandler creates a new extraction handler
func NewHandler(svc *service.Service, log *logger.Logger) *Handler {
	return &Handler{
		service: svc,
		log:     log,
	}
}

// Routes registers the extraction endpoint on r
func (h *Handler) Routes(r chi.Router) {
	r.Post(ExtractPath, h.Extract)
}

// Extract handles POST /api/extract_seal_stamp_data__from_image
// Accepts a JSON body {"file_path": "..."} naming an image on the server's
// filesystem. The HTTP status is always 200; the outcome is carried in the
// body's status and statusCode (or stratusCode) fields.
func (h *Handler) Extract(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.log.Error().
				Interface("panic", rec).
				Str("request_id", httputil.GetRequestID(r.Context())).
				Msg("extraction panicked")
			httputil.JSON(w, http.StatusOK, domain.NewRequestError(fmt.Sprint(rec)))
		}
	}()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req domain.ExtractionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.JSON(w, http.StatusOK, domain.NewRequestError(domain.MessageInvalidRequest))
		return
	}

	if err := httputil.Validate(&req); err != nil {
		httputil.JSON(w, http.StatusOK, domain.NewRequestError(domain.MessageEmptyFilePath))
		return
	}

	result := h.service.Extract(r.Context(), req.FilePath)
	httputil.JSON(w, http.StatusOK, result)
}
