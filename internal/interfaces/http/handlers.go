// Package http exposes the analysis pipeline over a JSON HTTP API.
package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/casetrace/casetrace/internal/application/analysis"
	"github.com/casetrace/casetrace/internal/infrastructure/monitoring/logging"
	apperrors "github.com/casetrace/casetrace/pkg/errors"
)

// filePartName is the multipart form field carrying the upload.
const filePartName = "file"

// analyzeTextRequest is the body of POST /api/analyze_text.
type analyzeTextRequest struct {
	Text string `json:"text"`
}

// errorResponse is the uniform error body for all endpoints.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeError maps any error to its HTTP status and uniform body.
func writeError(c *gin.Context, err error) {
	var ae *apperrors.AppError
	if !errors.As(err, &ae) {
		ae = apperrors.Internal("internal server error")
	}
	c.AbortWithStatusJSON(apperrors.HTTPStatusForCode(ae.Code), errorResponse{
		Error: ae.Message,
		Code:  ae.Code.String(),
	})
}

// Handler carries the endpoint implementations.
type Handler struct {
	service *analysis.Service
	logger  logging.Logger
}

// NewHandler constructs a Handler.
func NewHandler(service *analysis.Service, logger logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Handler{
		service: service,
		logger:  logger.Named("http"),
	}
}

// AnalyzeText handles POST /api/analyze_text.  A missing body, a body that
// is not JSON, and a blank text field are all the same condition from the
// caller's point of view: no text was provided.
func (h *Handler) AnalyzeText(c *gin.Context) {
	var req analyzeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.EmptyInput().WithCause(err))
		return
	}

	result, err := h.service.AnalyzeText(c.Request.Context(), req.Text)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// AnalyzeFile handles POST /api/analyze_file.  The upload must arrive in the
// "file" multipart field; routing decisions are made on content, never on
// the declared type or filename.
func (h *Handler) AnalyzeFile(c *gin.Context) {
	fileHeader, err := c.FormFile(filePartName)
	if err != nil {
		writeError(c, apperrors.NoFilePart().WithCause(err))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		writeError(c, apperrors.Internal("failed to open upload").WithCause(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(c, apperrors.Internal("failed to read upload").WithCause(err))
		return
	}

	result, err := h.service.AnalyzeFile(c.Request.Context(), fileHeader.Filename, data)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Health handles GET /api/health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Health())
}
