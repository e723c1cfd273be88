// Package analysis wires the evidence extractor, the threat classifier, and
// the content router into the end-to-end pipeline the transport layer calls.
package analysis

import (
	"context"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/casetrace/casetrace/internal/infrastructure/monitoring/logging"
	"github.com/casetrace/casetrace/internal/intelligence/ocr"
	apperrors "github.com/casetrace/casetrace/pkg/errors"
)

// Routing reject reasons, used as metric label values.
const (
	rejectOCRUnavailable = "ocr_unavailable"
	rejectNoReadableText = "no_readable_text"
)

// ContentRouter turns an uploaded payload into analyzable text.  Routing is
// decided by content sniffing, never by filename or client-declared type:
// textual payloads are decoded directly, images go through the recognition
// engine, everything else is rejected.  Whatever the route, an empty result
// is a rejection; the router never hands empty text downstream.
type ContentRouter struct {
	engine ocr.Engine
	logger logging.Logger
}

// NewContentRouter constructs a ContentRouter.  engine may be nil, which is
// treated as the null engine.
func NewContentRouter(engine ocr.Engine, logger logging.Logger) *ContentRouter {
	if engine == nil {
		engine = ocr.NewUnavailable()
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &ContentRouter{
		engine: engine,
		logger: logger.Named("router"),
	}
}

// OCRAvailable reports whether image payloads can currently be routed.
func (r *ContentRouter) OCRAvailable() bool { return r.engine.Available() }

// ExtractText routes data to the appropriate text source and returns the
// recovered text.  Errors carry the reject reason for metrics alongside the
// client-facing application error.
func (r *ContentRouter) ExtractText(ctx context.Context, filename string, data []byte) (string, string, error) {
	mtype := mimetype.Detect(data)
	detected := mtype.String()

	r.logger.Debug("content sniffed",
		logging.String("filename", filename),
		logging.String("mime", detected),
	)

	var text string
	switch {
	case strings.HasPrefix(detected, "text/") || mtype.Is("application/json"):
		// Best-effort decode: invalid byte sequences are dropped, never
		// surfaced as an error.
		text = strings.ToValidUTF8(string(data), "")

	case strings.HasPrefix(detected, "image/"):
		if !r.engine.Available() {
			return "", rejectOCRUnavailable, apperrors.OCRUnavailable()
		}
		recognized, err := r.engine.Recognize(ctx, data)
		if err != nil {
			// A failed recognition run is indistinguishable, from the
			// caller's point of view, from an image with nothing to read.
			r.logger.Warn("image recognition failed",
				logging.String("filename", filename),
				logging.Err(err),
			)
			return "", rejectNoReadableText, apperrors.NoReadableText()
		}
		text = recognized

	default:
		return "", rejectNoReadableText, apperrors.NoReadableText()
	}

	if strings.TrimSpace(text) == "" {
		return "", rejectNoReadableText, apperrors.NoReadableText()
	}

	return text, "", nil
}
