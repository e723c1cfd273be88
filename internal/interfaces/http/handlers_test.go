package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casetrace/casetrace/internal/application/analysis"
	"github.com/casetrace/casetrace/internal/config"
	"github.com/casetrace/casetrace/internal/domain/evidence"
	"github.com/casetrace/casetrace/internal/intelligence/ner"
	"github.com/casetrace/casetrace/internal/intelligence/ocr"
	"github.com/casetrace/casetrace/internal/intelligence/textclass"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	cfg := config.NewDefaultConfig()
	cfg.Server.Mode = "test"
	cfg.Metrics.Enabled = false

	service := analysis.NewService(analysis.Deps{
		Extractor:    evidence.NewExtractor(evidence.NewLibrary(), ner.NewLexiconTagger(nil), nil),
		Classifier:   textclass.NewClassifier(nil),
		Router:       analysis.NewContentRouter(ocr.NewUnavailable(), nil),
		TaggerActive: true,
	})

	return NewRouter(RouterDeps{Config: cfg, Service: service})
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyzeTextEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/api/analyze_text", `{"text": "hello@test.com owes $500"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var result analysis.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.NotEmpty(t, result.RequestID)
	assert.Equal(t, 2, result.PriorityScore)
	assert.Equal(t, []string{"hello@test.com"}, result.Evidence.Emails)
	assert.Equal(t, "Found 0 named entities and 2 high-value hits", result.Summary)
}

func TestAnalyzeTextRejectsEmptyText(t *testing.T) {
	router := newTestRouter(t)

	for _, body := range []string{`{"text": ""}`, `{"text": "   "}`, `{}`} {
		w := postJSON(t, router, "/api/analyze_text", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "no text provided", resp["error"], body)
		assert.Equal(t, "ANL_001", resp["code"], body)
	}
}

func TestAnalyzeTextRejectsMalformedBody(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/api/analyze_text", `not json at all`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ANL_001", resp["code"])
}

func TestAnalyzeFileEndpoint(t *testing.T) {
	router := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "note.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("wire $900 to account 12-3456-7890"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze_file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result analysis.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, []string{"$900"}, result.Evidence.Money)
}

func TestAnalyzeFileRequiresFilePart(t *testing.T) {
	router := newTestRouter(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("other", "value"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze_file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "no file part", resp["error"])
	assert.Equal(t, "ROUTE_001", resp["code"])
}

func TestAnalyzeFileRejectsImageWithoutOCR(t *testing.T) {
	router := newTestRouter(t)

	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "scan.png")
	require.NoError(t, err)
	_, err = part.Write(png)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/analyze_file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "OCR not available", resp["error"])
	assert.Equal(t, "ROUTE_002", resp["code"])
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var health analysis.Health
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.True(t, health.ModelLoaded)
	assert.False(t, health.ClassifierLoaded)
	assert.False(t, health.OCRAvailable)
}

func TestRequestIDHeaderIsEchoed(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "fixed-id", w.Header().Get("X-Request-ID"))
}

func TestCORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/analyze_text", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
