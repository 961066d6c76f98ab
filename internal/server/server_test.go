package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-importer/internal/pdfparse"
	"github.com/jonathan/resume-importer/internal/server/ratelimit"
	"github.com/jonathan/resume-importer/internal/types"
)

const sampleResume = `Jane Doe
Ingeniera de software con foco en backend.
Santiago, Chile · jane@example.com · +56 9 1234 5678

EXPERIENCIA
Desarrolladora Backend - Example Corp
Ene 2020 - Presente
- Diseñé APIs REST para pagos

EDUCACIÓN
Ingeniería Civil en Computación
Universidad de Chile
2011 - 2016

HABILIDADES
Lenguajes: Go, Python, SQL
`

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newTestServer builds a server with rate limiting disabled unless cfg sets it.
func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	if cfg.RateLimit == nil {
		cfg.RateLimit = &ratelimit.Config{Enabled: false}
	}
	s := New(cfg, testLogger())
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func multipartUpload(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/parse/file", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, map[string]string{"status": "ok"}, decodeBody[map[string]string](t, rec))
}

func TestRequestID(t *testing.T) {
	s := newTestServer(t, Config{})

	t.Run("generated", func(t *testing.T) {
		rec := do(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))
		_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
		assert.NoError(t, err)
	})

	t.Run("propagated", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, id)
		rec := do(t, s, req)
		assert.Equal(t, id, rec.Header().Get(RequestIDHeader))
	})

	t.Run("invalid incoming id is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(RequestIDHeader, "not-a-uuid")
		rec := do(t, s, req)
		assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
	})
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := do(t, s, httptest.NewRequest(http.MethodOptions, "/v1/parse/text", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/v1/parse/text", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestParseText(t *testing.T) {
	s := newTestServer(t, Config{ValidateOutput: true})

	body, err := json.Marshal(ParseTextRequest{Text: sampleResume})
	require.NoError(t, err)
	rec := do(t, s, httptest.NewRequest(http.MethodPost, "/v1/parse/text", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decodeBody[types.ResumeStructure](t, rec)
	assert.Equal(t, "Jane Doe", got.Basics.Name)
	assert.Equal(t, "jane@example.com", got.Basics.Email)
	assert.Equal(t, "experience,education,skills", got.Meta.CoreOrder)
	require.Len(t, got.Experience, 1)
	assert.Equal(t, "Example Corp", got.Experience[0].Company)
}

func TestParseText_BadRequests(t *testing.T) {
	s := newTestServer(t, Config{})

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "malformed JSON", body: `{"text":`, message: "Invalid request body"},
		{name: "missing text", body: `{}`, message: "validation error: text - required"},
		{name: "empty text", body: `{"text":""}`, message: "validation error: text - required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, httptest.NewRequest(http.MethodPost, "/v1/parse/text", strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decodeBody[map[string]string](t, rec)["error"], tt.message)
		})
	}
}

func TestParseFile_Text(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := do(t, s, multipartUpload(t, "file", "cv.txt", []byte(sampleResume)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decodeBody[types.ResumeStructure](t, rec)
	assert.Equal(t, "Jane Doe", got.Basics.Name)
}

func TestParseFile_PDFUsesImporter(t *testing.T) {
	var received []byte
	s := newTestServer(t, Config{PDFParser: func(data []byte) (types.ResumeStructure, error) {
		received = data
		structure := types.DefaultStructure()
		structure.Basics.Name = "From PDF"
		return structure, nil
	}})

	rec := do(t, s, multipartUpload(t, "file", "CV.PDF", []byte("%PDF-1.4 fake")))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []byte("%PDF-1.4 fake"), received)
	assert.Equal(t, "From PDF", decodeBody[types.ResumeStructure](t, rec).Basics.Name)
}

func TestParseFile_PDFFailureReturnsDefaultStructure(t *testing.T) {
	s := newTestServer(t, Config{PDFParser: func([]byte) (types.ResumeStructure, error) {
		return types.DefaultStructure(), &pdfparse.ExtractionError{Message: "No se pudo leer el PDF", Cause: pdfparse.ErrNoText}
	}})

	rec := do(t, s, multipartUpload(t, "file", "cv.pdf", []byte("garbage")))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	got := decodeBody[ImportFailure](t, rec)
	assert.NotEmpty(t, got.Error)
	assert.Equal(t, types.DefaultCoreOrder, got.Structure.Meta.CoreOrder)
	assert.Len(t, got.Structure.Experience, 1)
}

func TestParseFile_Errors(t *testing.T) {
	s := newTestServer(t, Config{MaxUploadBytes: 1024})

	t.Run("unsupported format", func(t *testing.T) {
		rec := do(t, s, multipartUpload(t, "file", "cv.exe", []byte("MZ")))
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("missing file", func(t *testing.T) {
		rec := do(t, s, multipartUpload(t, "file", "", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "file is required", decodeBody[map[string]string](t, rec)["error"])
	})

	t.Run("wrong field name", func(t *testing.T) {
		rec := do(t, s, multipartUpload(t, "upload", "cv.txt", []byte(sampleResume)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("too large", func(t *testing.T) {
		rec := do(t, s, multipartUpload(t, "file", "cv.txt", bytes.Repeat([]byte("a"), 4096)))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("not multipart", func(t *testing.T) {
		rec := do(t, s, httptest.NewRequest(http.MethodPost, "/v1/parse/file", strings.NewReader("x")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestStructureForm(t *testing.T) {
	s := newTestServer(t, Config{ValidateOutput: true})

	form := url.Values{
		"name":           {"Jane Doe"},
		"exp_role":       {"Dev"},
		"exp_company":    {"Acme"},
		"exp_start":      {"Ene 2020"},
		"skill_category": {"Lenguajes"},
		"skill_items":    {"Go, SQL"},
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/structure/form", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := do(t, s, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decodeBody[types.ResumeStructure](t, rec)
	assert.Equal(t, "Jane Doe", got.Basics.Name)
	require.Len(t, got.Experience, 1)
	assert.Equal(t, "2020-01", got.Experience[0].Start)
	assert.Equal(t, []types.SkillGroup{{Category: "Lenguajes", Items: "Go, SQL"}}, got.Skills)
}

func TestRenderText(t *testing.T) {
	s := newTestServer(t, Config{})

	structure := types.DefaultStructure()
	structure.Basics.Name = "Jane Doe"
	structure.Experience = []types.ExperienceItem{{Role: "Dev", Company: "Acme", Start: "2020-01"}}
	body, err := json.Marshal(structure)
	require.NoError(t, err)

	rec := do(t, s, httptest.NewRequest(http.MethodPost, "/v1/render/text", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	text := decodeBody[RenderResponse](t, rec).Text
	assert.True(t, strings.HasPrefix(text, "Jane Doe"))
	assert.Contains(t, text, "Dev — Acme")
	assert.Contains(t, text, "Ene 2020 – Actualidad")

	rec = do(t, s, httptest.NewRequest(http.MethodPost, "/v1/render/text", strings.NewReader("[")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidate(t *testing.T) {
	s := newTestServer(t, Config{})

	valid, err := json.Marshal(types.DefaultStructure())
	require.NoError(t, err)

	t.Run("valid structure", func(t *testing.T) {
		rec := do(t, s, httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader(valid)))
		require.Equal(t, http.StatusOK, rec.Code)
		got := decodeBody[ValidateResponse](t, rec)
		assert.True(t, got.Valid)
		assert.Empty(t, got.Errors)
	})

	t.Run("schema violations", func(t *testing.T) {
		rec := do(t, s, httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(`{}`)))
		require.Equal(t, http.StatusOK, rec.Code)
		got := decodeBody[ValidateResponse](t, rec)
		assert.False(t, got.Valid)
		assert.NotEmpty(t, got.Errors)
	})

	t.Run("core order missing a module", func(t *testing.T) {
		structure := types.DefaultStructure()
		structure.Meta.CoreOrder = "experience,education"
		body, err := json.Marshal(structure)
		require.NoError(t, err)

		rec := do(t, s, httptest.NewRequest(http.MethodPost, "/v1/validate", bytes.NewReader(body)))
		require.Equal(t, http.StatusOK, rec.Code)
		got := decodeBody[ValidateResponse](t, rec)
		assert.False(t, got.Valid)
		require.Len(t, got.Errors, 1)
		assert.Equal(t, "(root)", got.Errors[0].Field)
	})

	t.Run("malformed JSON", func(t *testing.T) {
		rec := do(t, s, httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader("{")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, Config{RateLimit: &ratelimit.Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
	}})

	body := `{"text":"Jane Doe"}`
	first := do(t, s, httptest.NewRequest(http.MethodPost, "/v1/parse/text", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", first.Header().Get("X-RateLimit-Remaining"))

	second := do(t, s, httptest.NewRequest(http.MethodPost, "/v1/parse/text", strings.NewReader(body)))
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	got := decodeBody[map[string]any](t, second)
	assert.Equal(t, "rate_limit_exceeded", got["error"])
	assert.EqualValues(t, 1, got["limit"])

	health := do(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, health.Code)
	assert.Empty(t, health.Header().Get("X-RateLimit-Limit"))
}

func TestExtractClientID(t *testing.T) {
	s := newTestServer(t, Config{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	assert.Equal(t, "10.1.2.3", s.extractClientID(req))

	req.RemoteAddr = "unix-socket"
	assert.Equal(t, "unix-socket", s.extractClientID(req))
}
