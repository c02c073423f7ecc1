package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	archiveMocks "github.com/herinqueoliveira/Teste-Wiki/internal/archive/mocks"
	"github.com/herinqueoliveira/Teste-Wiki/internal/convert"
	"github.com/herinqueoliveira/Teste-Wiki/internal/model"
	"github.com/herinqueoliveira/Teste-Wiki/internal/service"
	serviceMocks "github.com/herinqueoliveira/Teste-Wiki/internal/service/mocks"
)

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "DB_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListDocuments(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/api/docs", ListDocuments(mockSvc))

	t.Run("success", func(t *testing.T) {
		previews := []model.DocumentPreview{{ID: 1, Title: "notes", Kind: "markdown"}}
		mockSvc.On("Search", mock.Anything, "").Return(previews, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/docs", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result []model.DocumentPreview
		json.NewDecoder(resp.Body).Decode(&result)
		require.Len(t, result, 1)
		assert.Equal(t, "notes", result[0].Title)
		mockSvc.AssertExpectations(t)
	})

	t.Run("query forwarded", func(t *testing.T) {
		mockSvc.On("Search", mock.Anything, "budget").Return([]model.DocumentPreview{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/docs?q=budget", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Search", mock.Anything, "").Return(nil, service.ErrStorageUnavailable).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/docs", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/api/docs/:id", GetDocument(mockSvc, convert.NewSanitizer()))

	t.Run("success sanitizes html on the way out", func(t *testing.T) {
		stored := &model.Document{
			ID:    3,
			Title: "notes",
			Kind:  "markdown",
			HTML:  `<div class="md"><script>steal()</script><p>hi</p></div>`,
		}
		mockSvc.On("Get", mock.Anything, int64(3)).Return(stored, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/docs/3", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var doc model.Document
		json.NewDecoder(resp.Body).Decode(&doc)
		assert.NotContains(t, doc.HTML, "<script")
		assert.Contains(t, doc.HTML, "<p>hi</p>")
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/docs/abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INVALID_ID", body.Error.Code)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(99)).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/docs/99", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "NOT_FOUND", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestCreateDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/api/docs", CreateDocument(mockSvc))

	t.Run("created", func(t *testing.T) {
		stored := &model.Document{ID: 1, Title: "notes", Kind: "markdown", HTML: "<div class=\"md\"></div>"}
		mockSvc.On("Create", mock.Anything, "notes", "markdown", "<div class=\"md\"></div>").
			Return(stored, nil).Once()

		body := `{"title":"notes","type":"markdown","html":"<div class=\"md\"></div>"}`
		req := httptest.NewRequest(http.MethodPost, "/api/docs", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var doc model.Document
		json.NewDecoder(resp.Body).Decode(&doc)
		assert.Equal(t, int64(1), doc.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/docs", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("validation failure", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, "", "markdown", "x").
			Return(nil, service.ErrInvalidDocument).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/docs",
			strings.NewReader(`{"title":"","type":"markdown","html":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestUpdateDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Put("/api/docs/:id", UpdateDocument(mockSvc))

	t.Run("updated", func(t *testing.T) {
		title := "renamed"
		updated := &model.Document{ID: 4, Title: title}
		mockSvc.On("Update", mock.Anything, int64(4), mock.MatchedBy(func(in service.UpdateDocumentInput) bool {
			return in.Title != nil && *in.Title == title && in.Kind == nil && in.HTML == nil
		})).Return(updated, nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/docs/4", strings.NewReader(`{"title":"renamed"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, int64(99), mock.Anything).
			Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPut, "/api/docs/99", strings.NewReader(`{"title":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestDeleteDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Delete("/api/docs/:id", DeleteDocument(mockSvc))

	t.Run("deleted", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(5)).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/docs/5", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("already gone", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(5)).Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/docs/5", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

// buildMultipart assembles a multipart body with one part per filename under
// the "files" field.
func buildMultipart(t *testing.T, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := w.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadDocuments(t *testing.T) {
	t.Run("mixed batch continues past failures", func(t *testing.T) {
		mockIng := new(serviceMocks.MockIngestService)
		app := fiber.New()
		app.Post("/api/docs/upload", UploadDocuments(mockIng))

		stored := &model.Document{ID: 1, Title: "good", Kind: "markdown"}
		mockIng.On("Ingest", mock.Anything, "good.md", mock.Anything, mock.Anything, mock.Anything).
			Return(stored, nil).Once()
		mockIng.On("Ingest", mock.Anything, "bad.exe", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &convert.Error{Filename: "bad.exe", Err: convert.ErrUnsupportedFormat}).Once()

		body, contentType := buildMultipart(t, map[string]string{
			"good.md": "# hi",
			"bad.exe": "binary",
		})
		req := httptest.NewRequest(http.MethodPost, "/api/docs/upload", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result uploadResponse
		json.NewDecoder(resp.Body).Decode(&result)
		require.Len(t, result.Results, 2)

		byName := map[string]uploadResult{}
		for _, r := range result.Results {
			byName[r.Filename] = r
		}
		require.NotNil(t, byName["good.md"].Document)
		assert.Equal(t, int64(1), byName["good.md"].Document.ID)
		require.NotNil(t, byName["bad.exe"].Error)
		assert.Equal(t, "UNSUPPORTED_FORMAT", byName["bad.exe"].Error.Code)
		mockIng.AssertExpectations(t)
	})

	t.Run("all files failing yields 400", func(t *testing.T) {
		mockIng := new(serviceMocks.MockIngestService)
		app := fiber.New()
		app.Post("/api/docs/upload", UploadDocuments(mockIng))

		mockIng.On("Ingest", mock.Anything, "huge.pdf", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, &convert.Error{Filename: "huge.pdf", Err: convert.ErrTooManyPages}).Once()

		body, contentType := buildMultipart(t, map[string]string{"huge.pdf": "x"})
		req := httptest.NewRequest(http.MethodPost, "/api/docs/upload", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var result uploadResponse
		json.NewDecoder(resp.Body).Decode(&result)
		require.Len(t, result.Results, 1)
		assert.Equal(t, "TOO_MANY_PAGES", result.Results[0].Error.Code)
		mockIng.AssertExpectations(t)
	})

	t.Run("empty form rejected", func(t *testing.T) {
		mockIng := new(serviceMocks.MockIngestService)
		app := fiber.New()
		app.Post("/api/docs/upload", UploadDocuments(mockIng))

		body, contentType := buildMultipart(t, nil)
		req := httptest.NewRequest(http.MethodPost, "/api/docs/upload", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockIng.AssertNotCalled(t, "Ingest")
	})
}

func TestGetDocumentSource(t *testing.T) {
	t.Run("streams the archived source", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockDocumentService)
		mockArc := new(archiveMocks.MockArchive)
		app := fiber.New()
		app.Get("/api/docs/:id/source", GetDocumentSource(mockSvc, mockArc))

		stored := &model.Document{ID: 8, Kind: "markdown"}
		mockSvc.On("Get", mock.Anything, int64(8)).Return(stored, nil).Once()
		mockArc.On("Fetch", mock.Anything, int64(8), "markdown").
			Return(io.NopCloser(strings.NewReader("# original")), nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/docs/8/source", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/markdown", resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "8.md")

		raw, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "# original", string(raw))
		mockSvc.AssertExpectations(t)
		mockArc.AssertExpectations(t)
	})

	t.Run("no archive configured", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockDocumentService)
		app := fiber.New()
		app.Get("/api/docs/:id/source", GetDocumentSource(mockSvc, nil))

		req := httptest.NewRequest(http.MethodGet, "/api/docs/8/source", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertNotCalled(t, "Get")
	})

	t.Run("source missing from archive", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockDocumentService)
		mockArc := new(archiveMocks.MockArchive)
		app := fiber.New()
		app.Get("/api/docs/:id/source", GetDocumentSource(mockSvc, mockArc))

		stored := &model.Document{ID: 8, Kind: "pdf"}
		mockSvc.On("Get", mock.Anything, int64(8)).Return(stored, nil).Once()
		mockArc.On("Fetch", mock.Anything, int64(8), "pdf").
			Return(nil, errors.New("object not found")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/docs/8/source", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("unexpected")
	})

	t.Run("unknown route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "NOT_FOUND", body.Error.Code)
	})

	t.Run("unexpected error is opaque", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/boom", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
		assert.NotContains(t, body.Error.Message, "unexpected")
	})
}
