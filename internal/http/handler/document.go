package handler

import (
	"database/sql"
	"encoding/json"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/herinqueoliveira/Teste-Wiki/internal/archive"
	"github.com/herinqueoliveira/Teste-Wiki/internal/convert"
	"github.com/herinqueoliveira/Teste-Wiki/internal/model"
	"github.com/herinqueoliveira/Teste-Wiki/internal/service"
)

// createDocumentRequest is the JSON body for creating a document directly,
// bypassing file conversion.
type createDocumentRequest struct {
	Title string `json:"title"`
	Kind  string `json:"type"`
	HTML  string `json:"html"`
}

// uploadResult reports the outcome of one file in a batch upload.
type uploadResult struct {
	Filename string          `json:"filename"`
	Document *model.Document `json:"document,omitempty"`
	Error    *errorEnvelope  `json:"error,omitempty"`
}

type uploadResponse struct {
	Results []uploadResult `json:"results"`
}

// parseID reads the :id route parameter as a positive integer.
func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// HealthCheck verifies database connectivity.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := db.PingContext(c.UserContext()); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "DB_UNAVAILABLE", "database unreachable")
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

// LivenessProbe reports the process is up, without touching dependencies.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

// ListDocuments returns document previews, newest first. An optional ?q=
// filters by case-insensitive substring match on title and preview html.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		previews, err := svc.Search(c.UserContext(), c.Query("q"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(previews)
	}
}

// GetDocument returns the full document. The stored html is sanitized on the
// way out so the browser only ever receives markup that passed the gate.
func GetDocument(svc service.DocumentService, san *convert.Sanitizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id must be a positive integer")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		if san != nil {
			doc.HTML = san.Sanitize(doc.HTML)
		}
		return c.JSON(doc)
	}
}

// CreateDocument stores a document from a JSON body with pre-rendered html.
func CreateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createDocumentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		}
		doc, err := svc.Create(c.UserContext(), req.Title, req.Kind, req.HTML)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// UpdateDocument applies a partial update; omitted fields keep stored values.
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id must be a positive integer")
		}
		var in service.UpdateDocumentInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		}
		doc, err := svc.Update(c.UserContext(), id, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument removes a document and its archived source file.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id must be a positive integer")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// UploadDocuments converts and stores every file in the multipart "files"
// field. One bad file does not abort the batch: each file gets its own entry
// in the results, either the stored document or a classified error.
func UploadDocuments(ing service.IngestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "multipart form expected")
		}
		files := form.File["files"]
		if len(files) == 0 {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "no files provided (field \"files\")")
		}

		rid := requestIDFromCtx(c)
		results := make([]uploadResult, 0, len(files))
		succeeded := 0
		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				results = append(results, uploadResult{
					Filename: fh.Filename,
					Error:    &errorEnvelope{Code: "INTERNAL_ERROR", Message: "failed to read uploaded file"},
				})
				continue
			}
			doc, err := ing.Ingest(c.UserContext(), fh.Filename, fh.Size, f, progressLogger(rid, fh.Filename))
			f.Close()
			if err != nil {
				env := conversionErrorEnvelope(err)
				results = append(results, uploadResult{Filename: fh.Filename, Error: &env})
				continue
			}
			results = append(results, uploadResult{Filename: fh.Filename, Document: doc})
			succeeded++
		}

		status := fiber.StatusCreated
		if succeeded == 0 {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(uploadResponse{Results: results})
	}
}

// GetDocumentSource streams the archived original file for a document.
func GetDocumentSource(svc service.DocumentService, arc archive.Archive) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id must be a positive integer")
		}
		if arc == nil {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "source archive is not configured")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		rc, err := arc.Fetch(c.UserContext(), doc.ID, doc.Kind)
		if err != nil {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "source file not found")
		}
		c.Set(fiber.HeaderContentType, archive.ContentTypeFor(doc.Kind))
		c.Set(fiber.HeaderContentDisposition,
			`attachment; filename="`+strconv.FormatInt(doc.ID, 10)+`.`+archive.ExtensionFor(doc.Kind)+`"`)
		return c.SendStream(rc)
	}
}

// progressLogger emits one JSON log line per rendered PDF page so long
// conversions are observable in the request logs.
func progressLogger(requestID, filename string) func(page, total int) {
	return func(page, total int) {
		b, err := json.Marshal(map[string]any{
			"ts":         model.NowISO(),
			"level":      "info",
			"event":      "pdf_render_progress",
			"request_id": requestID,
			"filename":   filename,
			"page":       page,
			"total":      total,
		})
		if err != nil {
			return
		}
		log.SetFlags(0)
		log.Println(string(b))
	}
}
