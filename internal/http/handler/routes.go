package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/herinqueoliveira/Teste-Wiki/internal/archive"
	"github.com/herinqueoliveira/Teste-Wiki/internal/convert"
	"github.com/herinqueoliveira/Teste-Wiki/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers
// stay thin: parsing, dispatch to services, response shaping.
func RegisterRoutes(
	app *fiber.App,
	db *sql.DB,
	docSvc service.DocumentService,
	ingSvc service.IngestService,
	arc archive.Archive,
	san *convert.Sanitizer,
	metrics prometheus.Gatherer,
) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	if metrics != nil {
		promHandler := fasthttpadaptor.NewFastHTTPHandler(
			promhttp.HandlerFor(metrics, promhttp.HandlerOpts{}),
		)
		app.Get("/metrics", func(c *fiber.Ctx) error {
			promHandler(c.Context())
			return nil
		})
	}

	api := app.Group("/api")
	api.Get("/docs", ListDocuments(docSvc))
	api.Post("/docs", CreateDocument(docSvc))
	api.Post("/docs/upload", UploadDocuments(ingSvc))
	api.Get("/docs/:id", GetDocument(docSvc, san))
	api.Put("/docs/:id", UpdateDocument(docSvc))
	api.Delete("/docs/:id", DeleteDocument(docSvc))
	api.Get("/docs/:id/source", GetDocumentSource(docSvc, arc))
}
