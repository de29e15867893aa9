package integrity

import (
	"errors"

	"catalog-sync/core/logger"
	"catalog-sync/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.SchemaReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/bucket", h.HandleBucketCheck)
	group.Get("/playlists", h.HandlePlaylistCheck)
	group.Get("/catalog", h.HandleCatalogCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs all available integrity checks (Schema, Bucket, Playlists, Catalog).
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]any)

	if schema, err := h.service.CheckSchema(); err != nil {
		report["schema"] = errorEntry(err)
	} else {
		report["schema"] = schema
	}

	if bucket, err := h.service.CheckBucket(ctx); err != nil {
		report["bucket"] = errorEntry(err)
	} else {
		report["bucket"] = bucket
	}

	if missing, err := h.service.CheckPlaylists(ctx); err != nil {
		report["playlists"] = errorEntry(err)
	} else {
		report["playlists"] = map[string]any{"status": "ok", "missing": missing}
	}

	if catalog, err := h.service.CheckCatalog(ctx); err != nil {
		report["catalog"] = errorEntry(err)
	} else {
		report["catalog"] = catalog
	}

	return c.JSON(report)
}

func errorEntry(err error) map[string]any {
	return map[string]any{"status": "error", "error": err.Error()}
}

// HandleSchemaCheck checks the catalog schema.
// @Summary Check Schema
// @Description Checks that every catalog table has the columns the models declare.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !report.Matched {
		l.Warn("Catalog schema does not match models")
	}
	return c.JSON(report)
}

// HandleBucketCheck checks and optionally creates the playlist bucket.
// @Summary Check Bucket
// @Description Checks that the playlist bucket exists. Optionally creates it.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Create the bucket"
// @Success 200 {object} map[string]interface{} "Bucket Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Storage not configured"
// @Router /integrity/bucket [get]
func (h *Handler) HandleBucketCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	report, err := h.service.CheckBucket(c.Context())
	if err != nil {
		return h.fail(c, l, "Bucket check failed", err)
	}

	if !report.Exists {
		l.Warn("Playlist bucket missing", zap.String("bucket", report.Bucket))

		if fix {
			l.Info("Attempting to create playlist bucket")
			if err := h.service.FixBucket(c.Context()); err != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Failed to create bucket",
					"details": err.Error(),
				})
			}
			return c.JSON(fiber.Map{
				"status": "fixed",
				"bucket": report.Bucket,
			})
		}
	}

	return c.JSON(fiber.Map{
		"status": "checked",
		"bucket": report.Bucket,
		"exists": report.Exists,
	})
}

// HandlePlaylistCheck checks that uploaded playlists still exist.
// @Summary Check Playlists
// @Description Stats the object behind every account whose playlist lives in the bucket.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Playlist Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Failure 503 {object} map[string]string "Storage not configured"
// @Router /integrity/playlists [get]
func (h *Handler) HandlePlaylistCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	missing, err := h.service.CheckPlaylists(c.Context())
	if err != nil {
		return h.fail(c, l, "Playlist check failed", err)
	}
	if len(missing) > 0 {
		l.Warn("Uploaded playlists missing", zap.Int("count", len(missing)))
	}

	return c.JSON(fiber.Map{
		"status":  "checked",
		"missing": missing,
	})
}

// HandleCatalogCheck checks and optionally repairs the cached catalog.
// @Summary Check Catalog
// @Description Finds accounts without categories and channel rows whose category is gone. Optionally deletes those channel rows.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Delete dangling channels"
// @Success 200 {object} checks.CatalogReport "Catalog Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/catalog [get]
func (h *Handler) HandleCatalogCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fix := c.Query("fix") == "true"

	report, err := h.service.CheckCatalog(c.Context())
	if err != nil {
		return h.fail(c, l, "Catalog check failed", err)
	}

	if report.DanglingChannels > 0 && fix {
		l.Info("Attempting to remove dangling channels")
		removed, err := h.service.FixCatalog(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to remove dangling channels",
				"details": err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"status":         "fixed",
			"removed":        removed,
			"empty_accounts": report.EmptyAccounts,
		})
	}

	return c.JSON(report)
}

func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	if errors.Is(err, ErrNoStorage) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	l.Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
