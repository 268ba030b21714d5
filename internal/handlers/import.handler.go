package handlers

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"pulse360/config"
	"pulse360/internal/app"
	importsController "pulse360/internal/controllers/imports"
	"pulse360/internal/logger"
	. "pulse360/internal/models"
	"pulse360/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ImportHandler struct {
	Handler
	controller *importsController.ImportController
	config     config.Config
}

func NewImportHandler(app app.App, router fiber.Router) *ImportHandler {
	log := logger.New("handlers").File("import_handler")
	return &ImportHandler{
		controller: app.ImportController,
		config:     app.Config,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ImportHandler) Register() {
	imports := h.router.Group("/imports")
	imports.Post("/", h.importFile)
	imports.Get("/", h.getImportBatches)
	imports.Get("/:token", h.getImportBatch)
}

func (h *ImportHandler) importFile(c *fiber.Ctx) error {
	log := h.log.Function("importFile")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "file is required"})
	}

	opts, err := h.parseImportOptions(c, fileHeader.Filename)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": err.Error()})
	}

	// The upload is spooled to disk so large files never live in the request
	// buffer and the handler owns cleanup on every exit path.
	if err := os.MkdirAll(h.config.UploadTempDir, 0o755); err != nil {
		log.Er("failed to create upload temp dir", err, "dir", h.config.UploadTempDir)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to store upload"})
	}

	tempPath := filepath.Join(h.config.UploadTempDir, uuid.New().String()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveFile(fileHeader, tempPath); err != nil {
		log.Er("failed to save upload", err, "path", tempPath)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to store upload"})
	}
	defer func() {
		if err := os.Remove(tempPath); err != nil {
			log.Warn("failed to remove temp upload", "path", tempPath, "error", err)
		}
	}()

	data, err := os.ReadFile(tempPath)
	if err != nil {
		log.Er("failed to read upload", err, "path", tempPath)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to read upload"})
	}

	result, err := h.controller.ImportFile(c.Context(), data, opts)
	if err != nil {
		log.Er("import failed", err, "fileName", opts.FileName)

		status := fiber.StatusInternalServerError
		if errors.Is(err, utils.ErrUnsupportedFormat) ||
			errors.Is(err, utils.ErrEmptyFile) ||
			errors.Is(err, importsController.ErrMissingRequiredMapping) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).
			JSON(fiber.Map{"message": "import failed", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "success", "result": result})
}

func (h *ImportHandler) parseImportOptions(c *fiber.Ctx, fileName string) (ImportOptions, error) {
	opts := DefaultImportOptions(fileName)

	if v := c.FormValue("startRow"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return opts, errors.New("startRow must be a positive integer")
		}
		opts.StartRow = n
	}

	if v := c.FormValue("updateExisting"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New("updateExisting must be a boolean")
		}
		opts.UpdateExisting = b
	}

	if v := c.FormValue("mode"); v != "" {
		if v != ImportModeBestEffort && v != ImportModeAtomic {
			return opts, errors.New("mode must be " + ImportModeBestEffort + " or " + ImportModeAtomic)
		}
		opts.Mode = v
	}

	if v := c.FormValue("columnMode"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New("columnMode must be a boolean")
		}
		opts.ColumnMode = b
	}

	if v := c.FormValue("mapping"); v != "" {
		var mapping map[string]string
		if err := json.Unmarshal([]byte(v), &mapping); err != nil {
			return opts, errors.New("mapping must be a JSON object of field name to column label")
		}
		opts.Mapping = mapping
	}

	return opts, nil
}

func (h *ImportHandler) getImportBatch(c *fiber.Ctx) error {
	log := h.log.Function("getImportBatch")

	token := c.Params("token")
	if token == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "batch token is required"})
	}

	batch, err := h.controller.GetBatchByToken(c.Context(), token)
	if err != nil {
		log.Er("failed to get import batch", err, "batchToken", token)
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "import batch not found"})
	}

	return c.JSON(fiber.Map{"message": "success", "batch": batch})
}

func (h *ImportHandler) getImportBatches(c *fiber.Ctx) error {
	log := h.log.Function("getImportBatches")

	batches, err := h.controller.GetAllBatches(c.Context())
	if err != nil {
		log.Er("failed to get import batches", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to get import batches", "error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "success", "batches": batches})
}
