package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dikaipan/rocdashboard-sub001/internal/config"
	"github.com/dikaipan/rocdashboard-sub001/internal/query"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxPhotoBytes = 5 * 1024 * 1024

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadPhotoHandler stores a tool photo under a collision-free name and
// returns the path the tool record should keep.
func UploadPhotoHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No file provided")
		}
		if file.Filename == "" {
			return fiber.NewError(fiber.StatusBadRequest, "No file selected")
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedImageExt[ext] {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid file type. Allowed: jpg, jpeg, png, gif, webp")
		}
		if file.Size > maxPhotoBytes {
			return fiber.NewError(fiber.StatusBadRequest, "File size exceeds 5MB limit")
		}

		if err := os.MkdirAll(cfg.ToolPhotoDir, 0o755); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to prepare upload directory")
		}

		name := fmt.Sprintf("%s_%s%s",
			strings.ReplaceAll(uuid.NewString(), "-", "")[:8],
			time.Now().Format("20060102_150405"),
			ext,
		)
		if err := c.SaveFile(file, filepath.Join(cfg.ToolPhotoDir, name)); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Failed to save photo")
		}

		return c.JSON(fiber.Map{
			"ok":       true,
			"message":  "Photo uploaded successfully",
			"path":     "/api/uploads/tools/" + name,
			"filename": name,
		})
	}
}

// ServePhotoHandler serves a stored photo, refusing any path that would
// escape the upload directory.
func ServePhotoHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := filepath.Base(query.PathParam(c, "filename"))
		if name == "." || name == ".." || name == string(filepath.Separator) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid filename")
		}

		path := filepath.Join(cfg.ToolPhotoDir, name)
		if _, err := os.Stat(path); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "File not found")
		}
		return c.SendFile(path)
	}
}
