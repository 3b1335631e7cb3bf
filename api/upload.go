package api

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"pixelforge/config"
	"pixelforge/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// allowedImageTypes maps accepted MIME types to their canonical extension.
var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// UploadHandler accepts a multipart image upload and stores it under the
// configured uploads directory. Names are timestamp plus a random suffix so
// uploads never collide or overwrite.
// POST /api/upload
func (h *APIHandler) UploadHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "A 'file' form field is required.", err)
		return
	}

	maxBytes := config.AppConfig.Uploads.MaxBytes
	if fileHeader.Size > maxBytes {
		utils.SendJSONError(c, http.StatusBadRequest,
			fmt.Sprintf("File exceeds the %d MB limit.", maxBytes/(1024*1024)), nil)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		utils.SendJSONError(c, http.StatusBadRequest, "Only JPEG, PNG, WebP and GIF images are accepted.", nil)
		return
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().Unix(), uuid.NewString()[:8], ext)
	dest := filepath.Join(config.AppConfig.Uploads.Dir, name)
	if err := c.SaveUploadedFile(fileHeader, dest); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "", err)
		return
	}

	publicURL := strings.TrimRight(config.AppConfig.Uploads.PublicURL, "/") + "/" + name
	c.JSON(http.StatusCreated, gin.H{
		"filename": name,
		"url":      publicURL,
	})
}
