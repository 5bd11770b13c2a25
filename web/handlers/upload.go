package handlers

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"shiftguard.com/shiftguard/infrastructure/filesystem"
	web "shiftguard.com/shiftguard/web/common"
	"shiftguard.com/shiftguard/web/middlewares"
)

// UploadSignatureHandler stores an attestation signature image and returns the
// storage key to put in the clock-out attestation.
func UploadSignatureHandler(bucket string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := middlewares.CurrentIdentity(c)
		if identity == nil {
			c.JSON(http.StatusUnauthorized, web.NewErrorResponse("Not authenticated"))
			return
		}

		file, err := c.FormFile("signature")
		if err != nil {
			c.JSON(http.StatusBadRequest, web.NewErrorResponse("Missing signature file"))
			return
		}

		ext := filepath.Ext(file.Filename)
		if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
			c.JSON(http.StatusBadRequest, web.NewErrorResponse("Signature must be a png or jpeg image"))
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
			return
		}
		defer src.Close()

		data, err := io.ReadAll(src)
		if err != nil {
			c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
			return
		}

		contentType := "image/png"
		if ext != ".png" {
			contentType = "image/jpeg"
		}

		key := fmt.Sprintf("signatures/%s/%d/%s/%s%s",
			identity.CompanyID, identity.WorkerID,
			time.Now().UTC().Format("2006-01-02"), uuid.NewString(), ext)
		if err := filesystem.WriteFile(bucket, key, c.Request.Context(), data, contentType); err != nil {
			c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, web.NewSuccessResponse(gin.H{"signatureKey": key}))
	}
}
