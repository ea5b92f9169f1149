package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"user-profile-api/internal/application/ports"
	"user-profile-api/internal/domain/photo"
)

const uploadCacheControl = "public, max-age=3600"

// UploadController serves stored photos read-only under /uploads/.
type UploadController struct {
	photoStore ports.PhotoStore
	logger     *zap.Logger
}

func NewUploadController(
	r *gin.Engine,
	photoStore ports.PhotoStore,
	logger *zap.Logger,
) *UploadController {
	upc := &UploadController{
		photoStore: photoStore,
		logger:     logger,
	}

	r.GET(RouteUpload, upc.GetUploadHandler)
	r.HEAD(RouteUpload, upc.GetUploadHandler)

	return upc
}

func (upc *UploadController) GetUploadHandler(c *gin.Context) {
	obj, err := upc.photoStore.Open(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, photo.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to read photo"},
		)
		upc.logger.Error("photo Open() error", zap.Error(err), zap.String("name", c.Param("name")))
		return
	}
	defer obj.Content.Close()

	size := obj.Size
	if size <= 0 {
		size = -1
	}

	headers := map[string]string{"Cache-Control": uploadCacheControl}
	if !obj.ModTime.IsZero() {
		headers["Last-Modified"] = obj.ModTime.UTC().Format(http.TimeFormat)
	}

	c.DataFromReader(http.StatusOK, size, obj.ContentType, obj.Content, headers)
}
