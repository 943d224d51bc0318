package controller

import (
	"english_app_backend/internal/service"
	"english_app_backend/internal/util"
	"fmt"

	"github.com/gin-gonic/gin"
)

type UploadController struct {
	StorageService *service.StorageService
	MaxUploadMB    int64
}

func NewUploadController(storageService *service.StorageService, maxUploadMB int64) *UploadController {
	return &UploadController{
		StorageService: storageService,
		MaxUploadMB:    maxUploadMB,
	}
}

// Upload godoc
// @Summary Upload lesson media
// @Description Images, audio and video only. Returns the public URL.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "Media file"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response
// @Failure 415 {object} util.Response
// @Router /uploads [post]
func (c *UploadController) Upload(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if fileHeader.Size > c.MaxUploadMB<<20 {
		util.BadRequest(ctx, fmt.Sprintf("File exceeds %d MB", c.MaxUploadMB))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	url, err := c.StorageService.UploadMedia(ctx.Request.Context(), fileHeader.Filename, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"url": url}, "File uploaded")
}
