package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pixelpress/pixelpress/cmd/pixelpress/helpers"
	"github.com/pixelpress/pixelpress/cmd/pixelpress/models"
	"github.com/pixelpress/pixelpress/cmd/pixelpress/services"
	"github.com/pixelpress/pixelpress/pkg/datamodel"
)

// MaxUploadBytes bounds accepted payloads; set once during API setup.
var MaxUploadBytes int64 = 10 * 1024 * 1024

const defaultQuality = "80"

func UploadHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		helpers.HandleInvalidInputError(c, errors.New("no file part"))
		return
	}
	if fileHeader.Filename == "" {
		helpers.HandleInvalidInputError(c, errors.New("no selected file"))
		return
	}
	if !datamodel.ExtensionAllowed(fileHeader.Filename) {
		helpers.HandleInvalidInputError(c, errors.New("invalid file type. Please use JPG, PNG, WebP, BMP, or TIFF"))
		return
	}
	if fileHeader.Size > MaxUploadBytes {
		helpers.HandleTooLargeError(c, MaxUploadBytes)
		return
	}

	quality, err := strconv.ParseFloat(c.DefaultPostForm("quality", defaultQuality), 64)
	if err != nil {
		helpers.HandleInvalidInputError(c, errors.New("quality must be a number"))
		return
	}

	mode, ok := datamodel.ParseMode(c.PostForm("mode"))
	if !ok {
		helpers.HandleInvalidInputError(c, fmt.Errorf("unknown mode %q", c.PostForm("mode")))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadBytes+1))
	if err != nil {
		helpers.HandleInternalServerError(c, err)
		return
	}
	if int64(len(data)) > MaxUploadBytes {
		helpers.HandleTooLargeError(c, MaxUploadBytes)
		return
	}

	result, err := services.CompressUpload(fileHeader.Filename, data, quality, mode)
	if err != nil {
		if errors.Is(err, services.ErrNotAnImage) {
			helpers.HandleInvalidInputError(c, err)
			return
		}
		helpers.HandleInternalServerError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.NewUploadResponse(result))
}
