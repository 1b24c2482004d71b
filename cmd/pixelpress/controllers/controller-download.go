package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/pixelpress/pixelpress/cmd/pixelpress/helpers"
	"github.com/pixelpress/pixelpress/cmd/pixelpress/services"
)

type downloadRequest struct {
	Filename string `uri:"filename" binding:"required"`
}

func DownloadHandler(c *gin.Context) {
	var request downloadRequest

	err := c.BindUri(&request)
	if err != nil {
		helpers.HandleInvalidInputError(c, err)
		return
	}

	path, _, ok := services.ResolveDownload(request.Filename)
	if !ok {
		helpers.HandleNotFoundError(c, request.Filename)
		return
	}

	c.Header("Content-Type", "image/jpeg")
	c.FileAttachment(path, "compressed_"+request.Filename)
}
