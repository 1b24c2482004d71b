package helpers

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/pixelpress/pixelpress/internal"
	"go.uber.org/zap"
)

func HandleInternalServerError(c *gin.Context, err error) {
	if c == nil {
		panic("HandleInternalServerError: c is nil")
	}
	if err == nil {
		err = errors.New("unknown error")
	}

	erx := internal.SanitizeString(err.Error())
	zap.S().Errorw(
		"Internal server error",
		"error", erx,
	)

	c.JSON(
		http.StatusInternalServerError,
		gin.H{
			"error":       erx,
			"status":      http.StatusInternalServerError,
			"message":     "Failed to compress image. Please try again.",
			"stack-trace": string(debug.Stack()),
		})
}

func HandleInvalidInputError(c *gin.Context, err error) {
	if c == nil {
		panic("HandleInvalidInputError: c is nil")
	}
	if err == nil {
		err = errors.New("unknown error")
	}
	erx := internal.SanitizeString(err.Error())
	zap.S().Infow(
		"Invalid input error",
		"error", erx,
	)

	c.JSON(
		http.StatusBadRequest,
		gin.H{
			"error":   erx,
			"status":  http.StatusBadRequest,
			"message": "You have provided a wrong input. Please check your parameters.",
		})
}

func HandleNotFoundError(c *gin.Context, what string) {
	if c == nil {
		panic("HandleNotFoundError: c is nil")
	}

	zap.S().Infow(
		"Not found",
		"what", internal.SanitizeString(what),
	)

	c.JSON(
		http.StatusNotFound,
		gin.H{
			"error":  "File not found",
			"status": http.StatusNotFound,
			"route":  c.FullPath(),
		})
}

func HandleTooLargeError(c *gin.Context, maxBytes int64) {
	if c == nil {
		panic("HandleTooLargeError: c is nil")
	}

	c.JSON(
		http.StatusRequestEntityTooLarge,
		gin.H{
			"error":  "File too large",
			"status": http.StatusRequestEntityTooLarge,
			"limit":  maxBytes,
		})
}
