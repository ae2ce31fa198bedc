package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Plain-text bodies for the upload and search endpoints.
const (
	msgFileEmpty         = "File is empty"
	msgFileLoaded        = "File is loaded"
	msgLocationIncorrect = "Location is incorrect"
	msgNoneFound         = "No one find"
)

// ErrorResponse is the standard JSON error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// badRequest writes a 400 response with code BAD_REQUEST and the provided message.
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Code: "BAD_REQUEST", Message: msg})
}

// notFound writes a 404 response with code NOT_FOUND for the given resource name.
func notFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Code: "NOT_FOUND", Message: resource + " not found"})
}

// internalError writes a 500 response with code INTERNAL_ERROR.
func internalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{Code: "INTERNAL_ERROR", Message: err.Error()})
}

// NotFound is the NoRoute handler.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{Code: "NOT_FOUND", Message: "route not found"})
}
