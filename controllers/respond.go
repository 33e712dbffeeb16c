package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"daylog/utils"
)

// respondError maps service errors onto the API's error payloads.
// Validation and not-found are caller mistakes; everything else is an
// internal failure that gets logged and hidden.
func respondError(c *gin.Context, logger *zap.SugaredLogger, err error) {
	var ve *utils.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"message": ve.Message, "field": ve.Field})
	case errors.Is(err, utils.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	default:
		logger.Errorw("internal error", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
	}
}

// respondBindError turns a gin binding failure into the 400 payload,
// naming the first offending field when the validator knows it.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := lowerFirst(verrs[0].Field())
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid or missing " + field, "field": field})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
