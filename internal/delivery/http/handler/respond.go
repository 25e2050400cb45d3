package handler

import (
	"errors"
	"net/http"

	"github.com/bernaba123/E-Commerce-sub001/internal/domain/repositories"
	"github.com/bernaba123/E-Commerce-sub001/internal/usecase"

	"github.com/gin-gonic/gin"
)

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"code": 0, "data": data})
}

func created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"code": 0, "data": data})
}

// fail maps core errors onto the HTTP surface. Not-found stays uniform so a
// caller cannot distinguish a foreign order from a missing one; anything
// unclassified is a generic 500 with no internals leaked.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrOrderNotFound),
		errors.Is(err, repositories.ErrRequestNotFound),
		errors.Is(err, repositories.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"code": 404, "msg": "not found"})

	case errors.Is(err, usecase.ErrPaymentDeclined):
		c.JSON(http.StatusPaymentRequired, gin.H{"code": 402, "msg": err.Error()})

	case errors.Is(err, usecase.ErrOutsideEditWindow),
		errors.Is(err, usecase.ErrNotEditable),
		errors.Is(err, usecase.ErrNotCancellable),
		errors.Is(err, usecase.ErrInvalidTransition),
		errors.Is(err, usecase.ErrInsufficientStock):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"code": 422, "msg": err.Error()})

	case errors.Is(err, usecase.ErrInvalidUserID),
		errors.Is(err, usecase.ErrInvalidOrderID),
		errors.Is(err, usecase.ErrInvalidRequestID),
		errors.Is(err, usecase.ErrEmptyItems),
		errors.Is(err, usecase.ErrInvalidItem),
		errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrInvalidUrgency),
		errors.Is(err, usecase.ErrInvalidAddress),
		errors.Is(err, usecase.ErrInvalidMethod),
		errors.Is(err, usecase.ErrMissingSourceURL),
		errors.Is(err, usecase.ErrMissingProductName):
		c.JSON(http.StatusBadRequest, gin.H{"code": 400, "msg": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"code": 500, "msg": "internal error"})
	}
}
