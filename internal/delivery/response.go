package delivery

import (
	"errors"
	"net/http"

	"category_service/internal/domain"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status  string      `json:"Status"`
	Message string      `json:"Message"`
	Data    interface{} `json:"Data,omitempty"`
}

// PagedCategories wraps one page of list results with the paging state the
// caller needs to keep iterating.
type PagedCategories struct {
	Items       []domain.Category `json:"items"`
	Page        int               `json:"page"`
	Limit       int               `json:"limit"`
	HasNextPage bool              `json:"hasNextPage"`
}

func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Status:  "Success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Status:  "Fail",
		Message: message,
	})
}

// RespondError maps a domain outcome onto its HTTP status. Internal failures
// are surfaced with a generic message only; the detail already went to the
// logs where the failure was classified.
func RespondError(c *gin.Context, err error) {
	var validationErr domain.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, Response{
			Status:  "Fail",
			Message: validationErr.Error(),
			Data:    gin.H{"violations": validationErr.Violations},
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthenticated):
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrPermissionDenied):
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyExists):
		ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrAlreadyDeleted):
		ErrorResponse(c, http.StatusGone, err.Error())
	default:
		ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
