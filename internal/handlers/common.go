package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"catalog-api/internal/models"
)

// writeError maps a service error onto its HTTP status. Unexpected errors
// become a generic 500 in release mode so internals never reach clients.
func writeError(c *gin.Context, err error) {
	status := models.StatusCode(err)
	if status == http.StatusInternalServerError && gin.Mode() == gin.ReleaseMode {
		c.JSON(status, models.ErrorPayload{Error: "internal server error"})
		return
	}
	c.JSON(status, models.ErrorResponse(err))
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorPayload{Error: "invalid id parameter"})
		return 0, false
	}
	return id, true
}
