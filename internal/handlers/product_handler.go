package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"catalog-api/internal/middleware"
	"catalog-api/internal/models"
	"catalog-api/internal/services"
)

// pageParams reads ?page and ?limit. Page falls back to 1; a missing or
// unusable limit comes back as 0 so the service can apply the requester's
// page-size preference.
func pageParams(c *gin.Context) (page, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	return page, limit
}

func ListProducts(ps *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)
		requester, _ := middleware.CurrentUser(c)

		result, err := ps.List(c.Request.Context(), page, limit, requester)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func SearchProducts(ps *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)
		requester, _ := middleware.CurrentUser(c)

		result, err := ps.Search(c.Request.Context(), c.Query("query"), page, limit, requester)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func GetProduct(ps *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		product, err := ps.GetByID(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func CreateProduct(ps *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorPayload{Error: "invalid request body"})
			return
		}

		product, err := ps.Create(c.Request.Context(), input)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

func UpdateProduct(ps *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		var patch models.ProductPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorPayload{Error: "invalid request body"})
			return
		}

		product, err := ps.Update(c.Request.Context(), id, patch)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func DeleteProduct(ps *services.ProductService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		if err := ps.Delete(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.MessagePayload{Message: "product deleted successfully"})
	}
}
