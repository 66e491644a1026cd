package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-api/internal/models"
	"catalog-api/internal/services"
)

func Register(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorPayload{Error: "invalid request body"})
			return
		}

		view, token, err := as.Register(c.Request.Context(), input)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"user":  view,
			"token": token,
		})
	}
}

func Login(as *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorPayload{Error: "invalid request body"})
			return
		}

		view, token, err := as.Login(c.Request.Context(), input)
		if err != nil {
			writeError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user":  view,
			"token": token,
		})
	}
}
