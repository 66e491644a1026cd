package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-api/internal/middleware"
	"catalog-api/internal/models"
	"catalog-api/internal/services"
)

func GetProfile(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorPayload{Error: "unauthorized"})
			return
		}

		user, err := us.GetProfile(c.Request.Context(), requester.UserID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func UpdateProfile(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		requester, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, models.ErrorPayload{Error: "unauthorized"})
			return
		}

		var patch models.ProfileUpdate
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorPayload{Error: "invalid request body"})
			return
		}

		user, err := us.UpdateProfile(c.Request.Context(), requester.UserID, patch)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func ListUsers(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := us.ListUsers(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

func UpdateUserStatus(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		var input models.StatusUpdate
		if err := c.ShouldBindJSON(&input); err != nil || input.Status == nil {
			c.JSON(http.StatusBadRequest, models.ErrorPayload{Error: "status is required"})
			return
		}

		user, err := us.UpdateStatus(c.Request.Context(), id, *input.Status)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func UpdateUser(us *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		var patch models.AdminUserUpdate
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorPayload{Error: "invalid request body"})
			return
		}

		user, err := us.UpdateUser(c.Request.Context(), id, patch)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
