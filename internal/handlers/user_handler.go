package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/filmorate/internal/models"
)

// GetUsers handles GET /users.
func (h *HandlerManager) GetUsers(c *gin.Context) {
	users, err := h.UserSvc.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser handles GET /users/:id.
func (h *HandlerManager) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.UserSvc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateUser handles POST /users.
func (h *HandlerManager) CreateUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		badRequest(c, "invalid user body: "+err.Error())
		return
	}

	created, err := h.UserSvc.Create(c.Request.Context(), &user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// UpdateUser handles PUT /users; the body carries the id.
func (h *HandlerManager) UpdateUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		badRequest(c, "invalid user body: "+err.Error())
		return
	}

	updated, err := h.UserSvc.Update(c.Request.Context(), &user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteUser handles DELETE /users/:id.
func (h *HandlerManager) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.UserSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// GetFriends handles GET /users/:id/friends.
func (h *HandlerManager) GetFriends(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	friends, err := h.UserSvc.GetFriends(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, friends)
}

// AddFriend handles PUT /users/:id/friends/:friendId.
func (h *HandlerManager) AddFriend(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	friendID, ok := pathID(c, "friendId")
	if !ok {
		return
	}

	if err := h.UserSvc.AddFriend(c.Request.Context(), id, friendID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// RemoveFriend handles DELETE /users/:id/friends/:friendId.
func (h *HandlerManager) RemoveFriend(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	friendID, ok := pathID(c, "friendId")
	if !ok {
		return
	}

	if err := h.UserSvc.RemoveFriend(c.Request.Context(), id, friendID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// GetCommonFriends handles GET /users/:id/friends/common/:otherId.
func (h *HandlerManager) GetCommonFriends(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	otherID, ok := pathID(c, "otherId")
	if !ok {
		return
	}

	mutual, err := h.UserSvc.GetMutualFriends(c.Request.Context(), id, otherID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mutual)
}
