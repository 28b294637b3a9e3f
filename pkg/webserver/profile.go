package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safewings/api/pkg/utils"
)

type refundPreferenceRequest struct {
	AutoRefundEnabled *bool `json:"auto_refund_enabled" binding:"required"`
}

// getProfile returns the caller's account.
func (s *Server) getProfile(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(user, ""))
}

// updateRefundPreference toggles the 30-day auto-refund option from the
// refund screen.
func (s *Server) updateRefundPreference(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	var req refundPreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid request body"))
		return
	}

	user.AutoRefundEnabled = *req.AutoRefundEnabled
	if err := s.repo.UpdateUser(user); err != nil {
		s.logger.WithError(err).Error("Failed to update refund preference")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to update preference"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(user, "Refund preference updated"))
}
