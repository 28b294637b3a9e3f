package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/safewings/api/pkg/models"
	"github.com/safewings/api/pkg/utils"
)

// messageView is a message with its recipient envelope opened for the
// owning user.
type messageView struct {
	models.Message
	Recipients models.RecipientList `json:"recipients"`
}

func (s *Server) openMessage(message models.Message) messageView {
	view := messageView{Message: message}

	plain, err := s.encryption.Decrypt(message.Recipients)
	if err != nil {
		s.logger.LogMessage(message.ID, message.UserID, "decrypt", false)
		return view
	}

	recipients, err := models.DecodeRecipients([]byte(plain))
	if err != nil {
		s.logger.LogMessage(message.ID, message.UserID, "decode", false)
		return view
	}

	view.Recipients = recipients
	return view
}

// getMessages lists one page of the user's messages newest first, with
// boarding passes joined in and pagination details in the response meta.
func (s *Server) getMessages(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	total, err := s.repo.CountMessagesByUserID(user.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to count messages")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to load messages"))
		return
	}

	pagination := utils.NewPagination(page, limit, total)
	messages, err := s.repo.GetMessagesByUserID(user.ID, pagination.GetOffset(), pagination.Limit)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list messages")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to load messages"))
		return
	}

	views := make([]messageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, s.openMessage(m))
	}

	c.JSON(http.StatusOK, utils.NewPaginatedResponse(views, pagination, ""))
}

// getMessageStats returns the dashboard aggregates: total messages,
// completed count, and how many recipients are covered.
func (s *Server) getMessageStats(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	stats, err := s.repo.GetMessageStats(user.ID)
	if err != nil {
		s.logger.WithError(err).Error("Failed to compute message stats")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to load message stats"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(stats, ""))
}

// getMessage returns one message owned by the caller.
func (s *Server) getMessage(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid message id"))
		return
	}

	message, err := s.repo.GetMessageByID(uint(id))
	if err != nil || message.UserID != user.ID {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Message not found"))
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse(s.openMessage(*message), ""))
}
