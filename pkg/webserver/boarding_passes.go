package webserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/safewings/api/pkg/models"
	"github.com/safewings/api/pkg/storage"
	"github.com/safewings/api/pkg/utils"
)

// uploadBoardingPass validates and stores a boarding pass file for one
// of the caller's messages. The blob is written first; the row is only
// inserted once the blob is durable.
func (s *Server) uploadBoardingPass(c *gin.Context) {
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
	messageID := uint(id)

	message, err := s.repo.GetMessageByID(messageID)
	if err != nil || message.UserID != user.ID {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Message not found"))
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("A file is required"))
		return
	}

	contentType := header.Header.Get("Content-Type")
	if err := s.uploadVal.ValidateUpload(contentType, header.Size); err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, storage.ErrFileTooLarge) {
			status = http.StatusRequestEntityTooLarge
		} else if errors.Is(err, storage.ErrInvalidFileType) {
			status = http.StatusUnsupportedMediaType
		}
		s.logger.LogUpload(messageID, user.ID, header.Filename, "validate", false, err.Error())
		c.JSON(status, utils.NewErrorResponse(err.Error()))
		return
	}

	// One in-flight upload per message
	release, err := s.uploads.Acquire(messageID)
	if err != nil {
		c.JSON(http.StatusConflict, utils.NewErrorResponse(err.Error()))
		return
	}
	defer release()

	file, err := header.Open()
	if err != nil {
		s.logger.LogUpload(messageID, user.ID, header.Filename, "open", false, err.Error())
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to read uploaded file"))
		return
	}
	defer file.Close()

	storedName := storage.StoredName(messageID, header.Filename, time.Now())
	objectPath := storage.ObjectPath(user.ID, storedName)

	if err := s.store.Put(c.Request.Context(), objectPath, file, header.Size); err != nil {
		s.logger.LogUpload(messageID, user.ID, header.Filename, "blob_put", false, err.Error())
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to store file"))
		return
	}

	pass := &models.BoardingPass{
		UserID:    user.ID,
		MessageID: messageID,
		FilePath:  objectPath,
		FileName:  header.Filename,
	}
	if err := s.repo.CreateBoardingPass(pass); err != nil {
		// Roll the blob back so a failed insert leaves nothing behind
		if rmErr := s.store.Remove(c.Request.Context(), objectPath); rmErr != nil {
			s.logger.LogUpload(messageID, user.ID, header.Filename, "blob_rollback", false, rmErr.Error())
		}
		s.logger.LogUpload(messageID, user.ID, header.Filename, "row_insert", false, err.Error())
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to save boarding pass"))
		return
	}

	s.logger.LogUpload(messageID, user.ID, header.Filename, "upload", true, "")
	c.JSON(http.StatusCreated, utils.NewSuccessResponse(pass, "Boarding pass uploaded"))
}

// removeBoardingPass deletes the blob, then the row. The sequence is
// best-effort: a blob-delete failure is logged and the row is removed
// anyway, leaving the reconcile sweep to report any leftovers.
func (s *Server) removeBoardingPass(c *gin.Context) {
	user, err := s.getCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Unauthorized"))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid boarding pass id"))
		return
	}

	pass, err := s.repo.GetBoardingPassByID(uint(id))
	if err != nil || pass.UserID != user.ID {
		c.JSON(http.StatusNotFound, utils.NewErrorResponse("Boarding pass not found"))
		return
	}

	if err := s.store.Remove(c.Request.Context(), pass.FilePath); err != nil {
		s.logger.LogUpload(pass.MessageID, user.ID, pass.FileName, "blob_remove", false, err.Error())
	}

	if err := s.repo.DeleteBoardingPass(pass.ID); err != nil {
		s.logger.LogUpload(pass.MessageID, user.ID, pass.FileName, "row_delete", false, err.Error())
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to remove boarding pass"))
		return
	}

	s.logger.LogUpload(pass.MessageID, user.ID, pass.FileName, "remove", true, "")
	c.JSON(http.StatusOK, utils.NewSuccessResponse(nil, "Boarding pass removed"))
}
