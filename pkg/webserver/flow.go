package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safewings/api/pkg/flow"
	"github.com/safewings/api/pkg/models"
	"github.com/safewings/api/pkg/utils"
)

type draftRequest struct {
	Recipients models.RecipientList `json:"recipients" binding:"required"`
	Flight     models.FlightInfo    `json:"flight" binding:"required"`
}

type confirmRequest struct {
	Premium bool                  `json:"premium"`
	Gifts   []models.GiftCategory `json:"gifts"`
}

// getFlowState returns the wizard position for this session.
func (s *Server) getFlowState(c *gin.Context) {
	sid := s.flowSessionID(c)
	c.JSON(http.StatusOK, utils.NewSuccessResponse(s.flow.Get(sid), ""))
}

func (s *Server) flowNext(c *gin.Context) {
	s.applyFlowEvent(c, flow.EventNext)
}

func (s *Server) flowBack(c *gin.Context) {
	s.applyFlowEvent(c, flow.EventBack)
}

func (s *Server) flowOpenFAQ(c *gin.Context) {
	s.applyFlowEvent(c, flow.EventOpenFAQ)
}

func (s *Server) flowOpenAuth(c *gin.Context) {
	s.applyFlowEvent(c, flow.EventOpenAuth)
}

func (s *Server) flowCreateNew(c *gin.Context) {
	s.applyFlowEvent(c, flow.EventCreateNew)
}

func (s *Server) applyFlowEvent(c *gin.Context, e flow.Event) {
	sid := s.flowSessionID(c)
	state := s.flow.Apply(sid, e)
	c.JSON(http.StatusOK, utils.NewSuccessResponse(state, ""))
}

// flowSubmitDraft validates and stores the just-entered recipients and
// flight details, then moves the session to the upgrade screen.
func (s *Server) flowSubmitDraft(c *gin.Context) {
	var req draftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid request body"))
		return
	}

	if err := req.Recipients.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(err.Error()))
		return
	}
	if err := req.Flight.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(err.Error()))
		return
	}

	req.Recipients.EnsureIDs()

	sid := s.flowSessionID(c)
	state := s.flow.SubmitDraft(sid, flow.Draft{
		Recipients: req.Recipients,
		Flight:     req.Flight,
	})

	c.JSON(http.StatusOK, utils.NewSuccessResponse(state, "Draft saved"))
}

// flowConfirm is the upgrade screen's confirmation action. With a
// signed-in user and a pending draft it persists the message and lands
// on the dashboard; otherwise it falls through to the generic forward
// transition.
func (s *Server) flowConfirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid request body"))
		return
	}

	selection := models.UpgradeSelection{Premium: req.Premium, Gifts: req.Gifts}
	if err := selection.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(err.Error()))
		return
	}

	sid := s.flowSessionID(c)
	user, userErr := s.getCurrentUser(c)
	draft, hasDraft := s.flow.Draft(sid)

	if userErr != nil || !hasDraft {
		// Precondition not met: plain forward step, no error surfaced
		state := s.flow.Apply(sid, flow.EventNext)
		c.JSON(http.StatusOK, utils.NewSuccessResponse(state, ""))
		return
	}

	message, err := s.persistMessage(user, draft, selection)
	if err != nil {
		s.logger.LogMessage(0, user.ID, "persist", false)
		// The session stays on the upgrade screen with its draft intact
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to save your message, please try again"))
		return
	}

	state := s.flow.CompletePersist(sid)
	s.logger.LogMessage(message.ID, user.ID, "persist", true)

	c.JSON(http.StatusOK, utils.NewSuccessResponse(map[string]interface{}{
		"flow":    state,
		"message": message,
	}, "Message saved"))
}

// persistMessage flattens the draft and upgrade choice into one message
// row with the recipients sealed in an encrypted envelope.
func (s *Server) persistMessage(user *models.User, draft flow.Draft, selection models.UpgradeSelection) (*models.Message, error) {
	envelope, err := models.EncodeRecipients(draft.Recipients)
	if err != nil {
		return nil, err
	}

	sealed, err := s.encryption.Encrypt(string(envelope))
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		UserID:          user.ID,
		FlightNumber:    draft.Flight.FlightNumber,
		FlightDate:      draft.Flight.ParsedDate(),
		Recipients:      sealed,
		RecipientCount:  len(draft.Recipients),
		UpgradeSelected: selection.Premium,
		Gifts:           selection.GiftValues(),
		AmountPaid:      selection.Amount(s.config.Pricing.BaseFee, s.config.Pricing.UpgradeFee),
		Status:          models.StatusActive,
	}

	if err := s.repo.CreateMessage(message); err != nil {
		return nil, err
	}
	return message, nil
}
