package webserver

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/safewings/api/pkg/flow"
	"github.com/safewings/api/pkg/models"
	"github.com/safewings/api/pkg/utils"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
	Flow  flow.State   `json:"flow"`
}

// handleRegister creates an account and signs the wizard session in.
func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid request body"))
		return
	}

	email := s.validator.SanitizeInput(req.Email)
	if !s.validator.ValidateEmail(email) {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid email address"))
		return
	}

	if _, err := s.repo.GetUserByEmail(email); err == nil {
		c.JSON(http.StatusConflict, utils.NewErrorResponse("An account with this email already exists"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.WithError(err).Error("Failed to hash password")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Internal server error"))
		return
	}

	user := &models.User{
		Email:             email,
		PasswordHash:      string(hash),
		FullName:          s.validator.SanitizeInput(req.FullName),
		AutoRefundEnabled: true,
	}
	if err := s.repo.CreateUser(user); err != nil {
		s.logger.WithError(err).Error("Failed to create user")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to create account"))
		return
	}

	s.logger.LogAuth(user.ID, user.Email, "register", true)
	s.issueSession(c, user, "Account created")
}

// handleLogin verifies credentials and signs the wizard session in.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("Invalid request body"))
		return
	}

	user, err := s.repo.GetUserByEmail(s.validator.SanitizeInput(req.Email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.WithError(err).Error("Failed to look up user")
		}
		s.logger.LogAuth(0, req.Email, "login", false)
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Invalid email or password"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.LogAuth(user.ID, user.Email, "login", false)
		c.JSON(http.StatusUnauthorized, utils.NewErrorResponse("Invalid email or password"))
		return
	}

	s.logger.LogAuth(user.ID, user.Email, "login", true)
	s.issueSession(c, user, "Login successful")
}

// issueSession mints a JWT and broadcasts the sign-in so the navigation
// controller lands the session on the dashboard.
func (s *Server) issueSession(c *gin.Context, user *models.User, message string) {
	token, err := s.jwtManager.GenerateToken(user.ID, user.Email, user.FullName)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate JWT token")
		c.JSON(http.StatusInternalServerError, utils.NewErrorResponse("Failed to generate token"))
		return
	}

	sid := s.flowSessionID(c)
	s.authFeed.Publish(flow.AuthEvent{
		Kind:      flow.AuthSignedIn,
		SessionID: sid,
		UserID:    user.ID,
		Email:     user.Email,
	})

	c.JSON(http.StatusOK, utils.NewSuccessResponse(authResponse{
		Token: token,
		User:  user,
		Flow:  s.flow.Get(sid),
	}, message))
}

// handleLogout signs the wizard session out and clears the cookie. The
// navigation state is forced back to onboarding no matter which screen
// the user was on.
func (s *Server) handleLogout(c *gin.Context) {
	sid := s.flowSessionID(c)

	s.authFeed.Publish(flow.AuthEvent{
		Kind:      flow.AuthSignedOut,
		SessionID: sid,
	})

	session := sessions.Default(c)
	session.Clear()
	session.Save()

	if user, err := s.getCurrentUser(c); err == nil {
		s.logger.LogAuth(user.ID, user.Email, "logout", true)
	}

	// The cookie no longer references this session id, so drop the
	// controller entry instead of letting it idle until the sweep.
	state := s.flow.Get(sid)
	s.flow.Forget(sid)

	c.JSON(http.StatusOK, utils.NewSuccessResponse(map[string]interface{}{
		"flow": state,
	}, "Logged out successfully"))
}

// handleSession performs the existing-session check at wizard start. A
// valid credential restores the session straight to the dashboard.
func (s *Server) handleSession(c *gin.Context) {
	sid := s.flowSessionID(c)

	user, err := s.getCurrentUser(c)
	if err != nil {
		c.JSON(http.StatusOK, utils.NewSuccessResponse(map[string]interface{}{
			"authenticated": false,
			"flow":          s.flow.Get(sid),
		}, ""))
		return
	}

	state := s.flow.Restore(sid)
	c.JSON(http.StatusOK, utils.NewSuccessResponse(map[string]interface{}{
		"authenticated": true,
		"user":          user,
		"flow":          state,
	}, ""))
}
