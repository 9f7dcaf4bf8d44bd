package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pollboard/internal/account"
	"pollboard/internal/auth"
	"pollboard/internal/poll"
)

func (s *Server) handleAdminRegister(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req, registerMessages) {
		return
	}
	admin, err := s.admins.Register(account.RegistrationInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, admin)
}

func (s *Server) handleAdminLogin(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, loginMessages) {
		return
	}
	admin, err := s.admins.Authenticate(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := s.tokens.Issue(admin.ID, auth.RoleAdmin)
	if err != nil {
		slog.Error("token issue failed", "error", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"admin":   admin,
		"token":   token,
	})
}

func (s *Server) handleAdminGet(c *gin.Context) {
	adminID, ok := pathID(c, "adminId")
	if !ok {
		return
	}
	admin, err := s.admins.ByID(adminID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, admin)
}

func (s *Server) handleAdminUpdate(c *gin.Context) {
	adminID, ok := pathID(c, "adminId")
	if !ok {
		return
	}
	var req profileUpdateRequest
	if !bindJSON(c, &req, registerMessages) {
		return
	}
	admin, err := s.admins.Update(adminID, account.ProfileUpdate{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, admin)
}

func (s *Server) handleCreatePoll(c *gin.Context) {
	adminID, ok := pathID(c, "adminId")
	if !ok {
		return
	}
	var req pollCreateRequest
	if !bindJSON(c, &req, pollCreateMessages) {
		return
	}
	created, err := s.polls.CreatePoll(adminID, poll.CreatePollInput{
		Title:       req.Title,
		Description: req.Description,
		OptionTexts: req.Options,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) handleAdminPolls(c *gin.Context) {
	adminID, ok := pathID(c, "adminId")
	if !ok {
		return
	}
	polls, err := s.polls.PollsByAdmin(adminID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, polls)
}

func (s *Server) handleAdminActivePolls(c *gin.Context) {
	adminID, ok := pathID(c, "adminId")
	if !ok {
		return
	}
	polls, err := s.polls.ActivePollsByAdmin(adminID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, polls)
}

func (s *Server) handleUpdatePoll(c *gin.Context) {
	adminID, ok := pathID(c, "adminId")
	if !ok {
		return
	}
	pollID, ok := pathID(c, "pollId")
	if !ok {
		return
	}
	var req pollUpdateRequest
	if !bindJSON(c, &req, pollUpdateMessages) {
		return
	}
	updated, err := s.polls.UpdatePoll(adminID, pollID, poll.UpdatePollInput{
		Title:       req.Title,
		Description: req.Description,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) handleActivatePoll(c *gin.Context) {
	adminID, ok := pathID(c, "adminId")
	if !ok {
		return
	}
	pollID, ok := pathID(c, "pollId")
	if !ok {
		return
	}
	if err := s.polls.ActivatePoll(adminID, pollID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Poll activated successfully"})
}

func (s *Server) handleDeactivatePoll(c *gin.Context) {
	adminID, ok := pathID(c, "adminId")
	if !ok {
		return
	}
	pollID, ok := pathID(c, "pollId")
	if !ok {
		return
	}
	if err := s.polls.DeactivatePoll(adminID, pollID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Poll deactivated successfully"})
}

func (s *Server) handleDeletePoll(c *gin.Context) {
	adminID, ok := pathID(c, "adminId")
	if !ok {
		return
	}
	pollID, ok := pathID(c, "pollId")
	if !ok {
		return
	}
	if err := s.polls.DeletePoll(adminID, pollID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Poll deleted successfully"})
}
