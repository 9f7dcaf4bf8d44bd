package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"pollboard/internal/account"
	"pollboard/internal/auth"
)

func (s *Server) handleUserRegister(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req, registerMessages) {
		return
	}
	user, err := s.users.Register(account.RegistrationInput{
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
	c.JSON(http.StatusCreated, user)
}

func (s *Server) handleUserLogin(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, loginMessages) {
		return
	}
	user, err := s.users.Authenticate(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := s.tokens.Issue(user.ID, auth.RoleUser)
	if err != nil {
		slog.Error("token issue failed", "error", err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

func (s *Server) handleUserGet(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	user, err := s.users.ByID(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleUserUpdate(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	var req profileUpdateRequest
	if !bindJSON(c, &req, registerMessages) {
		return
	}
	user, err := s.users.Update(userID, account.ProfileUpdate{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleActivePolls(c *gin.Context) {
	polls, err := s.polls.ActivePolls()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, polls)
}

func (s *Server) handlePollGet(c *gin.Context) {
	pollID, ok := pathID(c, "pollId")
	if !ok {
		return
	}
	found, err := s.polls.PollByID(pollID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, found)
}

func (s *Server) handlePollOptions(c *gin.Context) {
	pollID, ok := pathID(c, "pollId")
	if !ok {
		return
	}
	options, err := s.polls.PollOptions(pollID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

func (s *Server) handlePollResults(c *gin.Context) {
	pollID, ok := pathID(c, "pollId")
	if !ok {
		return
	}
	results, err := s.polls.PollResults(pollID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) handleSubmitVote(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	pollID, ok := pathID(c, "pollId")
	if !ok {
		return
	}
	var req voteRequest
	if !bindJSON(c, &req, voteMessages) {
		return
	}
	response, err := s.polls.SubmitVote(userID, pollID, uint(req.OptionID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Vote submitted successfully",
		"response": response,
	})
}

func (s *Server) handleHasVoted(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	pollID, ok := pathID(c, "pollId")
	if !ok {
		return
	}
	voted, err := s.polls.HasVoted(userID, pollID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasVoted": voted})
}

func (s *Server) handleVotedPolls(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	polls, err := s.polls.PollsVotedBy(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, polls)
}
