// Package server is the HTTP boundary: request DTOs, field validation
// and the mapping from service failures to transport responses. The
// services underneath never see gin.
package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pollboard/internal/account"
	"pollboard/internal/auth"
	"pollboard/internal/config"
	"pollboard/internal/db"
	"pollboard/internal/poll"
)

type Server struct {
	users  *account.Users
	admins *account.Admins
	polls  *poll.Service
	tokens *auth.TokenIssuer
	cfg    config.Config
}

func New(conn *gorm.DB, cfg config.Config) *Server {
	hasher := auth.NewHasher(cfg.BcryptCost)
	userRepo := db.NewUserRepo(conn)
	adminRepo := db.NewAdminRepo(conn)
	pollRepo := db.NewPollRepo(conn)
	optionRepo := db.NewOptionRepo(conn)
	responseRepo := db.NewResponseRepo(conn)
	return &Server{
		users:  account.NewUsers(userRepo, hasher),
		admins: account.NewAdmins(adminRepo, hasher),
		polls:  poll.NewService(conn, pollRepo, optionRepo, responseRepo, adminRepo, userRepo),
		tokens: auth.NewTokenIssuer(cfg.TokenSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute),
		cfg:    cfg,
	}
}

func (s *Server) Router() *gin.Engine {
	registerValidators()
	engine := gin.New()
	engine.Use(requestLogger(), recoveryMiddleware(), s.bearerIdentity())

	api := engine.Group("/api")

	user := api.Group("/user")
	user.POST("/register", s.handleUserRegister)
	user.POST("/login", s.handleUserLogin)
	user.GET("/:userId", s.handleUserGet)
	user.PUT("/:userId", s.handleUserUpdate)
	user.GET("/polls/active", s.handleActivePolls)
	user.GET("/polls/:pollId", s.handlePollGet)
	user.GET("/polls/:pollId/options", s.handlePollOptions)
	user.GET("/polls/:pollId/results", s.handlePollResults)
	user.POST("/:userId/polls/:pollId/vote", s.handleSubmitVote)
	user.GET("/:userId/polls/:pollId/voted", s.handleHasVoted)
	user.GET("/:userId/voted-polls", s.handleVotedPolls)

	admin := api.Group("/admin")
	admin.POST("/register", s.handleAdminRegister)
	admin.POST("/login", s.handleAdminLogin)
	admin.GET("/:adminId", s.handleAdminGet)
	admin.PUT("/:adminId", s.handleAdminUpdate)
	admin.POST("/:adminId/polls", s.handleCreatePoll)
	admin.GET("/:adminId/polls", s.handleAdminPolls)
	admin.GET("/:adminId/polls/active", s.handleAdminActivePolls)
	admin.PUT("/:adminId/polls/:pollId", s.handleUpdatePoll)
	admin.PATCH("/:adminId/polls/:pollId/activate", s.handleActivatePoll)
	admin.PATCH("/:adminId/polls/:pollId/deactivate", s.handleDeactivatePoll)
	admin.DELETE("/:adminId/polls/:pollId", s.handleDeletePoll)
	admin.GET("/polls/:pollId/results", s.handlePollResults)
	admin.GET("/polls/:pollId/options", s.handlePollOptions)

	return engine
}
