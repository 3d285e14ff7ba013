package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"cloudapi/internal/models"
	"cloudapi/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	serviceName    = "cloud-api"
	serviceVersion = "2.0"

	apiName    = "Cloud API Microservice"
	apiVersion = "1.0.0"
)

type Handler struct {
	serviceLayer service.Service
	log          *slog.Logger
}

type errorResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func newErrorResponse(c *gin.Context, statusCode int, errMessage string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{Message: errMessage})
}

// newUnauthorizedResponse always advertises the bearer scheme in the
// challenge header.
func newUnauthorizedResponse(c *gin.Context, errMessage string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Message: errMessage})
}

func NewHandler(srvc service.Service, lgr *slog.Logger) *Handler {
	return &Handler{
		serviceLayer: srvc,
		log:          lgr,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery(), RequestID(), h.RequestLogger())

	router.GET("/", h.HealthCheck)
	router.GET("/info", h.Info)
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)

	protected := router.Group("/")
	protected.Use(h.AuthMiddleware())
	{
		protected.GET("/me", h.Me)
	}

	return router
}

// GET /
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   serviceName,
		"version":   serviceVersion,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// GET /info
func (h *Handler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":      apiName,
		"version":   apiVersion,
		"endpoints": []string{"/", "/info", "/register", "/login", "/me"},
	})
}

// POST /register
func (h *Handler) Register(c *gin.Context) {
	const op = "handler.Register"

	log := h.log.With(slog.String("op", op))

	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind register request", slog.Any("error", err))

		newErrorResponse(c, http.StatusBadRequest, "invalid request body")

		return
	}

	profile, err := h.serviceLayer.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.FullName)
	if err != nil {
		if errors.Is(err, service.ErrAccountExists) {
			log.Info("registration conflict", slog.String("username", req.Username))

			newErrorResponse(c, http.StatusBadRequest, service.ErrAccountExists.Error())

			return
		}

		log.Error("failed to register user", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "failed to register")

		return
	}

	log.Info("user registered", slog.String("username", profile.Username))

	c.JSON(http.StatusCreated, profile)
}

// POST /login
func (h *Handler) Login(c *gin.Context) {
	const op = "handler.Login"

	log := h.log.With(slog.String("op", op))

	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		log.Error("failed to bind login form", slog.Any("error", err))

		newErrorResponse(c, http.StatusBadRequest, "username and password are required")

		return
	}

	token, err := h.serviceLayer.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Info("login rejected", slog.String("username", req.Username))

			newUnauthorizedResponse(c, service.ErrInvalidCredentials.Error())

			return
		}

		log.Error("failed to login user", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "failed to login")

		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// GET /me
func (h *Handler) Me(c *gin.Context) {
	const op = "handler.Me"

	log := h.log.With(slog.String("op", op))

	profile, ok := currentProfile(c)
	if !ok {
		log.Error("no profile in request context")

		newUnauthorizedResponse(c, "invalid token")

		return
	}

	c.JSON(http.StatusOK, profile)
}
