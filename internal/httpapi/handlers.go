package httpapi

import (
	"errors"
	"net/http"
	"time"

	"voice-dashboard/internal/audit"
	"voice-dashboard/internal/auth"
	"voice-dashboard/internal/calls"
	"voice-dashboard/internal/store"
	"voice-dashboard/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return
// JSON. Internal error detail is logged, never returned to the client.
type Handlers struct {
	Calls *calls.Service
	Auth  *auth.Service
	Store store.Store
	Audit *audit.Service
}

// --- Calls ---

// ListCalls returns the call history, most recent first.
func (h Handlers) ListCalls(c *gin.Context) {
	records, err := h.Calls.List(c.Request.Context())
	if err != nil {
		logger.FromGin(c).Error("list calls failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch call records"})
		return
	}
	c.JSON(http.StatusOK, records)
}

type startCallRequest struct {
	AgentID string `json:"agentId"`
	APIKey  string `json:"apiKey"`
}

// StartCall begins a new call against the configured voice agent.
func (h Handlers) StartCall(c *gin.Context) {
	var req startCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}

	res, err := h.Calls.Start(c.Request.Context(), calls.StartRequest{AgentID: req.AgentID, APIKey: req.APIKey})
	if err != nil {
		if errors.Is(err, calls.ErrInvalidArgument) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Agent ID and API Key are required"})
			return
		}
		logger.FromGin(c).Error("start call failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to start call"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"callId": res.CallID, "status": res.Status})
}

// EndCall completes the call identified by the callId path param.
func (h Handlers) EndCall(c *gin.Context) {
	callID := c.Param("callId")

	if _, err := h.Calls.End(c.Request.Context(), callID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "Call not found"})
			return
		}
		logger.FromGin(c).Error("end call failed", "call_id", callID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to end call"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ended", "callId": callID})
}

type muteCallRequest struct {
	Muted bool `json:"muted"`
}

// MuteCall forwards the mute toggle to the vendor and acknowledges it.
// Nothing is persisted: CallRecord has no mute field.
func (h Handlers) MuteCall(c *gin.Context) {
	callID := c.Param("callId")

	var req muteCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid json"})
		return
	}

	if err := h.Calls.Mute(c.Request.Context(), callID, req.Muted); err != nil {
		logger.FromGin(c).Error("mute toggle failed", "call_id", callID, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to toggle mute"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "callId": callID, "muted": req.Muted})
}

// --- Config ---

type saveConfigRequest struct {
	AgentID string `json:"agentId" binding:"required"`
	APIKey  string `json:"apiKey" binding:"required"`
}

// SaveConfig replaces the active vendor credentials. Prior configs stay
// stored but inert.
func (h Handlers) SaveConfig(c *gin.Context) {
	var req saveConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "agentId and apiKey are required"})
		return
	}

	if _, err := h.Store.SaveAPIConfig(c.Request.Context(), store.NewAPIConfig{AgentID: req.AgentID, APIKey: req.APIKey}); err != nil {
		logger.FromGin(c).Error("save config failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to save configuration"})
		return
	}

	if h.Audit != nil {
		if err := h.Audit.LogConfigSaved(c.Request.Context(), req.AgentID); err != nil {
			logger.FromGin(c).Warn("audit append failed", "err", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

type configResponse struct {
	ID        int       `json:"id"`
	AgentID   string    `json:"agentId"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetConfig returns the active configuration. The stored API key is
// never echoed back.
func (h Handlers) GetConfig(c *gin.Context) {
	cfg, err := h.Store.GetAPIConfig(c.Request.Context())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "No configuration found"})
			return
		}
		logger.FromGin(c).Error("get config failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch configuration"})
		return
	}

	c.JSON(http.StatusOK, configResponse{
		ID:        cfg.ID,
		AgentID:   cfg.AgentID,
		IsActive:  cfg.IsActive,
		CreatedAt: cfg.CreatedAt,
	})
}

// --- Auth ---

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a dashboard account.
func (h Handlers) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "username and password are required"})
		return
	}

	u, err := h.Auth.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUsernameTaken):
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"message": "username taken"})
		case errors.Is(err, auth.ErrInvalidArgument):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "username and password are required"})
		default:
			logger.FromGin(c).Error("register failed", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to register"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": u.ID, "username": u.Username})
}

// Login checks credentials and issues a JWT pair.
func (h Handlers) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "username and password are required"})
		return
	}

	pair, err := h.Auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
			return
		}
		logger.FromGin(c).Error("login failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to log in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

// Me returns the identity extracted from the access token.
func (h Handlers) Me(c *gin.Context) {
	uid, err := auth.UserID(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}
	username, _ := auth.Username(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"user_id": uid, "username": username})
}
