package handler

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aibekov/task-tracker/internal/realtime"
	"github.com/aibekov/task-tracker/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

const heartbeatInterval = 30 * time.Second

type BroadcastHandler struct {
	hub    *realtime.Hub
	logger *slog.Logger
}

func NewBroadcastHandler(hub *realtime.Hub, logger *slog.Logger) *BroadcastHandler {
	return &BroadcastHandler{hub: hub, logger: logger.With("component", "broadcast_handler")}
}

type channelAuthRequest struct {
	ChannelName string `json:"channel_name" binding:"required"`
}

// POST /broadcasting/auth
//
// Grants a subscription to the caller's own private channel. A
// malformed name, a nonexistent channel and another user's channel are
// all the same denial.
func (h *BroadcastHandler) Auth(c *gin.Context) {
	var req channelAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	user := middleware.UserFromContext(c)
	if !realtime.Authorize(user, req.ChannelName) {
		respondError(c, http.StatusForbidden, errForbiddenChannel)
		return
	}

	respondSuccess(c, http.StatusOK, "", gin.H{
		"channel_name": req.ChannelName,
		"user_id":      user.ID,
	})
}

// GET /broadcasting/events?channel=user.<id>
//
// SSE stream of the caller's private channel. The channel query param
// defaults to the caller's own channel; anything else is denied like
// Auth above. Missed events are recovered through the notifications
// API, not replayed here.
func (h *BroadcastHandler) Events(c *gin.Context) {
	user := middleware.UserFromContext(c)

	channel := c.Query("channel")
	if channel == "" {
		channel = realtime.ChannelName(user.ID)
	}
	if !realtime.Authorize(user, channel) {
		respondError(c, http.StatusForbidden, errForbiddenChannel)
		return
	}

	sub := h.hub.Subscribe(user.ID)
	defer sub.Close()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	h.logger.DebugContext(c.Request.Context(), "realtime subscription opened", "user_id", user.ID)

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case ev, ok := <-sub.C:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, ev.Data)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", nil)
			return true
		}
	})

	h.logger.DebugContext(c.Request.Context(), "realtime subscription closed", "user_id", user.ID)
}
