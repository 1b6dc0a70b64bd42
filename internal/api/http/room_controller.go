package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"listening-room/internal/api/http/converter"
	"listening-room/internal/domain"
	"listening-room/internal/service"
	"listening-room/lib/logger/sl"
)

const (
	headerSessionID = "X-Session-Id"
)

type RoomController struct {
	rooms     service.RoomInteractor
	log       *slog.Logger
	watchPush time.Duration
	upgrader  websocket.Upgrader
}

func NewRoomController(rooms service.RoomInteractor, log *slog.Logger, watchPush time.Duration) *RoomController {
	if log == nil {
		log = slog.Default()
	}
	if watchPush <= 0 {
		watchPush = 2 * time.Second
	}
	return &RoomController{
		rooms:     rooms,
		log:       log,
		watchPush: watchPush,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (c *RoomController) CreateRoom(ctx *gin.Context) {
	type CreateRoomRequest struct {
		Name    string `json:"name" binding:"required"`
		Genre   string `json:"genre"`
		Pass    string `json:"pass"`
		Num     int    `json:"num"`
		OwnerID string `json:"ownerId"`
	}
	var req CreateRoomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ownerID := req.OwnerID
	if ownerID == "" {
		ownerID = ctx.GetHeader(headerSessionID)
	}

	room, err := c.rooms.CreateRoom(ctx.Request.Context(), service.CreateRoomInput{
		Name:     req.Name,
		Genre:    req.Genre,
		Pass:     req.Pass,
		Capacity: req.Num,
		OwnerID:  ownerID,
	})
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"room": converter.RoomToApi(room)})
}

func (c *RoomController) ListRooms(ctx *gin.Context) {
	rooms, err := c.rooms.ListRooms(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]*converter.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, converter.RoomToApi(room))
	}
	ctx.JSON(http.StatusOK, gin.H{"rooms": out})
}

// GetRoom returns the basic room preview without joining it.
func (c *RoomController) GetRoom(ctx *gin.Context) {
	state, err := c.rooms.Snapshot(ctx.Request.Context(), ctx.Param("roomID"))
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, state)
}

func (c *RoomController) JoinRoom(ctx *gin.Context) {
	type JoinRequest struct {
		UserID string `json:"userId"`
		Pass   string `json:"pass"`
	}
	var req JoinRequest
	// body is optional when the session header carries the user id
	_ = ctx.ShouldBindJSON(&req)

	userID := req.UserID
	if userID == "" {
		userID = ctx.GetHeader(headerSessionID)
	}
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "user id is required"})
		return
	}

	state, err := c.rooms.Join(ctx.Request.Context(), ctx.Param("roomID"), userID, req.Pass)
	if err != nil {
		status := statusForError(err)
		resp := gin.H{"error": "join_not_allowed"}
		var reason domain.JoinReason
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			reason = domain.JoinNotFound
		case errors.Is(err, domain.ErrBadPassword):
			reason = domain.JoinBadPassword
		case errors.Is(err, domain.ErrRoomFull):
			reason = domain.JoinFull
		default:
			resp["error"] = err.Error()
		}
		if reason != "" {
			resp["reason"] = reason
		}
		ctx.JSON(status, resp)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"ok": true, "state": state})
}

// RoomState is the heartbeat poll: it refreshes the caller's presence when
// the caller belongs to the room, then returns the current state.
func (c *RoomController) RoomState(ctx *gin.Context) {
	roomID := ctx.Param("roomID")

	userID := ctx.Query("userId")
	if userID == "" {
		userID = ctx.GetHeader(headerSessionID)
	}

	if userID != "" {
		c.rooms.TouchPresence(ctx.Request.Context(), roomID, userID)
	}

	state, err := c.rooms.Snapshot(ctx.Request.Context(), roomID)
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	belongs := false
	if userID != "" {
		if room, err := c.rooms.GetRoom(ctx.Request.Context(), roomID); err == nil {
			belongs = room.Belongs(userID)
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"state": state, "userBelongsToRoom": belongs})
}

func (c *RoomController) ListPlayers(ctx *gin.Context) {
	view, err := c.rooms.ActiveUsersView(ctx.Request.Context(), ctx.Param("roomID"))
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, view)
}

func (c *RoomController) RemoveUser(ctx *gin.Context) {
	type RemoveUserRequest struct {
		UserID  string `json:"userId" binding:"required"`
		OwnerID string `json:"ownerId"`
	}
	var req RemoveUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	requesterID := ctx.GetHeader(headerSessionID)
	if requesterID == "" {
		requesterID = req.OwnerID
	}
	if requesterID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "owner id is required"})
		return
	}

	roomID := ctx.Param("roomID")
	removed, err := c.rooms.RemoveUser(ctx.Request.Context(), roomID, requesterID, req.UserID)
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	view, err := c.rooms.ActiveUsersView(ctx.Request.Context(), roomID)
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"removed": removed, "players": view})
}

// DeleteRoom is the owner's explicit teardown.
func (c *RoomController) DeleteRoom(ctx *gin.Context) {
	requesterID := ctx.GetHeader(headerSessionID)
	if requesterID == "" {
		requesterID = ctx.Query("ownerId")
	}
	if requesterID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "owner id is required"})
		return
	}

	roomID := ctx.Param("roomID")
	room, err := c.rooms.GetRoom(ctx.Request.Context(), roomID)
	if err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	if room.OwnerID != requesterID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": domain.ErrNotOwner.Error()})
		return
	}

	removed, err := c.rooms.DeleteRoom(ctx.Request.Context(), roomID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"removed": removed})
}

// WatchRoom upgrades to a websocket and streams room state to the
// subscriber. Anything the client sends counts as a heartbeat.
func (c *RoomController) WatchRoom(ctx *gin.Context) {
	roomID := ctx.Param("roomID")

	userID := ctx.Query("userId")
	if userID == "" {
		userID = ctx.GetHeader(headerSessionID)
	}
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "user id is required"})
		return
	}

	if _, err := c.rooms.Snapshot(ctx.Request.Context(), roomID); err != nil {
		ctx.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.log.Error("watch upgrade failed", sl.Err(err))
		return
	}

	watcher := domain.NewWatcher(userID)
	watcher.Socket = conn

	c.rooms.TouchPresence(context.Background(), roomID, userID)

	go forwardWatcherEvents(watcher)
	go c.pushStates(watcher, roomID)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			watcher.Close()
			return
		}
		c.rooms.TouchPresence(context.Background(), roomID, userID)
	}
}

func (c *RoomController) pushStates(watcher *domain.Watcher, roomID string) {
	ticker := time.NewTicker(c.watchPush)
	defer ticker.Stop()

	for range ticker.C {
		state, err := c.rooms.Snapshot(context.Background(), roomID)
		if err != nil {
			watcher.EnqueueEvent(domain.RoomEvent{Type: domain.EventClosed, Room: roomID})
			return
		}

		if !watcher.EnqueueEvent(domain.RoomEvent{Type: domain.EventState, Room: roomID, State: state}) {
			return
		}
	}
}

func forwardWatcherEvents(watcher *domain.Watcher) {
	for event := range watcher.Events() {
		if err := watcher.Socket.WriteJSON(event); err != nil {
			return
		}
		if event.Type == domain.EventClosed {
			watcher.Close()
			return
		}
	}
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrNotOwner), errors.Is(err, domain.ErrBadPassword):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrRoomFull):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNameRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
