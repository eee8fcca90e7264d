package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"tycoon.com/client/game"
	"tycoon.com/client/internal"
	"tycoon.com/client/nats"
	"tycoon.com/client/util"
)

var restLogger = log.With().Str("logger_name", "rest::rest").Logger()
var natsGameManager *nats.GameManager
var gameManager *game.Manager

type appError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type roomStatus struct {
	RoomCode string `json:"roomCode"`
	RoomID   uint64 `json:"roomId"`
}

// RunRestServer exposes the ops surface: readiness, room inspection and
// prometheus metrics.
func RunRestServer(gm *nats.GameManager, manager *game.Manager) {
	natsGameManager = gm
	gameManager = manager
	r := gin.Default()

	r.GET("/ready", ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/rooms", listRooms)
	r.GET("/rooms/:code", roomSnapshot)
	r.POST("/rooms", newRoom)
	r.POST("/rooms/:code/resume", resumeRoom)
	r.DELETE("/rooms/:code", endRoom)

	r.Run(fmt.Sprintf(":%d", util.Env.GetRestPort()))
}

func ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func listRooms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rooms": gameManager.ActiveRoomCodes()})
}

// roomSnapshot dumps the current state of a room. Diagnostic only; the
// UI reads state in process, not over HTTP.
func roomSnapshot(c *gin.Context) {
	code := c.Param("code")
	engine := gameManager.GetEngine(code)
	if engine == nil {
		c.IndentedJSON(http.StatusNotFound, appError{
			Code:    http.StatusNotFound,
			Message: fmt.Sprintf("No active room %s", code),
		})
		return
	}
	c.JSON(http.StatusOK, engine.State())
}

func newRoom(c *gin.Context) {
	var payload struct {
		RoomCode string `json:"roomCode"`
		RoomID   uint64 `json:"roomId"`
	}
	if err := c.BindJSON(&payload); err != nil {
		restLogger.Error().Msgf("Failed to parse new room payload. Error: %v", err)
		c.IndentedJSON(http.StatusBadRequest, appError{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
		return
	}

	if _, err := natsGameManager.NewRoom(payload.RoomCode, payload.RoomID); err != nil {
		restLogger.Error().Msgf("Unable to initialize room %s: %v", payload.RoomCode, err)
		c.IndentedJSON(http.StatusInternalServerError, appError{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		})
		return
	}
	internal.RoomCodeCache.Add(payload.RoomID, payload.RoomCode)

	c.JSON(http.StatusOK, roomStatus{
		RoomCode: payload.RoomCode,
		RoomID:   payload.RoomID,
	})
}

func resumeRoom(c *gin.Context) {
	code := c.Param("code")
	if _, err := natsGameManager.ResumeRoom(code); err != nil {
		restLogger.Error().Msgf("Unable to resume room %s: %v", code, err)
		c.IndentedJSON(http.StatusNotFound, appError{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, roomStatus{RoomCode: code})
}

func endRoom(c *gin.Context) {
	code := c.Param("code")
	natsGameManager.EndRoom(code)
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
