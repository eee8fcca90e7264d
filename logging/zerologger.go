package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	RoomIDKey       string = "roomID"
	RoomCodeKey     string = "roomCode"
	RoundKey        string = "round"
	SlotKey         string = "slot"
	PlayerNameKey   string = "playerName"
	EventNameKey    string = "eventName"
	ActionKey       string = "action"
	TurnPhaseKey    string = "turnPhase"
	BusyKeyKey      string = "busyKey"
	TimerPurposeKey string = "purpose"
)

func getEnableColorLog() string {
	v := os.Getenv("COLORIZE_LOG")
	if v == "" {
		// Use colorized logging by default.
		return "true"
	}
	return v
}

func IsColorLoggingEnabled() bool {
	return getEnableColorLog() == "1" || strings.ToLower(getEnableColorLog()) == "true"
}

func GetZeroLogger(name string, out io.Writer) *zerolog.Logger {
	if out == nil {
		out = os.Stdout
	}
	noColor := !IsColorLoggingEnabled()
	output := zerolog.ConsoleWriter{Out: out, NoColor: noColor, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Str("logger", name).Logger()
	return &logger
}
