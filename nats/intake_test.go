package nats

import (
	"testing"

	"tycoon.com/client/game"
)

func TestMapEvent(t *testing.T) {
	tests := []struct {
		name  string
		event string
		data  string
		want  string
	}{
		{"dice", EventDiceResult, `{"slot":1,"die1":3,"die2":4}`, "DICE_RESULT"},
		{"moved", EventPlayerMoved, `{"slot":2,"from":5,"to":12,"goBonus":0}`, "PLAYER_MOVED"},
		{"bought", EventPropertyBought, `{"slot":1,"cellIndex":5,"price":600,"remainingPoints":14400}`, "PROPERTY_BOUGHT"},
		{"rent", EventRentPaid, `{"fromSlot":2,"toSlot":1,"cellIndex":5,"amount":200}`, "RENT_PAID"},
		{"turn", EventTurnChanged, `{"slot":2,"round":3,"phase":1}`, "TURN_CHANGED"},
		{"card", EventCardDrawn, `{"card":{"slot":1,"title":"Windfall"},"effect":{"pointDeltas":[{"slot":1,"amount":500}]}}`, "CARD_DRAWN"},
		{"chat", EventChatMessage, `{"slot":1,"name":"amy","text":"hi"}`, "CHAT_RECEIVED"},
		{"reset", EventRoomReset, `{}`, "ROOM_RESET"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok := MapEvent(tt.event, []byte(tt.data))
			if !ok {
				t.Fatalf("MapEvent(%s) rejected valid payload", tt.event)
			}
			if a.Name() != tt.want {
				t.Errorf("action = %s, want %s", a.Name(), tt.want)
			}
		})
	}
}

func TestMapEventPayloadValues(t *testing.T) {
	a, ok := MapEvent(EventPlayerMoved, []byte(`{"slot":1,"from":38,"to":2,"goBonus":2000}`))
	if !ok {
		t.Fatal("rejected valid payload")
	}
	moved := a.(game.ActionPlayerMoved)
	if moved.Slot != 1 || moved.From != 38 || moved.To != 2 || moved.GoBonus != 2000 {
		t.Errorf("decoded %+v", moved)
	}
}

func TestMapEventUnknownName(t *testing.T) {
	if _, ok := MapEvent("shiny-new-event", []byte(`{}`)); ok {
		t.Errorf("unknown event accepted")
	}
}

func TestMapEventMalformedPayload(t *testing.T) {
	if _, ok := MapEvent(EventDiceResult, []byte(`{"slot":"not-a-number"`)); ok {
		t.Errorf("malformed payload accepted")
	}
}

func TestSubjects(t *testing.T) {
	if got := GetRoomEventSubject("ABCD"); got != "room.ABCD.events" {
		t.Errorf("event subject = %s", got)
	}
	if got := GetRoomIntentSubject("ABCD"); got != "room.ABCD.intents" {
		t.Errorf("intent subject = %s", got)
	}
}
