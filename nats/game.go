package nats

import (
	"fmt"
	"time"

	natsgo "github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	jsoniter "github.com/json-iterator/go"

	"tycoon.com/client/game"
	"tycoon.com/client/logging"
	"tycoon.com/client/util"
)

var natsRoomLogger = log.With().Str("logger_name", "nats::game").Logger()

// intentAckTimeout bounds how long an intent request waits for the
// server's acknowledgment.
const intentAckTimeout = 5 * time.Second

// NatsRoom attaches one room's engine to its NATS subjects: it decodes
// the event stream into reducer actions and sends player intents as
// request/reply messages.
type NatsRoom struct {
	roomCode string

	nc     *natsgo.Conn
	engine *game.Engine

	eventSubject  string
	intentSubject string
	eventSub      *natsgo.Subscription
}

// intentAck is the reply payload for every intent request.
type intentAck struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func newNatsRoom(nc *natsgo.Conn, engine *game.Engine) (*NatsRoom, error) {
	r := &NatsRoom{
		roomCode:      engine.RoomCode(),
		nc:            nc,
		engine:        engine,
		eventSubject:  GetRoomEventSubject(engine.RoomCode()),
		intentSubject: GetRoomIntentSubject(engine.RoomCode()),
	}

	sub, err := nc.Subscribe(r.eventSubject, r.onEvent)
	if err != nil {
		return nil, errors.Wrapf(err, "Unable to subscribe to subject %s", r.eventSubject)
	}
	r.eventSub = sub
	natsRoomLogger.Info().
		Str(logging.RoomCodeKey, r.roomCode).
		Msgf("Subscribed to %s", r.eventSubject)
	return r, nil
}

func (r *NatsRoom) cleanup() {
	if r.eventSub != nil {
		r.eventSub.Unsubscribe()
		r.eventSub = nil
	}
}

// onEvent decodes one server event envelope and hands the mapped action
// to the engine. Malformed or unknown events are counted and dropped;
// the stream must never crash the room.
func (r *NatsRoom) onEvent(msg *natsgo.Msg) {
	util.Metrics.EventReceived()

	var env EventEnvelope
	if err := jsoniter.Unmarshal(msg.Data, &env); err != nil {
		util.Metrics.EventIgnored()
		natsRoomLogger.Warn().
			Str(logging.RoomCodeKey, r.roomCode).
			Msgf("Dropping undecodable event envelope: %s", err)
		return
	}

	action, ok := MapEvent(env.Name, env.Data)
	if !ok {
		util.Metrics.EventIgnored()
		natsRoomLogger.Warn().
			Str(logging.RoomCodeKey, r.roomCode).
			Str(logging.EventNameKey, env.Name).
			Msg("Dropping unknown or malformed event")
		return
	}

	natsRoomLogger.Debug().
		Str(logging.RoomCodeKey, r.roomCode).
		Str(logging.EventNameKey, env.Name).
		Str(logging.ActionKey, action.Name()).
		Msgf("Event seq %d", env.Seq)
	r.engine.DispatchEvent(env.Seq, action)
}

// sendIntent publishes one intent request and waits for the ack. A
// rejected or timed-out intent surfaces as an error action so the UI
// state can show it; it never mutates the board directly.
func (r *NatsRoom) sendIntent(name string, payload interface{}) error {
	body, err := jsoniter.Marshal(map[string]interface{}{
		"name": name,
		"data": payload,
	})
	if err != nil {
		return errors.Wrapf(err, "Unable to marshal intent %s", name)
	}

	msg, err := r.nc.Request(r.intentSubject, body, intentAckTimeout)
	if err != nil {
		util.Metrics.IntentFailed()
		r.engine.Dispatch(game.ActionIntentFailed{Err: fmt.Sprintf("%s: %s", name, err)})
		return errors.Wrapf(err, "Intent %s got no ack", name)
	}

	var ack intentAck
	if err := jsoniter.Unmarshal(msg.Data, &ack); err != nil {
		util.Metrics.IntentFailed()
		r.engine.Dispatch(game.ActionIntentFailed{Err: fmt.Sprintf("%s: undecodable ack", name)})
		return errors.Wrapf(err, "Unable to parse ack for intent %s", name)
	}
	if !ack.Success {
		util.Metrics.IntentFailed()
		natsRoomLogger.Info().
			Str(logging.RoomCodeKey, r.roomCode).
			Msgf("Intent %s rejected: %s", name, ack.Error)
		r.engine.Dispatch(game.ActionIntentFailed{Err: ack.Error})
		return fmt.Errorf("intent %s rejected: %s", name, ack.Error)
	}
	return nil
}

//
// Player intents. Every mutation of shared game state goes through the
// server; the confirmed outcome comes back on the event stream.
//

func (r *NatsRoom) RollDice() error {
	return r.sendIntent("roll-dice", nil)
}

func (r *NatsRoom) BuyProperty(cellIndex uint32) error {
	return r.sendIntent("buy-property", map[string]uint32{"cellIndex": cellIndex})
}

func (r *NatsRoom) Build(cellIndex uint32, count uint32) error {
	return r.sendIntent("build", map[string]uint32{"cellIndex": cellIndex, "count": count})
}

func (r *NatsRoom) SellBuildings(cells []uint32) error {
	return r.sendIntent("sell-buildings", map[string]interface{}{"cells": cells})
}

func (r *NatsRoom) TravelTo(cellIndex uint32) error {
	return r.sendIntent("travel-to", map[string]uint32{"cellIndex": cellIndex})
}

func (r *NatsRoom) BuybackChoose(accept bool) error {
	return r.sendIntent("buyback-choose", map[string]bool{"accept": accept})
}

func (r *NatsRoom) ForcedTradeChoose(gaveCell uint32, tookCell uint32) error {
	return r.sendIntent("forced-trade-choose", map[string]uint32{
		"gaveCell": gaveCell,
		"tookCell": tookCell,
	})
}

func (r *NatsRoom) RentFreezeChoose(cellIndex uint32) error {
	return r.sendIntent("rent-freeze-choose", map[string]uint32{"cellIndex": cellIndex})
}

func (r *NatsRoom) UseAbility(ability string) error {
	return r.sendIntent("use-ability", map[string]string{"ability": ability})
}

func (r *NatsRoom) SendChat(text string) error {
	return r.sendIntent("chat", map[string]string{"text": text})
}

func (r *NatsRoom) LeaveRoom() error {
	err := r.sendIntent("leave-room", nil)
	r.engine.Dispatch(game.ActionLeaveRoom{})
	return err
}
