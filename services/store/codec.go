package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownAction is returned when an encoded action carries an unrecognised type tag.
var ErrUnknownAction = errors.New("unknown action type")

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type decodeFunc func(payload json.RawMessage) (Action, error)

var decoders = map[string]decodeFunc{}

// registerDecoder makes T decodable. The decoder yields T itself, the value
// type Reduce switches on.
func registerDecoder[T Action]() {
	var zero T
	decoders[zero.Type()] = func(payload json.RawMessage) (Action, error) {
		var v T
		if len(payload) > 0 && string(payload) != "null" {
			if err := json.Unmarshal(payload, &v); err != nil {
				return nil, err
			}
		}
		return v, nil
	}
}

func init() {
	registerDecoder[Navigate]()
	registerDecoder[GoBack]()
	registerDecoder[Login]()
	registerDecoder[Logout]()
	registerDecoder[Register]()
	registerDecoder[ToggleFavourite]()
	registerDecoder[SendEnquiry]()
	registerDecoder[ReplyEnquiry]()
	registerDecoder[CloseEnquiry]()
	registerDecoder[CreateBooking]()
	registerDecoder[UpdateBookingStatus]()
	registerDecoder[CancelBooking]()
	registerDecoder[SubmitReview]()
	registerDecoder[RespondReview]()
	registerDecoder[UpdateProvider]()
	registerDecoder[UpdateParticipant]()
	registerDecoder[UpgradeTier]()
	registerDecoder[IncrementViews]()
	registerDecoder[Hydrate]()
	registerDecoder[SetFilters]()
	registerDecoder[SelectProvider]()
	registerDecoder[SetDashboardTab]()
	registerDecoder[SetTheme]()
}

// EncodeAction serialises an action as {"type": ..., "payload": ...}.
func EncodeAction(a Action) ([]byte, error) {
	payload, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", a.Type(), err)
	}
	return json.Marshal(envelope{Type: a.Type(), Payload: payload})
}

// DecodeAction parses an action produced by EncodeAction.
func DecodeAction(data []byte) (Action, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode action envelope: %w", err)
	}
	decode, ok := decoders[env.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, env.Type)
	}
	action, err := decode(env.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s payload: %w", env.Type, err)
	}
	return action, nil
}
