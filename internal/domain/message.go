package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Message history page sizes.
const (
	DefaultMessageLimit = 50
	MaxMessageLimit     = 100
)

// MessageType discriminates private messages from group messages.
type MessageType string

const (
	MessageTypePrivate MessageType = "private"
	MessageTypeGroup   MessageType = "group"
)

// Valid reports whether t is a known message type.
func (t MessageType) Valid() bool {
	return t == MessageTypePrivate || t == MessageTypeGroup
}

var (
	ErrUnknownMessageType = errors.New("unknown message type")
	ErrInvalidTarget      = errors.New("invalid message target")
)

// Target is the addressee of a message: either one peer wallet (private) or
// one group (group). The zero value is not a valid target.
type Target struct {
	kind      MessageType
	toAddress string
	groupID   int64
}

// PrivateTarget addresses a message to a single wallet.
func PrivateTarget(toAddress string) Target {
	return Target{kind: MessageTypePrivate, toAddress: toAddress}
}

// GroupTarget addresses a message to a group.
func GroupTarget(groupID int64) Target {
	return Target{kind: MessageTypeGroup, groupID: groupID}
}

// NewTarget builds a Target from the flat wire shape. Exactly one of
// toAddress and groupID must be set, and it must match kind.
func NewTarget(kind MessageType, toAddress *string, groupID *int64) (Target, error) {
	switch kind {
	case MessageTypePrivate:
		if toAddress == nil || *toAddress == "" {
			return Target{}, fmt.Errorf("%w: private message requires to_address", ErrInvalidTarget)
		}
		if groupID != nil {
			return Target{}, fmt.Errorf("%w: private message must not carry group_id", ErrInvalidTarget)
		}
		return PrivateTarget(*toAddress), nil
	case MessageTypeGroup:
		if groupID == nil {
			return Target{}, fmt.Errorf("%w: group message requires group_id", ErrInvalidTarget)
		}
		if toAddress != nil {
			return Target{}, fmt.Errorf("%w: group message must not carry to_address", ErrInvalidTarget)
		}
		return GroupTarget(*groupID), nil
	default:
		return Target{}, fmt.Errorf("%w: %q", ErrUnknownMessageType, kind)
	}
}

// Kind returns the discriminant.
func (t Target) Kind() MessageType { return t.kind }

// IsZero reports whether t was never constructed.
func (t Target) IsZero() bool { return t.kind == "" }

// ToAddress returns the recipient wallet of a private target.
func (t Target) ToAddress() (string, bool) {
	return t.toAddress, t.kind == MessageTypePrivate
}

// GroupID returns the group of a group target.
func (t Target) GroupID() (int64, bool) {
	return t.groupID, t.kind == MessageTypeGroup
}

// Nullable returns the target as the two nullable columns used in storage
// and on the wire.
func (t Target) Nullable() (toAddress *string, groupID *int64) {
	switch t.kind {
	case MessageTypePrivate:
		addr := t.toAddress
		return &addr, nil
	case MessageTypeGroup:
		id := t.groupID
		return nil, &id
	}
	return nil, nil
}

// Message is a persisted chat message. Messages are immutable.
type Message struct {
	ID          uint
	FromAddress string
	Target      Target
	Content     string
	Timestamp   time.Time
	CreatedAt   time.Time
}

type messageJSON struct {
	ID          uint        `json:"id"`
	FromAddress string      `json:"from_address"`
	ToAddress   *string     `json:"to_address"`
	GroupID     *int64      `json:"group_id"`
	Content     string      `json:"content"`
	MessageType MessageType `json:"message_type"`
	Timestamp   time.Time   `json:"timestamp"`
	CreatedAt   time.Time   `json:"created_at"`
}

// MarshalJSON flattens the target into to_address/group_id/message_type.
func (m Message) MarshalJSON() ([]byte, error) {
	to, group := m.Target.Nullable()
	return json.Marshal(messageJSON{
		ID:          m.ID,
		FromAddress: m.FromAddress,
		ToAddress:   to,
		GroupID:     group,
		Content:     m.Content,
		MessageType: m.Target.Kind(),
		Timestamp:   m.Timestamp,
		CreatedAt:   m.CreatedAt,
	})
}

// UnmarshalJSON rebuilds the target, rejecting inconsistent shapes.
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw messageJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	target, err := NewTarget(raw.MessageType, raw.ToAddress, raw.GroupID)
	if err != nil {
		return err
	}

	*m = Message{
		ID:          raw.ID,
		FromAddress: raw.FromAddress,
		Target:      target,
		Content:     raw.Content,
		Timestamp:   raw.Timestamp,
		CreatedAt:   raw.CreatedAt,
	}
	return nil
}

// SendMessageRequest represents a sendMessage call.
type SendMessageRequest struct {
	FromAddress string      `json:"from_address" binding:"required"`
	ToAddress   *string     `json:"to_address"`
	GroupID     *int64      `json:"group_id"`
	Content     string      `json:"content" binding:"required,min=1,max=1000"`
	MessageType MessageType `json:"message_type" binding:"required,oneof=private group"`
}

// Target converts the flat request fields into a Target.
func (r *SendMessageRequest) Target() (Target, error) {
	return NewTarget(r.MessageType, r.ToAddress, r.GroupID)
}

// GetMessagesRequest represents a getMessages call.
type GetMessagesRequest struct {
	UserAddress string  `json:"user_address" binding:"required"`
	GroupID     *int64  `json:"group_id"`
	ToAddress   *string `json:"to_address"`
	Limit       *int    `json:"limit" binding:"omitempty,min=1,max=100"`
}

// EffectiveLimit returns the requested limit, defaulted and clamped.
func (r *GetMessagesRequest) EffectiveLimit() int {
	if r.Limit == nil || *r.Limit < 1 {
		return DefaultMessageLimit
	}
	if *r.Limit > MaxMessageLimit {
		return MaxMessageLimit
	}
	return *r.Limit
}
