package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Wallet string  `json:"wallet_address" binding:"required,len=42"`
	Name   string  `json:"username" binding:"required,min=3,max=50"`
	Kind   string  `json:"message_type" binding:"required,oneof=private group"`
	Limit  *int    `json:"limit" binding:"omitempty,min=1,max=100"`
	Note   *string `json:"note"`
}

func TestStruct(t *testing.T) {
	req := require.New(t)

	ok := sample{Wallet: "0x0000000000000000000000000000000000000001", Name: "alice", Kind: "group"}
	req.NoError(Struct(&ok))

	limit := 0
	bad := sample{Wallet: "0x1", Name: "al", Kind: "broadcast", Limit: &limit}
	err := Struct(&bad)
	req.Error(err)

	msg := Message(err)
	req.Contains(msg, "wallet_address must be exactly 42 characters")
	req.Contains(msg, "username must be at least 3 characters")
	req.Contains(msg, "message_type must be one of [private group]")
	req.Contains(msg, "limit must be at least 1")
}

func TestStruct_Required(t *testing.T) {
	err := Struct(&sample{})
	require.Error(t, err)
	require.Contains(t, Message(err), "wallet_address is required")
}

func TestMessage_PassesThroughOtherErrors(t *testing.T) {
	require.Equal(t, "unexpected EOF", Message(errors.New("unexpected EOF")))
}
