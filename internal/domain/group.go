package domain

import (
	"time"
)

// Group mirrors an on-chain chat group. GroupID is assigned by the chain,
// ID is the local surrogate key.
type Group struct {
	ID        uint      `json:"id"`
	GroupID   int64     `json:"group_id"`
	Name      string    `json:"name"`
	Creator   string    `json:"creator"`
	CreatedAt time.Time `json:"created_at"`
}

// GroupMembership records that a wallet joined a group.
type GroupMembership struct {
	ID                uint      `json:"id"`
	GroupID           int64     `json:"group_id"`
	UserWalletAddress string    `json:"user_wallet_address"`
	JoinedAt          time.Time `json:"joined_at"`
}

// CreateGroupRequest represents a createGroup call.
type CreateGroupRequest struct {
	GroupID *int64 `json:"group_id" binding:"required"`
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Creator string `json:"creator" binding:"required"`
}

// JoinGroupRequest represents a joinGroup call.
type JoinGroupRequest struct {
	GroupID           *int64 `json:"group_id" binding:"required"`
	UserWalletAddress string `json:"user_wallet_address" binding:"required"`
}

// GetUserGroupsRequest represents a getUserGroups call.
type GetUserGroupsRequest struct {
	UserWalletAddress string `json:"user_wallet_address" binding:"required"`
}
