package domain

import (
	"time"
)

// WalletAddressLength is the length of an Ethereum-style account address.
const WalletAddressLength = 42

// User is a registered chat participant, identified by wallet address.
type User struct {
	ID                    uint      `json:"id"`
	WalletAddress         string    `json:"wallet_address"`
	Username              string    `json:"username"`
	IPFSProfilePicHash    *string   `json:"ipfs_profile_pic_hash"`
	RegistrationTimestamp time.Time `json:"registration_timestamp"`
	IsRegistered          bool      `json:"is_registered"`
	CreatedAt             time.Time `json:"created_at"`
}

// RegisterUserRequest represents a registerUser call.
type RegisterUserRequest struct {
	WalletAddress      string  `json:"wallet_address" binding:"required,len=42"`
	Username           string  `json:"username" binding:"required,min=3,max=50"`
	IPFSProfilePicHash *string `json:"ipfs_profile_pic_hash"`
}

// GetUserRequest represents a getUser call.
type GetUserRequest struct {
	WalletAddress string `json:"wallet_address" binding:"required"`
}
