package service

import (
	"errors"
	"fmt"
)

// Error categories. Transports classify with errors.Is against these.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

var (
	ErrUserNotFound      = fmt.Errorf("user %w", ErrNotFound)
	ErrGroupNotFound     = fmt.Errorf("group %w", ErrNotFound)
	ErrSenderNotFound    = fmt.Errorf("sender %w", ErrNotFound)
	ErrRecipientNotFound = fmt.Errorf("recipient %w", ErrNotFound)

	ErrWalletAddressExists = fmt.Errorf("wallet address %w", ErrAlreadyExists)
	ErrGroupIDExists       = fmt.Errorf("group id %w", ErrAlreadyExists)
	ErrAlreadyMember       = fmt.Errorf("user is already a member of this group: %w", ErrAlreadyExists)
)

// invalidInput tags err as a validation failure while keeping its message.
func invalidInput(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
