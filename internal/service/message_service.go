package service

import (
	"context"
	"fmt"
	"time"

	"github.com/weiawesome/amigos-chat/internal/audit"
	"github.com/weiawesome/amigos-chat/internal/cache"
	"github.com/weiawesome/amigos-chat/internal/domain"
	"github.com/weiawesome/amigos-chat/internal/repository"
	"github.com/weiawesome/amigos-chat/pkg/log"
)

type messageServiceImpl struct {
	messages repository.MessageRepository
	lookup   *entityLookup
	clock    func() time.Time
}

// NewMessageService creates a new message service. c may be nil.
func NewMessageService(
	messages repository.MessageRepository,
	users repository.UserRepository,
	groups repository.GroupRepository,
	c cache.Cache,
	cacheTTL time.Duration,
) MessageService {
	return &messageServiceImpl{
		messages: messages,
		lookup:   newEntityLookup(users, groups, c, cacheTTL),
		clock:    time.Now,
	}
}

// SendMessage validates the sender and the target, then persists the
// message stamped with the service clock.
func (s *messageServiceImpl) SendMessage(ctx context.Context, req *domain.SendMessageRequest) (*domain.Message, error) {
	target, err := req.Target()
	if err != nil {
		return nil, invalidInput(err)
	}

	l := log.Ctx(ctx).With().
		Str(log.FieldWalletAddress, req.FromAddress).
		Str(log.FieldMessageType, string(target.Kind())).
		Logger()

	ok, err := s.lookup.userExists(ctx, req.FromAddress)
	if err != nil {
		l.Error().Err(err).Msg("failed to look up sender")
		return nil, fmt.Errorf("failed to look up sender: %w", err)
	}
	if !ok {
		return nil, ErrSenderNotFound
	}

	if to, isPrivate := target.ToAddress(); isPrivate {
		ok, err := s.lookup.userExists(ctx, to)
		if err != nil {
			l.Error().Err(err).Msg("failed to look up recipient")
			return nil, fmt.Errorf("failed to look up recipient: %w", err)
		}
		if !ok {
			return nil, ErrRecipientNotFound
		}
	}

	if groupID, isGroup := target.GroupID(); isGroup {
		ok, err := s.lookup.groupExists(ctx, groupID)
		if err != nil {
			l.Error().Err(err).Msg("failed to look up group")
			return nil, fmt.Errorf("failed to look up group: %w", err)
		}
		if !ok {
			return nil, ErrGroupNotFound
		}
	}

	msg := &domain.Message{
		FromAddress: req.FromAddress,
		Target:      target,
		Content:     req.Content,
		Timestamp:   s.clock().UTC(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		l.Error().Err(err).Msg("failed to store message")
		return nil, fmt.Errorf("failed to store message: %w", err)
	}

	l.Debug().Uint(log.FieldMessageID, msg.ID).Msg("message stored")
	audit.LogWithDetail(ctx, audit.ActionSendMessage, msg.FromAddress, string(target.Kind()), "message sent")
	return msg, nil
}

// GetMessages returns group history when GroupID is set, otherwise the
// private conversation with ToAddress, otherwise nothing. Neither mode
// checks that the requester or target exists.
func (s *messageServiceImpl) GetMessages(ctx context.Context, req *domain.GetMessagesRequest) ([]domain.Message, error) {
	limit := req.EffectiveLimit()

	var (
		messages []domain.Message
		err      error
	)
	switch {
	case req.GroupID != nil:
		messages, err = s.messages.ListGroupMessages(ctx, *req.GroupID, limit)
	case req.ToAddress != nil:
		messages, err = s.messages.ListConversation(ctx, req.UserAddress, *req.ToAddress, limit)
	default:
		return []domain.Message{}, nil
	}
	if err != nil {
		l := log.Ctx(ctx)
		l.Error().Err(err).Str(log.FieldWalletAddress, req.UserAddress).Msg("failed to get messages")
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}

	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}
