package service

import (
	"encoding/json"
	"fmt"
	"time"

	"campus-im/internal/model"
	"campus-im/internal/repository"
	"campus-im/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notifier pushes a payload to a connected user. Delivery is best-effort
// and happens outside any transaction.
type Notifier interface {
	SendToUser(userID uuid.UUID, payload []byte)
}

// MessageService owns message creation, reactions and history reads.
type MessageService struct {
	db       *gorm.DB
	notifier Notifier // may be nil
}

func NewMessageService(db *gorm.DB, notifier Notifier) *MessageService {
	return &MessageService{db: db, notifier: notifier}
}

// SendMessage stores an encrypted message addressed to exactly one of a
// recipient or a group, plus the notification rows for everyone who should
// see it. The addressing rule is validated here before touching the store;
// the model hook backs it as a store-level constraint.
func (s *MessageService) SendMessage(senderID uuid.UUID, recipientID, groupID *uuid.UUID, content []byte) (*model.Message, error) {
	if (recipientID == nil) == (groupID == nil) {
		return nil, apperrors.ErrMessageAddressing
	}
	if len(content) == 0 {
		return nil, apperrors.Validation("message content is required")
	}

	message := &model.Message{
		ID:          uuid.New(),
		SenderID:    &senderID,
		RecipientID: recipientID,
		GroupID:     groupID,
		Content:     content,
		SentAt:      time.Now(),
	}

	var targets []uuid.UUID

	err := s.db.Transaction(func(tx *gorm.DB) error {
		users := repository.NewUserRepository(tx)
		sender, err := users.GetByID(senderID)
		if err != nil {
			return apperrors.FromStore(err, "sender not found")
		}

		if recipientID != nil {
			if *recipientID == senderID {
				return apperrors.Validation("cannot send a message to yourself")
			}
			if _, err := users.GetByID(*recipientID); err != nil {
				return apperrors.FromStore(err, "recipient not found")
			}
			targets = []uuid.UUID{*recipientID}
		} else {
			groups := repository.NewGroupRepository(tx)
			if _, err := groups.GetByID(*groupID); err != nil {
				return apperrors.FromStore(err, "group not found")
			}
			if _, err := groups.GetMember(*groupID, senderID); err != nil {
				return apperrors.FromStore(err, "sender is not a member of the group")
			}
			members, err := groups.ListMembers(*groupID)
			if err != nil {
				return err
			}
			for _, m := range members {
				if m.UserID != senderID {
					targets = append(targets, m.UserID)
				}
			}
		}

		if err := repository.NewMessageRepository(tx).Create(message); err != nil {
			return apperrors.FromStore(err, "create message")
		}

		notifications := make([]*model.Notification, 0, len(targets))
		for _, target := range targets {
			notifications = append(notifications, &model.Notification{
				ID:      uuid.New(),
				UserID:  target,
				Type:    model.NotificationMessage,
				Content: fmt.Sprintf("new message from %s", sender.Username),
			})
		}
		if err := repository.NewNotificationRepository(tx).CreateBatch(notifications); err != nil {
			return apperrors.FromStore(err, "create notifications")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.pushNew(message, targets)
	return message, nil
}

// pushNew notifies connected targets after the transaction committed.
func (s *MessageService) pushNew(message *model.Message, targets []uuid.UUID) {
	if s.notifier == nil {
		return
	}
	payload, err := json.Marshal(map[string]interface{}{
		"type":       "message",
		"message_id": message.ID,
		"sender_id":  message.SenderID,
		"group_id":   message.GroupID,
		"sent_at":    message.SentAt.Unix(),
	})
	if err != nil {
		return
	}
	for _, target := range targets {
		s.notifier.SendToUser(target, payload)
	}
}

// ReactToMessage attaches an emoji reaction. A duplicate (message, user,
// emoji) triple surfaces as a constraint violation.
func (s *MessageService) ReactToMessage(messageID, userID uuid.UUID, emoji string) (*model.Reaction, error) {
	if emoji == "" {
		return nil, apperrors.Validation("emoji is required")
	}

	reaction := &model.Reaction{
		MessageID: messageID,
		UserID:    userID,
		Emoji:     emoji,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := repository.NewMessageRepository(tx).GetByID(messageID); err != nil {
			return apperrors.FromStore(err, "message not found")
		}
		if err := repository.NewReactionRepository(tx).Create(reaction); err != nil {
			return apperrors.FromStore(err, "create reaction")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reaction, nil
}

// DeleteMessage flips the user-facing deletion flag on the sender's own
// message. The row stays for audit.
func (s *MessageService) DeleteMessage(messageID, userID uuid.UUID) error {
	messages := repository.NewMessageRepository(s.db)
	m, err := messages.GetByID(messageID)
	if err != nil {
		return apperrors.FromStore(err, "message not found")
	}
	if m.SenderID == nil || *m.SenderID != userID {
		return apperrors.Forbidden("only the sender can delete a message")
	}
	if err := messages.MarkDeleted(messageID); err != nil {
		return apperrors.FromStore(err, "delete message")
	}
	return nil
}

// ListDirect returns the direct history between the caller and another
// user.
func (s *MessageService) ListDirect(userID, otherID uuid.UUID, limit, offset int) ([]*model.Message, error) {
	limit = clampPage(limit)
	ms, err := repository.NewMessageRepository(s.db).ListDirect(userID, otherID, limit, offset)
	if err != nil {
		return nil, apperrors.FromStore(err, "list messages")
	}
	return ms, nil
}

// ListGroup returns a group's history; the caller must be a member.
func (s *MessageService) ListGroup(groupID, userID uuid.UUID, limit, offset int) ([]*model.Message, error) {
	groups := repository.NewGroupRepository(s.db)
	if _, err := groups.GetMember(groupID, userID); err != nil {
		return nil, apperrors.FromStore(err, "not a member of the group")
	}
	limit = clampPage(limit)
	ms, err := repository.NewMessageRepository(s.db).ListGroup(groupID, limit, offset)
	if err != nil {
		return nil, apperrors.FromStore(err, "list messages")
	}
	return ms, nil
}

func clampPage(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}
