package response

import (
	"time"

	"campus-im/internal/model"

	"github.com/google/uuid"
)

// UserInfo is the outward shape of a user; password hash and private key
// blob never leave the server.
type UserInfo struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	PublicKey string    `json:"public_key"`
	CreatedAt string    `json:"created_at"`
}

func FilterUserInfo(user *model.User) *UserInfo {
	if user == nil {
		return nil
	}
	return &UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		PublicKey: user.PublicKey,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

type LoginResponse struct {
	User        *UserInfo `json:"user"`
	AccessToken string    `json:"access_token"`
	SessionID   uuid.UUID `json:"session_id"`
	ExpiresAt   string    `json:"expires_at"`
}

type RegisterResponse struct {
	User *UserInfo `json:"user"`
}

type MessageInfo struct {
	ID          uuid.UUID  `json:"id"`
	SenderID    *uuid.UUID `json:"sender_id,omitempty"`
	RecipientID *uuid.UUID `json:"recipient_id,omitempty"`
	GroupID     *uuid.UUID `json:"group_id,omitempty"`
	Content     []byte     `json:"content"`
	SentAt      string     `json:"sent_at"`
	IsDeleted   bool       `json:"is_deleted"`
}

func FilterMessageInfo(m *model.Message) *MessageInfo {
	if m == nil {
		return nil
	}
	info := &MessageInfo{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		GroupID:     m.GroupID,
		SentAt:      m.SentAt.Format(time.RFC3339),
		IsDeleted:   m.IsDeleted,
	}
	if !m.IsDeleted {
		info.Content = m.Content
	}
	return info
}

func FilterMessageList(ms []*model.Message) []*MessageInfo {
	out := make([]*MessageInfo, 0, len(ms))
	for _, m := range ms {
		out = append(out, FilterMessageInfo(m))
	}
	return out
}
