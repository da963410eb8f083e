package domain

import (
	"fmt"
	"time"
)

// UserModel is the GORM model for users table.
type UserModel struct {
	ID                    uint      `gorm:"primaryKey;autoIncrement"`
	WalletAddress         string    `gorm:"type:varchar(42);uniqueIndex;not null"`
	Username              string    `gorm:"type:varchar(50);not null"`
	IPFSProfilePicHash    *string   `gorm:"column:ipfs_profile_pic_hash;type:varchar(255)"`
	RegistrationTimestamp time.Time `gorm:"not null"`
	IsRegistered          bool      `gorm:"not null;default:true"`
	CreatedAt             time.Time `gorm:"autoCreateTime;index"`
}

// TableName specifies the table name for UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to domain User.
func (m *UserModel) ToDomain() *User {
	return &User{
		ID:                    m.ID,
		WalletAddress:         m.WalletAddress,
		Username:              m.Username,
		IPFSProfilePicHash:    m.IPFSProfilePicHash,
		RegistrationTimestamp: m.RegistrationTimestamp,
		IsRegistered:          m.IsRegistered,
		CreatedAt:             m.CreatedAt,
	}
}

// UserToModel converts domain User to UserModel.
func UserToModel(u *User) *UserModel {
	return &UserModel{
		ID:                    u.ID,
		WalletAddress:         u.WalletAddress,
		Username:              u.Username,
		IPFSProfilePicHash:    u.IPFSProfilePicHash,
		RegistrationTimestamp: u.RegistrationTimestamp,
		IsRegistered:          u.IsRegistered,
		CreatedAt:             u.CreatedAt,
	}
}

// GroupModel is the GORM model for chat_groups table.
type GroupModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	GroupID   int64     `gorm:"uniqueIndex;not null"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Creator   string    `gorm:"type:varchar(42);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for GroupModel.
func (GroupModel) TableName() string {
	return "chat_groups"
}

// ToDomain converts GroupModel to domain Group.
func (m *GroupModel) ToDomain() *Group {
	return &Group{
		ID:        m.ID,
		GroupID:   m.GroupID,
		Name:      m.Name,
		Creator:   m.Creator,
		CreatedAt: m.CreatedAt,
	}
}

// GroupToModel converts domain Group to GroupModel.
func GroupToModel(g *Group) *GroupModel {
	return &GroupModel{
		ID:        g.ID,
		GroupID:   g.GroupID,
		Name:      g.Name,
		Creator:   g.Creator,
		CreatedAt: g.CreatedAt,
	}
}

// GroupMembershipModel is the GORM model for group_memberships table.
// The composite unique index is what serializes concurrent joins.
type GroupMembershipModel struct {
	ID                uint      `gorm:"primaryKey;autoIncrement"`
	GroupID           int64     `gorm:"not null;uniqueIndex:uidx_group_member,priority:1"`
	UserWalletAddress string    `gorm:"type:varchar(42);not null;uniqueIndex:uidx_group_member,priority:2;index"`
	JoinedAt          time.Time `gorm:"not null"`
}

// TableName specifies the table name for GroupMembershipModel.
func (GroupMembershipModel) TableName() string {
	return "group_memberships"
}

// ToDomain converts GroupMembershipModel to domain GroupMembership.
func (m *GroupMembershipModel) ToDomain() *GroupMembership {
	return &GroupMembership{
		ID:                m.ID,
		GroupID:           m.GroupID,
		UserWalletAddress: m.UserWalletAddress,
		JoinedAt:          m.JoinedAt,
	}
}

// MembershipToModel converts domain GroupMembership to GroupMembershipModel.
func MembershipToModel(gm *GroupMembership) *GroupMembershipModel {
	return &GroupMembershipModel{
		ID:                gm.ID,
		GroupID:           gm.GroupID,
		UserWalletAddress: gm.UserWalletAddress,
		JoinedAt:          gm.JoinedAt,
	}
}

// MessageModel is the GORM model for messages table.
type MessageModel struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	FromAddress string    `gorm:"type:varchar(42);not null;index:idx_messages_from_to,priority:1"`
	ToAddress   *string   `gorm:"type:varchar(42);index:idx_messages_from_to,priority:2"`
	GroupID     *int64    `gorm:"index:idx_messages_group_time,priority:1"`
	Content     string    `gorm:"type:varchar(1000);not null"`
	MessageType string    `gorm:"type:varchar(16);not null"`
	Timestamp   time.Time `gorm:"not null;index:idx_messages_group_time,priority:2"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for MessageModel.
func (MessageModel) TableName() string {
	return "messages"
}

// ToDomain converts MessageModel to domain Message. A row whose nullable
// columns disagree with its message_type is reported as corrupt.
func (m *MessageModel) ToDomain() (*Message, error) {
	target, err := NewTarget(MessageType(m.MessageType), m.ToAddress, m.GroupID)
	if err != nil {
		return nil, fmt.Errorf("message %d: %w", m.ID, err)
	}
	return &Message{
		ID:          m.ID,
		FromAddress: m.FromAddress,
		Target:      target,
		Content:     m.Content,
		Timestamp:   m.Timestamp,
		CreatedAt:   m.CreatedAt,
	}, nil
}

// MessageToModel converts domain Message to MessageModel.
func MessageToModel(msg *Message) *MessageModel {
	to, group := msg.Target.Nullable()
	return &MessageModel{
		ID:          msg.ID,
		FromAddress: msg.FromAddress,
		ToAddress:   to,
		GroupID:     group,
		Content:     msg.Content,
		MessageType: string(msg.Target.Kind()),
		Timestamp:   msg.Timestamp,
		CreatedAt:   msg.CreatedAt,
	}
}

// Models lists every table model, in migration order.
func Models() []any {
	return []any{
		&UserModel{},
		&GroupModel{},
		&GroupMembershipModel{},
		&MessageModel{},
	}
}
