package identity

import (
	"strings"

	"github.com/erp/warehouse-bot/internal/domain/shared"
)

// Role represents a user's role in the warehouse system
type Role string

const (
	RoleAdmin            Role = "admin"
	RoleWarehouseManager Role = "warehouse_manager"
	RoleSalesManager     Role = "sales_manager"
)

// CanReceiveGoods reports whether the role may run the receiving workflow
func (r Role) CanReceiveGoods() bool {
	return r == RoleAdmin || r == RoleWarehouseManager
}

// User links an external chat identity to a role and display name.
// The receiving core only reads users; account management is out of scope.
type User struct {
	shared.BaseEntity
	ChatID int64  `gorm:"not null;uniqueIndex"` // external messenger chat ID
	Role   Role   `gorm:"type:varchar(30);not null"`
	Name   string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user with required fields
func NewUser(chatID int64, role Role, name string) (*User, error) {
	if chatID == 0 {
		return nil, shared.NewDomainError("INVALID_CHAT_ID", "Chat ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "User name cannot be empty")
	}
	switch role {
	case RoleAdmin, RoleWarehouseManager, RoleSalesManager:
	default:
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}
	return &User{
		BaseEntity: shared.NewBaseEntity(),
		ChatID:     chatID,
		Role:       role,
		Name:       name,
	}, nil
}
