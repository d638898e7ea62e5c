package identity

import "context"

// UserRepository provides read access to warehouse users
type UserRepository interface {
	// FindByChatID finds a user by external chat ID, or shared.ErrNotFound
	FindByChatID(ctx context.Context, chatID int64) (*User, error)
}
