package domain

import "errors"

// Token is an opaque authentication key issued to a user.
type Token struct {
	Key       string
	UserID    int64
	CreatedAt string
}

func (t *Token) Validate() error {
	if t.Key == "" {
		return errors.New("key cannot be empty")
	}
	if t.UserID <= 0 {
		return errors.New("user ID cannot be empty")
	}
	return nil
}
