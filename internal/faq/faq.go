package faq

import (
	"context"
	"errors"
)

// FAQ is a stored question/answer pair.
type FAQ struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Update carries optional field changes; nil fields are left untouched.
type Update struct {
	Question *string
	Answer   *string
}

var (
	ErrNotFound     = errors.New("faq: not found")
	ErrInvalidInput = errors.New("faq: invalid input")
)

// Store describes FAQ persistence. Implementations re-read on every call so
// admin edits are visible to the chat pipeline immediately.
type Store interface {
	List(ctx context.Context) ([]FAQ, error)
	Create(ctx context.Context, f FAQ) error
	Update(ctx context.Context, id string, upd Update) (FAQ, error)
	Delete(ctx context.Context, id string) error
}
