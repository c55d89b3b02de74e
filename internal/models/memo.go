// Package models defines the domain types for memopad.
package models

import (
	"fmt"
	"time"
)

// Color is one of the fixed set of memo background tags.
type Color string

// The six memo color tags. ColorPeach is the default.
const (
	ColorPeach    Color = "peach"
	ColorMint     Color = "mint"
	ColorLavender Color = "lavender"
	ColorLemon    Color = "lemon"
	ColorRose     Color = "rose"
	ColorSky      Color = "sky"
)

// DefaultColor is applied when a draft leaves the color unspecified.
const DefaultColor = ColorPeach

// Colors returns all valid color tags in display order.
func Colors() []Color {
	return []Color{ColorPeach, ColorMint, ColorLavender, ColorLemon, ColorRose, ColorSky}
}

// Valid reports whether c is one of the enumerated tags.
func (c Color) Valid() bool {
	switch c {
	case ColorPeach, ColorMint, ColorLavender, ColorLemon, ColorRose, ColorSky:
		return true
	}
	return false
}

// ParseColor validates a raw color value at the store boundary. An empty
// value falls back to DefaultColor; an unknown value is rejected rather
// than stored.
func ParseColor(raw string) (Color, error) {
	if raw == "" {
		return DefaultColor, nil
	}
	c := Color(raw)
	if !c.Valid() {
		return "", fmt.Errorf("unknown memo color %q", raw)
	}
	return c, nil
}

// Memo is a user-authored note with a color tag, pin flag, and timestamps.
//
// Invariants: ID is unique within a collection and immutable; UpdatedAt >=
// CreatedAt; Color is always a valid tag. CreatedAt is set once; UpdatedAt
// is refreshed on every mutation, including pin toggles.
type Memo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Color     Color     `json:"color"`
	IsPinned  bool      `json:"is_pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Account is a registered user. PasswordHash is never serialized.
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Hash      string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Session binds a token to an account identity until it expires.
type Session struct {
	Token     string    `json:"-"`
	AccountID string    `json:"account_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
