package model

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultListingImage is used when a submission carries no image
const DefaultListingImage = "https://cdn.poehali.dev/projects/67e01148-e82f-402b-8d12-587402c9a887/files/bf5109cd-10c5-49e3-8b7c-e2ab29a2adbd.jpg"

// ListingStatus moderation state of a listing. Only the three constants below are valid.
type ListingStatus string

const (
	StatusPending  ListingStatus = "pending"
	StatusApproved ListingStatus = "approved"
	StatusRejected ListingStatus = "rejected"
)

// ErrUnknownStatus is returned when parsing anything but pending, approved or rejected
var ErrUnknownStatus = errors.New("unknown listing status")

// ParseListingStatus parses a status string
func ParseListingStatus(s string) (ListingStatus, error) {
	switch st := ListingStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusApproved, StatusRejected:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

// CanTransitionTo reports whether moderation may move a listing from s to next.
// Only pending listings can be decided; approved and rejected are final.
func (s ListingStatus) CanTransitionTo(next ListingStatus) bool {
	return s == StatusPending && (next == StatusApproved || next == StatusRejected)
}

// Listable reports whether listings in this status can be fetched
func (s ListingStatus) Listable() bool {
	return s == StatusPending || s == StatusApproved
}

func (s ListingStatus) String() string { return string(s) }

// Scan implements sql.Scanner
func (s *ListingStatus) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("scan listing status: unsupported type %T", src)
	}
	st, err := ParseListingStatus(raw)
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Value implements driver.Valuer
func (s ListingStatus) Value() (driver.Value, error) {
	if _, err := ParseListingStatus(string(s)); err != nil {
		return nil, err
	}
	return string(s), nil
}

// UnmarshalText rejects unknown statuses when decoding JSON
func (s *ListingStatus) UnmarshalText(b []byte) error {
	st, err := ParseListingStatus(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// Game modes offered by the submission form
const (
	GameModePVP      = "PVP"
	GameModePVE      = "PVE"
	GameModeRoleplay = "Roleplay"
	GameModeVanilla  = "Vanilla"
)

// GameModes in display order
var GameModes = []string{GameModePVP, GameModePVE, GameModeRoleplay, GameModeVanilla}

// PlayerCounts squad size buckets in display order
var PlayerCounts = []string{"1-2", "3-5", "5+"}

// Listing a teammate search post
type Listing struct {
	ID          int64         `db:"id" json:"id"`
	Title       string        `db:"title" json:"title"`
	Description string        `db:"description" json:"description"`
	GameMode    string        `db:"game_mode" json:"game_mode"`
	PlayerCount string        `db:"player_count" json:"player_count"`
	DiscordTag  string        `db:"discord_tag" json:"discord_tag"`
	ImageURL    string        `db:"image_url" json:"image_url"`
	Status      ListingStatus `db:"status" json:"status"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at" json:"-"`
}

// ListingSubmission the public form fields
type ListingSubmission struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"required,max=4000"`
	GameMode    string `json:"game_mode" validate:"required,oneof=PVP PVE Roleplay Vanilla"`
	PlayerCount string `json:"player_count" validate:"required,oneof=1-2 3-5 5+"`
	DiscordTag  string `json:"discord_tag" validate:"required,max=64"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,max=1024,http_url"`
}

// Normalize trims every field and applies the placeholder image
func (s *ListingSubmission) Normalize() {
	s.Title = strings.TrimSpace(s.Title)
	s.Description = strings.TrimSpace(s.Description)
	s.GameMode = strings.TrimSpace(s.GameMode)
	s.PlayerCount = strings.TrimSpace(s.PlayerCount)
	s.DiscordTag = strings.TrimSpace(s.DiscordTag)
	s.ImageURL = strings.TrimSpace(s.ImageURL)
	if s.ImageURL == "" {
		s.ImageURL = DefaultListingImage
	}
}

// Validate normalizes the submission and checks required fields and option sets
func (s *ListingSubmission) Validate() error {
	s.Normalize()
	return validateStruct(s)
}

// NewListing builds a pending listing from a submission
func NewListing(s ListingSubmission) *Listing {
	return &Listing{
		Title:       s.Title,
		Description: s.Description,
		GameMode:    s.GameMode,
		PlayerCount: s.PlayerCount,
		DiscordTag:  s.DiscordTag,
		ImageURL:    s.ImageURL,
		Status:      StatusPending,
	}
}

// StatusUpdate body of a moderation decision
type StatusUpdate struct {
	ID     int64         `json:"id"`
	Status ListingStatus `json:"status"`
}

// IDRequest body carrying only a record id
type IDRequest struct {
	ID int64 `json:"id"`
}
