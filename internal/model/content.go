package model

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Content types served by the content endpoint
const (
	ContentNews = "news"
	ContentVip  = "vip"
	ContentClan = "clan"
)

// StringList is stored as a JSON array column
type StringList []string

// Scan implements sql.Scanner
func (l *StringList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*l = StringList{}
		return nil
	default:
		return fmt.Errorf("scan string list: unsupported type %T", src)
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return fmt.Errorf("scan string list: %w", err)
	}
	*l = items
	return nil
}

// Value implements driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// VipTier a priced promotional package, display only
type VipTier struct {
	ID        int64      `db:"id" json:"id"`
	TierID    string     `db:"tier_id" json:"tier_id" validate:"required,max=32"`
	Name      string     `db:"name" json:"name" validate:"required,max=128"`
	Price     int        `db:"price" json:"price" validate:"gte=0"`
	Duration  string     `db:"duration" json:"duration" validate:"required,max=64"`
	Color     string     `db:"color" json:"color" validate:"max=128"`
	IsPopular bool       `db:"is_popular" json:"is_popular"`
	Features  StringList `db:"features" json:"features"`
	SortOrder int        `db:"sort_order" json:"sort_order"`
}

// Validate trims and checks a tier
func (t *VipTier) Validate() error {
	t.TierID = strings.TrimSpace(t.TierID)
	t.Name = strings.TrimSpace(t.Name)
	t.Duration = strings.TrimSpace(t.Duration)
	if t.Features == nil {
		t.Features = StringList{}
	}
	return validateStruct(t)
}

// ClanSection a block of the clan page
type ClanSection struct {
	ID      int64      `db:"id" json:"id"`
	Section string     `db:"section" json:"section" validate:"required,max=64"`
	Title   string     `db:"title" json:"title" validate:"required,max=255"`
	Content string     `db:"content" json:"content"`
	Items   StringList `db:"items" json:"items"`
}

// Validate trims and checks a section
func (s *ClanSection) Validate() error {
	s.Section = strings.TrimSpace(s.Section)
	s.Title = strings.TrimSpace(s.Title)
	if s.Items == nil {
		s.Items = StringList{}
	}
	return validateStruct(s)
}
