package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// News categories
var NewsCategories = []string{"Important", "VIP", "Recruitment", "Rules", "Tips", "Statistics", "Updates", "Security"}

const dateLayout = "2006-01-02"

// Date is a calendar day, encoded as YYYY-MM-DD
type Date struct {
	time.Time
}

// Today returns the current local day
func Today() Date {
	y, m, d := time.Now().Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.Local)}
}

// ParseDate parses YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.Local)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON accepts YYYY-MM-DD, a full RFC 3339 timestamp, null or an empty string
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		y, m, day := t.Date()
		*d = Date{time.Date(y, m, day, 0, 0, 0, 0, time.Local)}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*d = Date{v}
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		*d = parsed
		return err
	case string:
		parsed, err := ParseDate(v)
		*d = parsed
		return err
	case nil:
		*d = Date{}
		return nil
	default:
		return fmt.Errorf("scan date: unsupported type %T", src)
	}
}

// Value implements driver.Valuer
func (d Date) Value() (driver.Value, error) {
	return d.Format(dateLayout), nil
}

// NewsItem an announcement shown on the news page
type NewsItem struct {
	ID          int64     `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Date        Date      `db:"date" json:"date"`
	Category    string    `db:"category" json:"category"`
	Content     string    `db:"content" json:"content"`
	ImageURL    *string   `db:"image_url" json:"image_url,omitempty"`
	IsImportant bool      `db:"is_important" json:"is_important"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// NewsDraft fields accepted when publishing news
type NewsDraft struct {
	Title       string `json:"title" validate:"required,max=255"`
	Date        Date   `json:"date"`
	Category    string `json:"category" validate:"required,oneof=Important VIP Recruitment Rules Tips Statistics Updates Security"`
	Content     string `json:"content" validate:"required"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,max=1024,http_url"`
	IsImportant bool   `json:"is_important"`
}

// Validate trims the draft, defaults the date to today and checks it
func (d *NewsDraft) Validate() error {
	d.Title = strings.TrimSpace(d.Title)
	d.Category = strings.TrimSpace(d.Category)
	d.Content = strings.TrimSpace(d.Content)
	d.ImageURL = strings.TrimSpace(d.ImageURL)
	if d.Date.IsZero() {
		d.Date = Today()
	}
	return validateStruct(d)
}

// NewNewsItem builds a news item from a validated draft
func NewNewsItem(d NewsDraft) *NewsItem {
	item := &NewsItem{
		Title:       d.Title,
		Date:        d.Date,
		Category:    d.Category,
		Content:     d.Content,
		IsImportant: d.IsImportant,
	}
	if d.ImageURL != "" {
		img := d.ImageURL
		item.ImageURL = &img
	}
	return item
}
