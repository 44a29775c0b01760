package model

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-11-02"`), &d))
	assert.Equal(t, "2025-11-02", d.String())

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-11-02"`, string(b))

	require.NoError(t, json.Unmarshal([]byte(`"2025-10-28T15:04:05Z"`), &d))
	assert.Equal(t, "2025-10-28", d.String())

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"02.11.2025"`), &d))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan(time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-11-01", d.String())

	require.NoError(t, d.Scan([]byte("2025-10-15")))
	assert.Equal(t, "2025-10-15", d.String())

	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-10-15", v)
}

func TestNewsDraft_Validate(t *testing.T) {
	d := NewsDraft{Title: " Raid night ", Category: "Updates", Content: "Saturday 20:00"}
	require.NoError(t, d.Validate())
	assert.Equal(t, "Raid night", d.Title)
	assert.Equal(t, Today().String(), d.Date.String())

	item := NewNewsItem(d)
	assert.Nil(t, item.ImageURL)

	bad := NewsDraft{Category: "Gossip"}
	var verr *ValidationError
	require.ErrorAs(t, bad.Validate(), &verr)
	assert.True(t, verr.Has("title"))
	assert.True(t, verr.Has("content"))
	assert.True(t, verr.Has("category"))
}

func TestStringList(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, StringList{"a", "b"}, l)

	v, err := StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)

	assert.Error(t, l.Scan([]byte(`{`)))
}

func TestVipTier_Validate(t *testing.T) {
	tier := VipTier{TierID: "basic", Name: "VIP Basic", Price: 299, Duration: "30 days"}
	require.NoError(t, tier.Validate())
	assert.NotNil(t, tier.Features)

	var verr *ValidationError
	require.ErrorAs(t, (&VipTier{Price: -1}).Validate(), &verr)
	assert.True(t, verr.Has("tier_id"))
	assert.True(t, verr.Has("price"))
}
