package model

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to ListingStatus
		want     bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusPending, false},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusPending, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusPending, false},
		{StatusRejected, StatusRejected, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestParseListingStatus(t *testing.T) {
	st, err := ParseListingStatus(" Approved ")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, st)

	_, err = ParseListingStatus("deleted")
	assert.ErrorIs(t, err, ErrUnknownStatus)

	assert.True(t, StatusPending.Listable())
	assert.True(t, StatusApproved.Listable())
	assert.False(t, StatusRejected.Listable())
}

func TestListingStatus_ScanAndJSON(t *testing.T) {
	var st ListingStatus
	require.NoError(t, st.Scan([]byte("rejected")))
	assert.Equal(t, StatusRejected, st)
	assert.Error(t, st.Scan("archived"))
	assert.Error(t, st.Scan(42))

	var upd StatusUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"id":7,"status":"approved"}`), &upd))
	assert.Equal(t, int64(7), upd.ID)
	assert.Equal(t, StatusApproved, upd.Status)

	assert.Error(t, json.Unmarshal([]byte(`{"id":7,"status":"published"}`), &upd))

	_, err := ListingStatus("bogus").Value()
	assert.Error(t, err)
}

func TestListingSubmission_Validate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		s := ListingSubmission{
			Title:       "  Looking for raid team ",
			Description: "...",
			GameMode:    "PVP",
			PlayerCount: "3-5",
			DiscordTag:  "foo#1234",
		}
		require.NoError(t, s.Validate())
		assert.Equal(t, "Looking for raid team", s.Title)
		assert.Equal(t, DefaultListingImage, s.ImageURL)

		l := NewListing(s)
		assert.Equal(t, StatusPending, l.Status)
		assert.Equal(t, "foo#1234", l.DiscordTag)
	})

	t.Run("MissingFields", func(t *testing.T) {
		s := ListingSubmission{Title: "   ", GameMode: "PVP", PlayerCount: "1-2"}
		err := s.Validate()
		require.Error(t, err)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has("title"))
		assert.True(t, verr.Has("description"))
		assert.True(t, verr.Has("discord_tag"))
		assert.False(t, verr.Has("game_mode"))
	})

	t.Run("OptionsOutsideSet", func(t *testing.T) {
		s := ListingSubmission{Title: "t", Description: "d", DiscordTag: "x#1", GameMode: "Hardcore", PlayerCount: "10"}
		var verr *ValidationError
		require.ErrorAs(t, s.Validate(), &verr)
		assert.True(t, verr.Has("game_mode"))
		assert.True(t, verr.Has("player_count"))
		assert.Contains(t, verr.Error(), "game_mode must be one of")
	})

	t.Run("BadImageURL", func(t *testing.T) {
		s := ListingSubmission{Title: "t", Description: "d", DiscordTag: "x#1", GameMode: "PVE", PlayerCount: "5+", ImageURL: "not a url"}
		var verr *ValidationError
		require.ErrorAs(t, s.Validate(), &verr)
		assert.True(t, verr.Has("image_url"))
	})
}
