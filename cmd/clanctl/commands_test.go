package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"dstclan/internal/api/apitest"
	"dstclan/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cli struct {
	t    *testing.T
	base []string
}

func newCLI(t *testing.T) (*cli, *apitest.Server) {
	srv := apitest.New(t)
	return &cli{t: t, base: []string{"-api", srv.BaseURL(), "-token-file", filepath.Join(t.TempDir(), "session.json")}}, srv
}

func (c *cli) run(args ...string) (string, error) {
	var out bytes.Buffer
	err := run(context.Background(), append(append([]string{}, c.base...), args...), &out)
	return out.String(), err
}

func (c *cli) mustRun(args ...string) string {
	c.t.Helper()
	out, err := c.run(args...)
	require.NoError(c.t, err, out)
	return out
}

func TestCLI_SessionSurvivesInvocations(t *testing.T) {
	c, _ := newCLI(t)

	assert.Contains(t, c.mustRun("whoami"), "not logged in")
	_, err := c.run("pending")
	assert.Error(t, err)

	_, err = c.run("login", "-username", apitest.AdminUsername, "-password", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid username or password")

	assert.Contains(t, c.mustRun("login", "-username", apitest.AdminUsername, "-password", apitest.AdminPassword), "logged in")
	assert.Contains(t, c.mustRun("whoami"), "logged in (token")

	c.mustRun("logout")
	assert.Contains(t, c.mustRun("whoami"), "not logged in")
}

func TestCLI_ModerationFlow(t *testing.T) {
	c, srv := newCLI(t)
	srv.SeedListing(7, model.StatusPending)
	c.mustRun("login", "-username", apitest.AdminUsername, "-password", apitest.AdminPassword)

	out := c.mustRun("submit", "-title", "Looking for raid team", "-description", "...", "-mode", "PVP", "-players", "3-5", "-discord", "foo#1234")
	assert.Contains(t, out, "sent for moderation")

	out = c.mustRun("pending")
	assert.Contains(t, out, "foo#1234")
	assert.Contains(t, out, "seeded")

	out = c.mustRun("approve", "7")
	assert.Contains(t, out, "approve: listing 7")
	assert.Contains(t, c.mustRun("approved"), "seeded")
	assert.NotContains(t, c.mustRun("pending"), "seeded")

	_, err := c.run("reject", "7")
	assert.Error(t, err)

	c.mustRun("delete", "7")
	assert.Contains(t, c.mustRun("approved"), "no listings")

	_, err = c.run("approve", "abc")
	assert.Error(t, err)
}

func TestCLI_News(t *testing.T) {
	c, _ := newCLI(t)
	c.mustRun("login", "-username", apitest.AdminUsername, "-password", apitest.AdminPassword)

	assert.Contains(t, c.mustRun("news-add", "-title", "Wipe", "-content", "Friday", "-category", "Important", "-date", "2025-11-07", "-important"), "published")
	out := c.mustRun("news")
	assert.Contains(t, out, "2025-11-07")
	assert.Contains(t, out, "! Wipe")

	c.mustRun("news-delete", "1")
	assert.NotContains(t, c.mustRun("news"), "Wipe")
}

func TestCLI_Usage(t *testing.T) {
	c, _ := newCLI(t)
	out, err := c.run()
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, out, "usage: clanctl")

	_, err = c.run("frobnicate")
	assert.Error(t, err)
}
