package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"dstclan/internal/model"
	"dstclan/internal/moderation"
	"dstclan/internal/session"
	"dstclan/pkg/client"

	"github.com/namsral/flag"
)

const usage = `usage: clanctl [-api URL] [-token-file PATH] [-timeout D] COMMAND [ARGS]

commands:
  login -username U -password P   log in and remember the token
  logout                          forget the token
  whoami                          show whether a session is held
  pending | approved              list listings
  approve ID | reject ID          moderate a pending listing
  delete ID                       delete a listing for good
  submit -title ... -discord ...  submit a listing
  news                            list news
  news-add -title ... -content ...
  news-delete ID
`

var errUsage = errors.New("invalid usage, see clanctl -h")

// app shared state of one invocation
type app struct {
	out   io.Writer
	gate  *session.Gate
	api   *client.Client
	board *moderation.Board
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSetWithEnvPrefix("clanctl", "CLANCTL", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() { fmt.Fprint(out, usage) }
	apiURL := fs.String("api", client.DefaultBaseURL, "API base URL (CLANCTL_API)")
	tokenFile := fs.String("token-file", session.DefaultTokenFile(), "session file (CLANCTL_TOKEN_FILE)")
	timeout := fs.Duration("timeout", 10*time.Second, "request timeout (CLANCTL_TIMEOUT)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	anon := client.New(*apiURL, client.WithTimeout(*timeout))
	gate, err := session.NewGate(session.NewFileStore(*tokenFile), anon.Auth())
	if err != nil {
		return err
	}
	api := client.New(*apiURL, client.WithTimeout(*timeout), client.WithTokenSource(gate))
	a := &app{out: out, gate: gate, api: api, board: moderation.NewBoard(api.Listings())}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "login":
		return a.login(ctx, rest)
	case "logout":
		if err := gate.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(out, "logged out")
		return nil
	case "whoami":
		a.whoami()
		return nil
	case "pending", "approved":
		return a.list(ctx, cmd)
	case "approve", "reject", "delete":
		return a.moderate(ctx, cmd, rest)
	case "submit":
		return a.submit(ctx, rest)
	case "news":
		return a.news(ctx)
	case "news-add":
		return a.newsAdd(ctx, rest)
	case "news-delete":
		return a.newsDelete(ctx, rest)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSetWithEnvPrefix("login", "CLANCTL", flag.ContinueOnError)
	fs.SetOutput(a.out)
	username := fs.String("username", "", "admin username (CLANCTL_USERNAME)")
	password := fs.String("password", "", "admin password (CLANCTL_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.gate.Login(ctx, *username, *password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "logged in")
	return nil
}

func (a *app) whoami() {
	token := a.gate.Token()
	if token == "" {
		fmt.Fprintln(a.out, "not logged in")
		return
	}
	fmt.Fprintf(a.out, "logged in (token %s…)\n", token[:min(4, len(token))])
}

func (a *app) requireSession() error {
	if !a.gate.IsAuthenticated() {
		return errors.New("not logged in, run clanctl login first")
	}
	return nil
}

func (a *app) list(ctx context.Context, which string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	if err := a.board.Refresh(ctx); err != nil {
		return err
	}
	listings := a.board.Approved()
	if which == "pending" {
		listings = a.board.Pending()
	}
	printListings(a.out, listings)
	return nil
}

func (a *app) moderate(ctx context.Context, action string, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	id, err := parseID(args)
	if err != nil {
		return err
	}

	switch action {
	case "approve":
		err = a.board.Approve(ctx, id)
	case "reject":
		err = a.board.Reject(ctx, id)
	case "delete":
		err = a.board.Remove(ctx, id)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s: listing %d\n", action, id)
	fmt.Fprintf(a.out, "%d pending, %d approved\n", len(a.board.Pending()), len(a.board.Approved()))
	return nil
}

func (a *app) submit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("submit", flag.ContinueOnError)
	fs.SetOutput(a.out)
	var sub model.ListingSubmission
	fs.StringVar(&sub.Title, "title", "", "listing title")
	fs.StringVar(&sub.Description, "description", "", "what you are looking for")
	fs.StringVar(&sub.GameMode, "mode", model.GameModePVP, "game mode: "+strings.Join(model.GameModes, ", "))
	fs.StringVar(&sub.PlayerCount, "players", "1-2", "player count: "+strings.Join(model.PlayerCounts, ", "))
	fs.StringVar(&sub.DiscordTag, "discord", "", "discord tag")
	fs.StringVar(&sub.ImageURL, "image", "", "image URL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	id, err := a.board.Submit(ctx, sub)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "listing %d sent for moderation\n", id)
	return nil
}

func (a *app) news(ctx context.Context) error {
	items, err := a.api.News().List(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tCATEGORY\tTITLE")
	for _, n := range items {
		title := n.Title
		if n.IsImportant {
			title = "! " + title
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", n.ID, n.Date, n.Category, title)
	}
	return w.Flush()
}

func (a *app) newsAdd(ctx context.Context, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	fs := flag.NewFlagSet("news-add", flag.ContinueOnError)
	fs.SetOutput(a.out)
	var draft model.NewsDraft
	var date string
	fs.StringVar(&draft.Title, "title", "", "headline")
	fs.StringVar(&draft.Content, "content", "", "body text")
	fs.StringVar(&draft.Category, "category", "Updates", "category: "+strings.Join(model.NewsCategories, ", "))
	fs.StringVar(&draft.ImageURL, "image", "", "image URL")
	fs.StringVar(&date, "date", "", "publication date YYYY-MM-DD, default today")
	fs.BoolVar(&draft.IsImportant, "important", false, "flag as important")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if date != "" {
		d, err := model.ParseDate(date)
		if err != nil {
			return err
		}
		draft.Date = d
	}

	id, err := a.api.News().Create(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "news %d published\n", id)
	return nil
}

func (a *app) newsDelete(ctx context.Context, args []string) error {
	if err := a.requireSession(); err != nil {
		return err
	}
	id, err := parseID(args)
	if err != nil {
		return err
	}
	if err := a.api.News().Delete(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "news %d deleted\n", id)
	return nil
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

func printListings(out io.Writer, listings []model.Listing) {
	if len(listings) == 0 {
		fmt.Fprintln(out, "no listings")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tMODE\tPLAYERS\tDISCORD\tTITLE")
	for _, l := range listings {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", l.ID, l.CreatedAt.Format("2006-01-02 15:04"), l.GameMode, l.PlayerCount, l.DiscordTag, l.Title)
	}
	w.Flush()
}
