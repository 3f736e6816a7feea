package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/poiesic/seekr"
	"github.com/poiesic/seekr/core"
	"github.com/poiesic/seekr/render"
	"github.com/poiesic/seekr/session"
	"github.com/poiesic/seekr/transport"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

const searchHelp = `commands:
  <text>             submit a query (":fr:text" sets the language)
  /expand            fetch the next expansion level
  /cluster           cluster the current vertical
  /pers              toggle personalization
  /tab VERTICAL      switch to text, image, video or social
  /next, /prev       turn the page
  /types             request the result type breakdown
  /help              show this help
  /quit              leave
`

func searchCmd() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Run an interactive search session in the terminal",
		ArgsUsage: "[QUERY]",
		Action:    searchCommand,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Keep results in a BadgerDB database directory instead of memory",
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "Search endpoint prefix, usually the relay mount point",
			},
			&cli.StringFlag{
				Name:  "lang",
				Usage: "Initial session language",
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "Word wrap width (defaults to the terminal width)",
			},
			&cli.StringFlag{
				Name:  "style",
				Usage: "Glamour style name (dark, light, notty, ...); auto-detected when empty",
			},
		},
	}
}

// controller is the part of a session the command loop drives.
type controller interface {
	Start(ctx context.Context, raw string) error
	Submit(ctx context.Context, raw, langInput string) (bool, error)
	Expand(ctx context.Context) error
	Cluster(ctx context.Context) (bool, error)
	TogglePersonalization(ctx context.Context) error
	SwitchVertical(ctx context.Context, v core.Vertical) (bool, error)
	Types(ctx context.Context) error
	NextPage(ctx context.Context) (bool, error)
	PrevPage(ctx context.Context) (bool, error)
	Pending() bool
	Wait(ctx context.Context) error
}

var _ controller = (*session.Session)(nil)

func searchCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("db") {
		cfg.Client.DB = c.String("db")
	}
	if c.IsSet("base-url") {
		cfg.Client.BaseURL = c.String("base-url")
	}
	if c.IsSet("lang") {
		cfg.Client.Lang = c.String("lang")
	}

	sessionConfig, err := cfg.SessionConfig()
	if err != nil {
		return fmt.Errorf("invalid session configuration: %w", err)
	}

	fetcherOpts := []transport.Option{transport.WithTimeout(cfg.Client.Timeout)}
	if cfg.Client.PoolSize > 0 {
		fetcherOpts = append(fetcherOpts, transport.WithPoolSize(cfg.Client.PoolSize))
	}

	client, err := seekr.NewClient(
		seekr.WithDatabase(cfg.Client.DB),
		seekr.WithSessionConfig(sessionConfig),
		seekr.WithFetcherOptions(fetcherOpts...),
		seekr.WithLogger(slog.Default()),
	)
	if err != nil {
		return fmt.Errorf("failed to open client: %w", err)
	}
	defer client.Close()

	termOpts := []render.TerminalOption{render.WithWidth(terminalWidth(c.Int("width")))}
	if style := c.String("style"); style != "" {
		termOpts = append(termOpts, render.WithStyle(style))
	}
	terminal, err := render.NewTerminal(termOpts...)
	if err != nil {
		return fmt.Errorf("failed to create terminal renderer: %w", err)
	}

	out := c.App.Writer
	s, err := client.NewSession(render.NewTerminalView(terminal, out))
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if c.NArg() > 0 {
		if err := s.Start(ctx, strings.Join(c.Args().Slice(), " ")); err != nil {
			return err
		}
		if err := reportWait(ctx, s, out); err != nil {
			slog.Debug("initial search failed", "err", err)
		}
	}

	return runLoop(ctx, s, os.Stdin, out)
}

// terminalWidth returns flagWidth when set, otherwise the width of stdout,
// falling back to 80 columns.
func terminalWidth(flagWidth int) int {
	if flagWidth > 0 {
		return flagWidth
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// runLoop reads commands from in until EOF, /quit or cancellation.
func runLoop(ctx context.Context, s controller, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		quit, err := dispatch(ctx, s, scanner.Text(), out)
		if err != nil && !errors.Is(err, session.ErrNothingPending) {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		if quit || ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(out, "> ")
	}
	return scanner.Err()
}

// dispatch runs one input line. It reports whether the loop should stop.
func dispatch(ctx context.Context, s controller, line string, out io.Writer) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if !strings.HasPrefix(line, "/") {
		fetched, err := s.Submit(ctx, line, "")
		if err != nil || !fetched {
			return false, err
		}
		return false, reportWait(ctx, s, out)
	}

	name, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)

	var err error
	switch strings.ToLower(name) {
	case "quit", "exit", "q":
		return true, nil
	case "help", "h", "?":
		fmt.Fprint(out, searchHelp)
		return false, nil
	case "expand":
		err = s.Expand(ctx)
	case "cluster":
		var ok bool
		if ok, err = s.Cluster(ctx); err == nil && !ok {
			fmt.Fprintln(out, "clustering is not available for this vertical")
			return false, nil
		}
	case "pers":
		err = s.TogglePersonalization(ctx)
	case "tab":
		v, perr := core.ParseVertical(arg)
		if perr != nil {
			return false, fmt.Errorf("%w: %q", perr, arg)
		}
		_, err = s.SwitchVertical(ctx, v)
	case "types":
		err = s.Types(ctx)
	case "next":
		ok, err := s.NextPage(ctx)
		if err == nil && !ok {
			fmt.Fprintln(out, "already on the last page")
		}
		return false, err
	case "prev":
		ok, err := s.PrevPage(ctx)
		if err == nil && !ok {
			fmt.Fprintln(out, "already on the first page")
		}
		return false, err
	default:
		return false, fmt.Errorf("unknown command /%s (try /help)", name)
	}
	if err != nil {
		return false, err
	}
	return false, reportWait(ctx, s, out)
}

// reportWait waits for the fetch in flight, if any.
func reportWait(ctx context.Context, s controller, out io.Writer) error {
	if !s.Pending() {
		return nil
	}
	fmt.Fprintln(out, "searching...")
	return s.Wait(ctx)
}
