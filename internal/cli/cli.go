package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/onimusic/notifications-helper/telegram"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Sender performs a single Bot API send
type Sender interface {
	Send(ctx context.Context, botToken, chatID string, kind telegram.ContentKind, content, caption string) (*telegram.Response, error)
}

// TokenStore resolves and saves bot tokens
type TokenStore interface {
	Lookup(flagValue, bot string) (string, error)
	Set(bot, token string) error
}

// Options wires the CLI to its collaborators. A nil Sender is replaced by a
// telegram.Client built from the --base-url and --timeout flags.
type Options struct {
	Sender Sender
	Tokens TokenStore
	Out    io.Writer
	Err    io.Writer
}

type flags struct {
	token   string
	bot     string
	baseURL string
	timeout time.Duration
	quiet   bool
}

// NewRootCmd creates the root command
func NewRootCmd(opts Options) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "notify",
		Short: "Send Telegram notifications through the Bot API",
		Long: `Send a text message or media (photo, gif, video, document) to a Telegram chat.
Every call is a single HTTP GET; Telegram's answer is printed as received.`,
		SilenceUsage: true,
	}
	cmd.SetOut(opts.Out)
	cmd.SetErr(opts.Err)

	cmd.PersistentFlags().StringVar(&f.token, "token", "", "Bot token (or env: TELEGRAM_BOT_TOKEN, or keychain)")
	cmd.PersistentFlags().StringVar(&f.bot, "bot", "default", "Keychain entry holding the bot token")
	cmd.PersistentFlags().StringVar(&f.baseURL, "base-url", telegram.DefaultBaseURL, "Bot API base URL")
	cmd.PersistentFlags().DurationVar(&f.timeout, "timeout", 30*time.Second, "HTTP timeout")
	cmd.PersistentFlags().BoolVarP(&f.quiet, "quiet", "q", false, "Print only the status code")

	cmd.AddCommand(
		newTextCmd(opts, f),
		newContentCmd(opts, f, telegram.KindPhoto, "photo <chat> <photo>", nil, "Send a photo by URL or file_id"),
		newContentCmd(opts, f, telegram.KindAnimation, "gif <chat> <animation>", []string{"animation"}, "Send a GIF or soundless video by URL or file_id"),
		newContentCmd(opts, f, telegram.KindVideo, "video <chat> <video>", nil, "Send a video by URL or file_id"),
		newContentCmd(opts, f, telegram.KindDocument, "document <chat> <document>", []string{"doc"}, "Send a file by URL or file_id"),
		newTokenCmd(opts, f),
	)

	return cmd
}

func newTextCmd(opts Options, f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "text <chat> <message...>",
		Short: "Send a plain text message",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return send(cmd, opts, f, telegram.KindText, args[0], strings.Join(args[1:], " "), "")
		},
	}
}

func newContentCmd(opts Options, f *flags, kind telegram.ContentKind, use string, aliases []string, short string) *cobra.Command {
	var caption string

	cmd := &cobra.Command{
		Use:     use,
		Aliases: aliases,
		Short:   short,
		Long:    short + ". The reference is sent as given, so it must already be URL safe; the caption is encoded for you.",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return send(cmd, opts, f, kind, args[0], args[1], caption)
		},
	}
	cmd.Flags().StringVarP(&caption, "caption", "c", "", "Caption sent with the media")

	return cmd
}

func newTokenCmd(opts Options, f *flags) *cobra.Command {
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Manage bot tokens in the system keychain",
	}

	tokenCmd.AddCommand(&cobra.Command{
		Use:   "set <token>",
		Short: "Save a bot token under --bot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Tokens.Set(f.bot, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Token saved for bot %q\n", f.bot)
			return nil
		},
	})

	return tokenCmd
}

func send(cmd *cobra.Command, opts Options, f *flags, kind telegram.ContentKind, chatID, content, caption string) error {
	token, err := opts.Tokens.Lookup(f.token, f.bot)
	if err != nil {
		return fmt.Errorf("resolving bot token: %w", err)
	}

	sender := opts.Sender
	if sender == nil {
		client, err := telegram.NewClient(telegram.ClientConfig{
			BaseURL:    f.baseURL,
			HTTPClient: &http.Client{Timeout: f.timeout},
		})
		if err != nil {
			return err
		}
		sender = client
	}

	resp, err := sender.Send(cmd.Context(), token, chatID, kind, content, caption)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f.quiet {
		fmt.Fprintln(out, resp.StatusCode)
		return nil
	}
	fmt.Fprintf(out, "%s %d\n%s\n", kind.Method(), resp.StatusCode, resp.Body)
	return nil
}
