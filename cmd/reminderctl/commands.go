package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/KasumiMercury/primind-calendar-remind/internal/app"
	"github.com/KasumiMercury/primind-calendar-remind/internal/bootstrap"
	"github.com/KasumiMercury/primind-calendar-remind/internal/config"
	"github.com/KasumiMercury/primind-calendar-remind/internal/infra/auth"
	"github.com/KasumiMercury/primind-calendar-remind/internal/infra/scheduler"
)

// stopTimeout bounds how long scan waits for its one-off scheduler to wind down.
const stopTimeout = 5 * time.Second

func newListCmd(opts *rootOptions) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's reminders in due order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withBackends(cmd.Context(), func(_ *config.Config, b *bootstrap.Backends) error {
				output, err := app.NewReminderUseCase(b.Reminders, nil).ListReminders(cmd.Context(), app.ListRemindersInput{
					UserID: userID,
				})
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tDUE AT\tTITLE")

				for _, r := range output.Reminders {
					fmt.Fprintf(w, "%s\t%s\t%s\n", r.ID, r.DueAt.UTC().Format(time.RFC3339), r.Title)
				}

				return w.Flush()
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newSweepCmd(opts *rootOptions) *cobra.Command {
	var (
		userID string
		before string
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Remove a user's reminders due at or before a cutoff",
		Long: `Remove a user's reminders due at or before a cutoff.

--before accepts an RFC 3339 timestamp or epoch milliseconds and defaults to now.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cutoff, err := parseCutoff(before, time.Now())
			if err != nil {
				return err
			}

			return opts.withBackends(cmd.Context(), func(_ *config.Config, b *bootstrap.Backends) error {
				n, err := app.NewReminderUseCase(b.Reminders, nil).SweepPastReminders(cmd.Context(), app.SweepPastRemindersInput{
					UserID: userID,
					Before: cutoff,
				})
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "removed %d reminder(s) due at or before %s\n",
					n, cutoff.UTC().Format(time.RFC3339))

				return nil
			})
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().StringVar(&before, "before", "", "cutoff as RFC 3339 or epoch milliseconds")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func newScanCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Run one delivery scan immediately",
		Long: `Run one delivery scan immediately against the configured store.

The server's scheduler assumes it is the only scanner. Running scan while a
server is scanning the same store can deliver a reminder twice, so use it
against a stopped server or for recovery after an outage.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withBackends(cmd.Context(), func(cfg *config.Config, b *bootstrap.Backends) error {
				publisher, err := bootstrap.OpenPublisher(cmd.Context(), cfg)
				if err != nil {
					return fmt.Errorf("failed to create publisher: %w", err)
				}

				if publisher != nil {
					defer func() {
						_ = publisher.Close()
					}()
				}

				notifier, err := bootstrap.NewGateway(cfg, b, publisher)
				if err != nil {
					return err
				}

				sched, err := scheduler.New(bootstrap.NewScanner(cfg, b, notifier, nil), scheduler.Config{
					Interval: cfg.Scanner.TickInterval,
				})
				if err != nil {
					return err
				}

				defer func() {
					stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
					defer cancel()

					_ = sched.Stop(stopCtx)
				}()

				result := sched.RunOnce(cmd.Context())

				fmt.Fprintf(cmd.OutOrStdout(), "discovered=%d delivered=%d failed=%d skipped=%d duration=%s\n",
					result.Discovered, result.Delivered, result.Failed, result.Skipped, result.Duration)

				return result.Err
			})
		},
	}
}

func newTokenCmd(opts *rootOptions) *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}

			token, err := auth.GenerateToken(cfg.Auth.JWTSecret, userID, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)

			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func parseCutoff(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now, nil
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		if ms <= 0 {
			return time.Time{}, errors.New("--before must be positive")
		}

		return time.UnixMilli(ms), nil
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --before %q: want RFC 3339 or epoch milliseconds", s)
	}

	return t, nil
}
