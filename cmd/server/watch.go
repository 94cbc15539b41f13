package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"tcg-card-studio/internal/client"
	"tcg-card-studio/internal/logging"
	"tcg-card-studio/internal/models"
)

func newWatchCommand() *cobra.Command {
	var (
		apiURL   string
		token    string
		cardIDs  []string
		interval time.Duration
		start    bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll video generation status until every card finishes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(cardIDs) == 0 {
				return errors.New("at least one --card is required")
			}
			if token == "" {
				token = os.Getenv("TCG_API_TOKEN")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			api := client.New(apiURL, token)
			out := cmd.OutOrStdout()

			if start {
				for _, id := range cardIDs {
					if _, err := api.GenerateVideo(ctx, id); err != nil {
						return fmt.Errorf("start video for %s: %w", id, err)
					}
					fmt.Fprintf(out, "%s\tstarted\n", id)
				}
			}

			poller := client.NewPoller(api, interval, logging.New("warn", "development"))
			final, err := poller.WatchVideos(ctx, cardIDs, func(s models.VideoStatusResponse) {
				fmt.Fprintf(out, "%s\t%s\t%s\n", s.CardID, s.Status, s.VideoURL)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}

			for _, s := range final {
				if s.Status == models.VideoFailed {
					return fmt.Errorf("video generation failed for %s", s.CardID)
				}
			}
			return err
		},
	}

	cmd.Flags().StringVar(&apiURL, "api", "http://localhost:8080/api/v1", "API base URL")
	cmd.Flags().StringVar(&token, "token", "", "Bearer token (defaults to $TCG_API_TOKEN)")
	cmd.Flags().StringSliceVar(&cardIDs, "card", nil, "Card ID to watch (repeatable)")
	cmd.Flags().DurationVar(&interval, "interval", 10*time.Second, "Polling interval")
	cmd.Flags().BoolVar(&start, "start", false, "Request generation before watching")
	return cmd
}
