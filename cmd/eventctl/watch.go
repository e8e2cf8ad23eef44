package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/agenthands/eventlens/internal/dashboard"
)

func watchCmd() *cobra.Command {
	var svgOut string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow stats and the newest events, refreshing on an interval",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			panel := dashboard.NewGraphPanel(cfg.ViewportOptions(), cfg.ProjectionLayout())
			feed := dashboard.NewFeed(newClient(), notifier(), cfg.RefreshInterval(), cfg.Dashboard.MaxEventsDisplay)
			feed.OnUpdate = func(snap dashboard.Snapshot) {
				panel.Update(snap)
				render(snap)
				if svgOut != "" {
					writeSVG(panel, svgOut)
				}
			}

			feed.Start(ctx, localBus)
			<-ctx.Done()
			feed.Stop()
			return nil
		},
	}
	cmd.Flags().StringVar(&svgOut, "svg", "", "keep an SVG of the event graph at this path")
	return cmd
}

func render(snap dashboard.Snapshot) {
	fmt.Print("\033[H\033[2J")
	Brand.Printf("  Events dashboard  %s\n\n", Subtle.Sprint(snap.UpdatedAt.Format("15:04:05")))
	if snap.Stats != nil {
		printStats(snap.Stats)
		fmt.Println()
	}
	rows := make([][]string, 0, len(snap.Recent))
	for _, r := range snap.Recent {
		rows = append(rows, []string{
			shorten(r.Event.EventType, 20),
			shorten(r.Event.Locations, 30),
			formatTime(r.Event.Timestamp),
			severityText(r.Severity),
		})
	}
	table([]string{"TYPE", "LOCATIONS", "TIME", "SEVERITY"}, rows)
}

func writeSVG(panel *dashboard.GraphPanel, path string) {
	svg, err := panel.SVG()
	if err == nil {
		err = os.WriteFile(path, []byte(svg), 0o644)
	}
	if err != nil {
		notifier().Error(fmt.Sprintf("Failed to write graph: %v", err))
	}
}
