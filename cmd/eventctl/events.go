package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agenthands/eventlens/internal/client"
	"github.com/agenthands/eventlens/internal/core/model"
	"github.com/agenthands/eventlens/internal/core/stats"
	"github.com/agenthands/eventlens/internal/dashboard"
)

func printEvents(events []*model.EventRecord) {
	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		rows = append(rows, []string{
			shorten(ev.ID, 12),
			shorten(ev.EventType, 20),
			shorten(ev.Locations, 30),
			shorten(ev.Category, 28),
			formatTime(ev.Timestamp),
			severityText(stats.Severity(ev)),
		})
	}
	table([]string{"ID", "TYPE", "LOCATIONS", "CATEGORY", "TIME", "SEVERITY"}, rows)
	fmt.Println()
	Subtle.Printf("  %d events\n", len(events))
}

func eventsCmd() *cobra.Command {
	var f client.Filter

	cmd := &cobra.Command{
		Use:   "events",
		Short: "List events, optionally filtered by facet or text",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			ctx := cmd.Context()

			var (
				events []*model.EventRecord
				err    error
			)
			if len(f.EventTypes)+len(f.Locations)+len(f.Categories) > 0 || f.Query != "" {
				events, err = c.FilteredEvents(ctx, f)
			} else {
				events, err = c.AllEvents(ctx)
			}
			if err != nil {
				return err
			}
			printEvents(events)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&f.EventTypes, "type", nil, "event type (repeatable)")
	cmd.Flags().StringSliceVar(&f.Locations, "location", nil, "location (repeatable)")
	cmd.Flags().StringSliceVar(&f.Categories, "category", nil, "category (repeatable)")
	cmd.Flags().StringVarP(&f.Query, "query", "q", "", "text search over type, locations and category")
	cmd.Flags().BoolVar(&f.Rank, "rank", false, "rerank matches against the query")
	return cmd
}

func eventCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "event <id>",
		Short: "Show every field of one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := newClient().Event(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			Brand.Printf("  %s\n\n", ev.EventType)
			rows := make([][]string, 0)
			for _, fld := range ev.Fields() {
				rows = append(rows, []string{fld.Key, fld.Value.Text()})
			}
			table([]string{"FIELD", "VALUE"}, rows)
			fmt.Println()
			fmt.Printf("  Severity: %s\n", severityText(stats.Severity(ev)))
			return nil
		},
	}
}

func facetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "facets",
		Short: "Show the event types, locations and categories in use",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			ctx := cmd.Context()
			for _, facet := range []struct {
				title string
				fetch func(context.Context) ([]string, error)
			}{
				{"Event types", c.EventTypes},
				{"Locations", c.Locations},
				{"Categories", c.Categories},
			} {
				values, err := facet.fetch(ctx)
				if err != nil && !client.IsStatus(err, 400) {
					return err
				}
				Brand.Printf("  %s\n", facet.title)
				if len(values) == 0 {
					Subtle.Println("    none")
				}
				for _, v := range values {
					fmt.Printf("    %s\n", v)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func submitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <tweet>",
		Short: "Submit a tweet for event extraction",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := dashboard.NewSubmitter(newClient(), localBus, notifier())
			out, err := s.Submit(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if out.Result != nil {
				Subtle.Printf("  %s event %s (category %s)\n", out.Result.Action, out.Result.ID, out.Category)
			}
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := newClient().Stats(cmd.Context())
			if err != nil {
				return err
			}
			printStats(st)
			return nil
		},
	}
}

func printStats(st *model.Stats) {
	fmt.Printf("  Total events:     %d\n", st.TotalEvents)
	fmt.Printf("  Event types:      %d\n", st.EventTypes)
	fmt.Printf("  Locations:        %d\n", st.Locations)
	fmt.Printf("  Categories:       %d\n", st.Categories)
	fmt.Printf("  Last 7 days:      %d (%d/day)\n", st.Recent, st.AvgPerDay)
	fmt.Printf("  Incident clusters: %d\n", st.Clusters)
	fmt.Printf("  Severity:         %s %d  %s %d  %s %d\n",
		severityText(model.SeverityHigh), st.Severity.High,
		severityText(model.SeverityMedium), st.Severity.Medium,
		severityText(model.SeverityLow), st.Severity.Low)
}

func graphCmd() *cobra.Command {
	var (
		q   client.GraphQuery
		out string
	)
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Show the event graph, or write it as SVG with --out",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := newClient()
			if out != "" {
				svg, err := c.GraphSVG(cmd.Context(), q)
				if err != nil {
					return err
				}
				if err := os.WriteFile(out, svg, 0o644); err != nil {
					return err
				}
				Good.Printf("  wrote %s\n", out)
				return nil
			}

			g, err := c.Graph(cmd.Context(), q)
			if err != nil {
				return err
			}
			if g.View.Empty {
				Subtle.Printf("  %s\n", g.View.Message)
				return nil
			}
			rows := make([][]string, 0, len(g.Nodes))
			for _, n := range g.Nodes {
				rows = append(rows, []string{shorten(n.ID, 24), n.Text, fmt.Sprintf("%.0f,%.0f", n.X, n.Y)})
			}
			table([]string{"NODE", "LABEL", "POS"}, rows)
			fmt.Println()
			Subtle.Printf("  %d nodes, %d edges, zoom %.2f\n", len(g.Nodes), len(g.Edges), g.View.Zoom)
			return nil
		},
	}
	cmd.Flags().StringVar((*string)(&q.Mode), "mode", "global", "global or selected")
	cmd.Flags().StringVar(&q.ID, "id", "", "event to show in selected mode")
	cmd.Flags().Float64Var(&q.Width, "width", 0, "viewport width")
	cmd.Flags().Float64Var(&q.Height, "height", 0, "viewport height")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write SVG to this file")
	return cmd
}
