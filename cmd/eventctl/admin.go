package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/agenthands/eventlens/internal/core/model"
	"github.com/agenthands/eventlens/internal/dashboard"
)

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Curate events: search, edit, delete, merge",
	}
	cmd.AddCommand(
		adminLoginCmd(),
		adminLogoutCmd(),
		adminEventsCmd(),
		adminUpdateCmd(),
		adminDeleteCmd(),
		adminMergeCmd(),
		adminBulkDeleteCmd(),
	)
	return cmd
}

func newAdmin() *dashboard.Admin {
	return dashboard.NewAdmin(newClient(), localBus, notifier())
}

func adminLoginCmd() *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Open an admin session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				username = cfg.Admin.Username
			}
			password := os.Getenv("ADMIN_PASSWORD")
			if password == "" {
				fmt.Print("Password: ")
				line, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil {
					return err
				}
				password = strings.TrimSpace(line)
			}
			s, err := newClient().Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if err := saveSession(s.Token); err != nil {
				return err
			}
			Good.Printf("  logged in as %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "user", "u", "", "admin username (default from config)")
	return cmd
}

func adminLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the admin session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := clearSession(); err != nil {
				return err
			}
			Good.Println("  logged out")
			return nil
		},
	}
}

func adminEventsCmd() *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Search events by type, location or category",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := newAdmin().Search(cmd.Context(), query)
			if err != nil {
				return err
			}
			printEvents(events)
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "search text")
	return cmd
}

// parseFields turns key=value arguments into a patch. Values that look like
// numbers or booleans are stored as such.
func parseFields(args []string) (*model.EventRecord, error) {
	patch := &model.EventRecord{}
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", arg)
		}
		patch.Set(key, parseValue(raw))
	}
	return patch, nil
}

func parseValue(raw string) model.Value {
	if n, err := cast.ToFloat64E(raw); err == nil && raw != "" {
		return model.Number(n)
	}
	switch raw {
	case "true", "false":
		return model.Bool(cast.ToBool(raw))
	case "null":
		return model.Null()
	}
	return model.String(raw)
}

func adminUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> key=value...",
		Short: "Change fields of an event",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := parseFields(args[1:])
			if err != nil {
				return err
			}
			return newAdmin().Update(cmd.Context(), args[0], patch)
		},
	}
}

func adminDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newAdmin().Delete(cmd.Context(), args[0])
		},
	}
}

func adminMergeCmd() *cobra.Command {
	var set []string
	cmd := &cobra.Command{
		Use:   "merge <id> <id>...",
		Short: "Merge events into the first one",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var mergeData *model.EventRecord
			if len(set) > 0 {
				var err error
				if mergeData, err = parseFields(set); err != nil {
					return err
				}
			}
			return newAdmin().Merge(cmd.Context(), args, mergeData)
		},
	}
	cmd.Flags().StringArrayVar(&set, "set", nil, "key=value to set on the merged event (repeatable)")
	return cmd
}

func adminBulkDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bulk-delete <id>...",
		Short: "Delete several events at once",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newAdmin().BulkDelete(cmd.Context(), args)
		},
	}
}
