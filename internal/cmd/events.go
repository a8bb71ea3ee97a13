package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eventdeck/eventdeck/internal/cache"
	"github.com/eventdeck/eventdeck/internal/filter"
	"github.com/eventdeck/eventdeck/internal/idalloc"
	"github.com/eventdeck/eventdeck/internal/mutate"
	"github.com/eventdeck/eventdeck/pkg/catalog"
	"github.com/eventdeck/eventdeck/pkg/logging"
)

func newEventsCmd(opts *rootOptions) *cobra.Command {
	events := &cobra.Command{
		Use:   "events",
		Short: "Browse and mutate event records",
	}
	events.AddCommand(
		newEventsListCmd(opts),
		newEventsGetCmd(opts),
		newEventsCreateCmd(opts),
		newEventsUpdateCmd(opts),
		newEventsDeleteCmd(opts),
	)
	return events
}

// snapshotOnce performs a single refresh and returns the snapshot.
func snapshotOnce(cmd *cobra.Command, opts *rootOptions) (*catalog.Snapshot, error) {
	cfg, err := opts.load()
	if err != nil {
		return nil, err
	}

	catalogCache := cache.New(storeClient(cfg), logging.Default())
	if err := catalogCache.Refresh(cmd.Context()); err != nil {
		return nil, err
	}
	snap, _ := catalogCache.Snapshot()
	return snap, nil
}

// coordinator builds a mutation coordinator for one-shot commands.
func coordinator(opts *rootOptions) (*mutate.Coordinator, error) {
	cfg, err := opts.load()
	if err != nil {
		return nil, err
	}
	return mutate.New(storeClient(cfg), idalloc.New(cfg.StatePath), logging.Default()), nil
}

func newEventsListCmd(opts *rootOptions) *cobra.Command {
	var query, category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events, optionally searched and filtered",
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := snapshotOnce(cmd, opts)
			if err != nil {
				return err
			}

			results := filter.Filter{Query: query, Category: category}.Apply(snap)

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tLOCATION\tSTART\tCATEGORIES\tCREATED BY")
			for _, e := range results {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					e.ID,
					e.Title,
					e.Location,
					e.StartTime.Format("2006-01-02 15:04"),
					strings.Join(snap.CategoryNames(e.CategoryIDs), ","),
					snap.UserName(e.CreatedBy),
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "case-insensitive search over title and description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category name")
	return cmd
}

func newEventsGetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := snapshotOnce(cmd, opts)
			if err != nil {
				return err
			}

			event, ok := snap.Event(args[0])
			if !ok {
				return fmt.Errorf("event %s not found", args[0])
			}
			return printJSON(cmd, event)
		},
	}
}

func newEventsCreateCmd(opts *rootOptions) *cobra.Command {
	var form mutate.Form

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new event",
		RunE: func(cmd *cobra.Command, _ []string) error {
			coord, err := coordinator(opts)
			if err != nil {
				return err
			}

			created, err := coord.Create(cmd.Context(), form)
			if err != nil {
				return err
			}
			return printJSON(cmd, created)
		},
	}

	cmd.Flags().StringVar(&form.Title, "title", "", "event title")
	cmd.Flags().StringVar(&form.Description, "description", "", "event description")
	cmd.Flags().StringVar(&form.ImageURL, "image", "", "image URL")
	cmd.Flags().StringVar(&form.Category, "category", "", "category: sports, games or relaxation")
	cmd.Flags().StringVar(&form.Location, "location", "", "event location")
	cmd.Flags().StringVar(&form.StartTime, "start", "", "start time (RFC 3339)")
	cmd.Flags().StringVar(&form.EndTime, "end", "", "end time (RFC 3339)")
	cmd.Flags().StringVar(&form.CreatedBy, "created-by", "", "creator user id")
	return cmd
}

func newEventsUpdateCmd(opts *rootOptions) *cobra.Command {
	var (
		title, description, image, location string
		start, end, createdBy               string
		categoryIDs                         []string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of an existing event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := coordinator(opts)
			if err != nil {
				return err
			}

			// Only flags the user actually set become part of the merge.
			var changes mutate.Changes
			if cmd.Flags().Changed("title") {
				changes.Title = &title
			}
			if cmd.Flags().Changed("description") {
				changes.Description = &description
			}
			if cmd.Flags().Changed("image") {
				changes.Image = &image
			}
			if cmd.Flags().Changed("location") {
				changes.Location = &location
			}
			if cmd.Flags().Changed("start") {
				changes.StartTime = &start
			}
			if cmd.Flags().Changed("end") {
				changes.EndTime = &end
			}
			if cmd.Flags().Changed("created-by") {
				changes.CreatedBy = &createdBy
			}
			if cmd.Flags().Changed("category-ids") {
				changes.CategoryIDs = categoryIDs
			}

			updated, err := coord.Update(cmd.Context(), args[0], changes)
			if err != nil {
				return err
			}
			return printJSON(cmd, updated)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "event title")
	cmd.Flags().StringVar(&description, "description", "", "event description")
	cmd.Flags().StringVar(&image, "image", "", "image URL")
	cmd.Flags().StringVar(&location, "location", "", "event location")
	cmd.Flags().StringVar(&start, "start", "", "start time (RFC 3339)")
	cmd.Flags().StringVar(&end, "end", "", "end time (RFC 3339)")
	cmd.Flags().StringVar(&createdBy, "created-by", "", "creator user id")
	cmd.Flags().StringSliceVar(&categoryIDs, "category-ids", nil, "category ids")
	return cmd
}

func newEventsDeleteCmd(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirmDelete(cmd, args[0]) {
				fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
				return nil
			}

			coord, err := coordinator(opts)
			if err != nil {
				return err
			}
			if err := coord.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Event %s deleted.\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// confirmDelete asks once on stdin whether the delete should proceed.
func confirmDelete(cmd *cobra.Command, id string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "Are you sure you want to delete event %s? [y/N] ", id)
	reader := bufio.NewReader(cmd.InOrStdin())
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func printJSON(cmd *cobra.Command, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
