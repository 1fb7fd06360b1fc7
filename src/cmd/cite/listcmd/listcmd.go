package listcmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"citeassist/src/cmd/cite/app"
	"citeassist/src/internal/cite"
	"citeassist/src/internal/store"
)

// New returns the list command, which prints stored citations in order.
func New() *cobra.Command {
	var inText bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print stored citations in the active style",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.FromCommand(cmd)
			if err != nil {
				return err
			}
			l, err := a.Store.Load()
			if err != nil {
				return err
			}
			return Print(cmd.OutOrStdout(), a, l, inText)
		},
	}
	cmd.Flags().BoolVar(&inText, "in-text", false, "also print the parenthetical in-text citation")
	return cmd
}

// Print writes l as a numbered listing.
func Print(w io.Writer, a *app.App, l store.List, inText bool) error {
	if len(l) == 0 {
		_, err := fmt.Fprintln(w, "no citations")
		return err
	}
	for i, it := range l {
		if _, err := fmt.Fprintf(w, "%d. [%s] %s\n", i+1, app.ShortID(it.ID), a.Cite(it.Record)); err != nil {
			return err
		}
		if inText {
			if _, err := fmt.Fprintf(w, "   %s\n", cite.InText(it.Record, a.Style)); err != nil {
				return err
			}
		}
	}
	return nil
}

// NewRemove returns the remove command.
func NewRemove() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a citation by id (a unique prefix is enough)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.FromCommand(cmd)
			if err != nil {
				return err
			}
			if err := a.Update(func(l store.List) (store.List, error) { return l.Remove(args[0]) }); err != nil {
				return notFound(err, args[0])
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return err
		},
	}
}

// NewMove returns the move command. Positions are 1-based.
func NewMove() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <position>",
		Short: "Move a citation to a 1-based position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q", args[1])
			}
			a, err := app.FromCommand(cmd)
			if err != nil {
				return err
			}
			if err := a.Update(func(l store.List) (store.List, error) { return l.Move(args[0], pos-1) }); err != nil {
				return notFound(err, args[0])
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "moved %s\n", args[0])
			return err
		},
	}
}

// NewSort returns the sort command.
func NewSort() *cobra.Command {
	var by string
	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Reorder the stored list by title or date added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var sorter func(store.List) store.List
			switch strings.ToLower(strings.TrimSpace(by)) {
			case "title":
				sorter = store.List.SortByTitle
			case "added":
				sorter = store.List.SortByAdded
			default:
				return fmt.Errorf("--by must be title or added, got %q", by)
			}
			a, err := app.FromCommand(cmd)
			if err != nil {
				return err
			}
			if err := a.Update(func(l store.List) (store.List, error) { return sorter(l), nil }); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "sorted by %s\n", by)
			return err
		},
	}
	cmd.Flags().StringVar(&by, "by", "title", "title or added")
	return cmd
}

// NewClear returns the clear command; --yes is required.
func NewClear() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every stored citation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear without --yes")
			}
			a, err := app.FromCommand(cmd)
			if err != nil {
				return err
			}
			if err := a.Store.Save(store.List{}); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "cleared")
			return err
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm clearing the list")
	return cmd
}

func notFound(err error, id string) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("no citation found for id %s: %w", id, err)
	}
	return err
}
