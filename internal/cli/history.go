package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Davincible/cryptobench/internal/bench"
)

func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse benchmark sessions saved with 'bench --save'",
	}

	cmd.AddCommand(
		newHistoryListCommand(),
		newHistoryShowCommand(),
		newHistorySearchCommand(),
		newHistoryDeleteCommand(),
	)

	return cmd
}

func openHistory(cmd *cobra.Command) (*bench.Store, error) {
	cm, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return bench.OpenStore(cm.HistoryDir())
}

func newHistoryListCommand() *cobra.Command {
	var tags []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(cmd)
			if err != nil {
				return err
			}
			return printSessions(cmd, store.List(tags))
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Only sessions with every given tag")

	return cmd
}

func newHistorySearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Find sessions by name or tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(cmd)
			if err != nil {
				return err
			}
			return printSessions(cmd, store.Search(args[0]))
		},
	}
}

func newHistoryShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show the results of one session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(cmd)
			if err != nil {
				return err
			}

			session, err := store.Get(args[0])
			if err != nil {
				return err
			}

			if jsonRequested(cmd) {
				return outputJSON(cmd, session)
			}

			w := cmd.OutOrStdout()
			cyan := color.New(color.FgCyan, color.Bold)
			cyan.Fprintf(w, "%s  %s\n", session.ShortID(), session.Name)
			fmt.Fprintf(w, "Created:   %s\n", session.Created.Format("2006-01-02 15:04:05 MST"))
			if len(session.Tags) > 0 {
				fmt.Fprintf(w, "Tags:      %v\n", session.Tags)
			}
			fmt.Fprintf(w, "Plaintext: %d bytes, blake2b %s\n", session.PlaintextLen, session.PlaintextDigest)
			printBenchSummary(cmd, session.Results)
			return nil
		},
	}
}

func newHistoryDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a saved session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory(cmd)
			if err != nil {
				return err
			}

			if err := store.Delete(args[0]); err != nil {
				return err
			}

			green := color.New(color.FgGreen, color.Bold)
			green.Fprintf(cmd.OutOrStdout(), "✓ Deleted session %s\n", args[0])
			return nil
		},
	}
}

func printSessions(cmd *cobra.Command, sessions []*bench.Session) error {
	if jsonRequested(cmd) {
		if sessions == nil {
			sessions = []*bench.Session{}
		}
		return outputJSON(cmd, sessions)
	}

	w := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No saved sessions.")
		return nil
	}

	for _, s := range sessions {
		fmt.Fprintf(w, "%s  %-24s %s  %d runs", s.ShortID(), s.Name, s.Created.Format("2006-01-02 15:04"), len(s.Results))
		if len(s.Tags) > 0 {
			fmt.Fprintf(w, "  %v", s.Tags)
		}
		fmt.Fprintln(w)
	}
	return nil
}
