package cmd

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"qrlog/internal/store"

	"github.com/spf13/cobra"
)

var clearYes bool

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyClearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "do not ask for confirmation")
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent scans and generated payloads",
	Args:  cobra.NoArgs,
	RunE:  listHistory,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent scans and generated payloads, newest first",
	Args:  cobra.NoArgs,
	RunE:  listHistory,
}

func listHistory(cmd *cobra.Command, args []string) error {
	h, err := openHistory()
	if err != nil {
		return err
	}
	defer h.Close()

	panel, err := newPanel(cmd, h)
	if err != nil {
		return err
	}
	defer panel.Close()

	panel.SetActive(true)
	panel.Refresh()
	return nil
}

var historyShowCmd = &cobra.Command{
	Use:   "show <index>",
	Short: "Print the full content of one history entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}

		h, err := openHistory()
		if err != nil {
			return err
		}
		defer h.Close()

		e, err := h.Get(index)
		if err != nil {
			return err
		}

		loc, err := cfg.Location()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Type:     %s\n", e.Kind)
		if !e.RecordedAt.IsZero() {
			fmt.Fprintf(out, "Recorded: %s\n", e.RecordedAt.In(loc).Format("2006-01-02 15:04:05"))
		}
		fmt.Fprintf(out, "Content:\n%s\n", e.Content)
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete one history entry by its index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}

		h, err := openHistory()
		if err != nil {
			return err
		}
		defer h.Close()

		panel, err := newPanel(cmd, h)
		if err != nil {
			return err
		}
		defer panel.Close()

		panel.SetActive(true)
		return panel.Remove(index)
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the whole history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes && !confirm(cmd, "Clear all history? [y/N] ") {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted")
			return nil
		}

		h, err := openHistory()
		if err != nil {
			return err
		}
		defer h.Close()

		panel, err := newPanel(cmd, h)
		if err != nil {
			return err
		}
		defer panel.Close()

		panel.SetActive(true)
		panel.ClearAll()
		return nil
	},
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q: %w", s, err)
	}
	if i < 0 {
		return 0, fmt.Errorf("invalid index %d: %w", i, store.ErrIndexOutOfRange)
	}
	return i, nil
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
