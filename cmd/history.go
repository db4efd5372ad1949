package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/arvoai/arvo/internal/history"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past deployments",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		records, err := store.List(context.Background(), limit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No deployments recorded.")
			return nil
		}
		for _, r := range records {
			status := "ok"
			if !r.Success {
				status = "failed"
			}
			fmt.Printf("%4d  %s  %-6s  %-8s  %-13s  %s  %s\n",
				r.ID, r.CreatedAt.Format("2006-01-02 15:04"), status, r.Provider,
				orDash(r.Strategy), orDash(r.Framework), r.Locator)
		}
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one deployment record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("bad id %q: %w", args[0], err)
		}
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()

		rec, err := store.Get(context.Background(), id)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.Flags().Int("limit", 20, "number of records to list")
}

func openHistory() (*history.Store, error) {
	path := viper.GetString("history.path")
	if path == "" {
		path = defaultHistoryPath()
	}
	return history.Open(path)
}
