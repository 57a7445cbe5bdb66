package cli

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/akachour/wird/internal/core/domain"
	"github.com/akachour/wird/internal/core/repository"
	"github.com/akachour/wird/internal/core/service"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show activity statistics",
	Long:  "Show aggregate activity statistics across all users",
}

var reportCompletionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Salah completion rate per user",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		entries, err := services.LedgerService.ListAll(cmd.Context(), repository.EntryFilter{})
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		rates := service.CompletionRateByUser(entries)
		if len(rates) == 0 {
			fmt.Println("No activity recorded yet")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "USERNAME\tCOMPLETION")
		for _, username := range sortedKeys(rates) {
			fmt.Fprintf(w, "%s\t%.1f%%\n", username, rates[username])
		}
		w.Flush()

		return nil
	},
}

var reportTotalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Per-user recitation totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		entries, err := services.LedgerService.ListAll(cmd.Context(), repository.EntryFilter{})
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No activity recorded yet")
			return nil
		}

		totals := make(map[string]map[string]int64, len(domain.CounterNames))
		users := map[string]bool{}
		for _, counter := range domain.CounterNames {
			sums, err := service.SumByUser(entries, counter)
			if err != nil {
				return err
			}
			totals[counter] = sums
			for username := range sums {
				users[username] = true
			}
		}

		usernames := make([]string, 0, len(users))
		for username := range users {
			usernames = append(usernames, username)
		}
		sort.Strings(usernames)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "USERNAME\tAL-ASAAS\tMARBOOTA SHAREEF\tFATIHA\tZIKR MUFRITH")
		for _, username := range usernames {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n",
				username,
				totals[domain.CounterAlAsaas][username],
				totals[domain.CounterMarbootaShareef][username],
				totals[domain.CounterFatiha][username],
				totals[domain.CounterZikrMufrith][username],
			)
		}
		w.Flush()

		return nil
	},
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportCompletionCmd)
	reportCmd.AddCommand(reportTotalsCmd)
}
