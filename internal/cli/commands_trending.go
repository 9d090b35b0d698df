package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTrendingCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "trending",
		Short: "Show the trending dish queries.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := deps.Trending.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("loading trending dishes: %w", err)
			}

			out := cmd.OutOrStdout()
			for i, entry := range entries {
				_, _ = fmt.Fprintf(out, "%d. %s (%d)\n", i+1, entry.Name, entry.Popularity)
			}
			return nil
		},
	}
}
