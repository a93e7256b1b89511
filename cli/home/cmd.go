// Package home implements the trips overview command.
package home

import (
	"github.com/spf13/cobra"

	"github.com/Sebo-the-tramp/travelsync/cli"
	"github.com/Sebo-the-tramp/travelsync/internal/api"
)

// NewCmd instantiates and returns the trips command.
func NewCmd(client *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "trips",
		Short: "List the trips you are part of",
		RunE: func(cmd *cobra.Command, args []string) error {
			trips, err := client.Me(cmd.Context())
			if err != nil {
				return err
			}

			cli.Title("Your Trips")
			if len(trips) == 0 {
				cli.Notice("No trips yet. Create one with `travelsync create` or join one with `travelsync join`.\n")
				return nil
			}
			for _, summary := range trips {
				cli.Trip("#%d %s", summary.ID, summary.Name)
				cli.Member("  created by %s\n", summary.CreatorName)
			}
			cli.Separator()
			return nil
		},
	}
}
