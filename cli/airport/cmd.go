// Package airport implements the airport lookup command.
package airport

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Sebo-the-tramp/travelsync/cli"
	"github.com/Sebo-the-tramp/travelsync/internal/airports"
)

// NewCmd instantiates and returns the airport command.
func NewCmd(lookup *airports.LookupClient) *cobra.Command {
	return &cobra.Command{
		Use:   "airport <code>",
		Short: "Look up an airport by its code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := strings.ToUpper(args[0])

			// The reference list answers instantly for known hubs.
			if airport, ok := airports.Resolve(code); ok {
				cli.Trip("%s - %s\n", airport.Code, airport.Name)
				cli.Member("lat %.4f, lng %.4f\n", airport.Lat, airport.Lng)
				return nil
			}

			info, err := lookup.Lookup(cmd.Context(), code)
			if errors.Is(err, airports.ErrUnknownCode) {
				cli.Error("No airport found for code %s.\n", code)
				return nil
			}
			if err != nil {
				return err
			}
			cli.Trip("%s\n", info.Name)
			cli.Member("%s, %s\n", info.City, info.Country)
			return nil
		},
	}
}
