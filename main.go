package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Sebo-the-tramp/travelsync/cli/airport"
	"github.com/Sebo-the-tramp/travelsync/cli/home"
	"github.com/Sebo-the-tramp/travelsync/cli/trip"
	"github.com/Sebo-the-tramp/travelsync/configuration"
	"github.com/Sebo-the-tramp/travelsync/internal/airports"
	"github.com/Sebo-the-tramp/travelsync/internal/api"
	"github.com/Sebo-the-tramp/travelsync/internal/session"
)

const configFilepath = "~/.travelsync/config.json"

var rootCmd = &cobra.Command{
	Use:   "travelsync",
	Short: "Plan group trips with your friends and an AI assistant",
}

func main() {
	config, err := configuration.Parse(configFilepath)
	if err != nil {
		panic(err)
	}

	store, err := session.New(config.SessionPath())
	if err != nil {
		panic(err)
	}
	defer store.Close()

	// Instantiate the API client, replaying the stored identity if any.
	apiClient := api.New(config.APIBaseURL, time.Duration(config.RequestTimeout)*time.Second)
	userID, err := store.UserID()
	if err != nil {
		panic(err)
	}
	if userID != "" {
		apiClient.SetUserID(userID)
	}

	lookup := airports.NewLookupClient(config.AirportDBHost, config.AirportDBToken)

	rootCmd.AddCommand(home.NewCmd(apiClient))
	rootCmd.AddCommand(trip.NewCreateCmd(config, apiClient, store))
	rootCmd.AddCommand(trip.NewJoinCmd(config, apiClient, store))
	rootCmd.AddCommand(trip.NewOpenCmd(config, apiClient))
	rootCmd.AddCommand(trip.NewLeaveCmd(apiClient))
	rootCmd.AddCommand(airport.NewCmd(lookup))
	rootCmd.Execute()
}
