package trip

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Sebo-the-tramp/travelsync/cli"
	"github.com/Sebo-the-tramp/travelsync/cli/onboard"
	"github.com/Sebo-the-tramp/travelsync/configuration"
	"github.com/Sebo-the-tramp/travelsync/internal/api"
	"github.com/Sebo-the-tramp/travelsync/internal/deck"
	"github.com/Sebo-the-tramp/travelsync/internal/session"
	triptypes "github.com/Sebo-the-tramp/travelsync/internal/trip"
)

// NewCreateCmd instantiates and returns the create command.
func NewCreateCmd(config *configuration.Config, apiClient *api.Client, store *session.Store) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "create <trip name>",
		Short: "Create a trip and open it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answers, err := ensurePreferences(store)
			if err != nil {
				return err
			}

			membership, apiErr := apiClient.CreateTrip(cmd.Context(), api.CreateTripRequest{
				Name:      name,
				TripName:  args[0],
				Questions: answers,
			})
			if apiErr != nil {
				return apiErr
			}
			if err := store.SetUserID(apiClient.UserID()); err != nil {
				return err
			}

			cli.Notice("Created trip #%d. Share this id so friends can join.\n", membership.TripID)
			return runTrip(cmd, config, apiClient, membership.TripID)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "your display name (first trip only)")
	return cmd
}

// NewJoinCmd instantiates and returns the join command.
func NewJoinCmd(config *configuration.Config, apiClient *api.Client, store *session.Store) *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "join <trip-id>",
		Short: "Join a trip and open it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tripID, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Errorf("invalid trip id %q", args[0])
			}

			answers, err := ensurePreferences(store)
			if err != nil {
				return err
			}

			_, apiErr := apiClient.JoinTrip(cmd.Context(), api.JoinTripRequest{
				TripID:    tripID,
				Name:      name,
				Questions: answers,
			})
			if apiErr != nil {
				return apiErr
			}
			if err := store.SetUserID(apiClient.UserID()); err != nil {
				return err
			}

			return runTrip(cmd, config, apiClient, tripID)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "your display name (first trip only)")
	return cmd
}

// NewOpenCmd instantiates and returns the open command.
func NewOpenCmd(config *configuration.Config, apiClient *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "open <trip-id>",
		Short: "Open a trip you are already part of",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tripID, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Errorf("invalid trip id %q", args[0])
			}
			return runTrip(cmd, config, apiClient, tripID)
		},
	}
}

// NewLeaveCmd instantiates and returns the leave command.
func NewLeaveCmd(apiClient *api.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "leave <trip-id>",
		Short: "Leave a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tripID, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Errorf("invalid trip id %q", args[0])
			}
			result, apiErr := apiClient.LeaveTrip(cmd.Context(), tripID)
			if apiErr != nil {
				return apiErr
			}
			if result.Message != "" {
				cli.Notice("%s\n", result.Message)
			}
			return nil
		},
	}
}

// ensurePreferences returns the stored onboarding answers, running the
// questionnaire first if none exist yet.
func ensurePreferences(store *session.Store) ([]triptypes.QuestionAnswer, error) {
	answers, err := store.Preferences()
	if err != nil {
		return nil, err
	}
	if answers != nil {
		return answers, nil
	}

	answers, err = onboard.Run(deck.DefaultQuestions())
	if err != nil {
		return nil, err
	}
	if err := store.SetPreferences(answers); err != nil {
		return nil, err
	}
	return answers, nil
}

// runTrip fetches the trip and runs the interactive view.
func runTrip(cmd *cobra.Command, config *configuration.Config, apiClient *api.Client, tripID int) error {
	ctx := cmd.Context()

	info, apiErr := apiClient.TripInfo(ctx, tripID)
	if apiErr != nil {
		return apiErr
	}
	if !info.IsMember {
		return errors.Errorf("you are not a member of trip %d, join it first", tripID)
	}

	m, err := NewModel(ctx, config, apiClient, tripID, info)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithMouseCellMotion(),
	)
	m.SetProgram(p)

	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "running trip view")
	}
	return nil
}
