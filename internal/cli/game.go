package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/mcoot/homeworlds-go/internal/api/request"
	"github.com/mcoot/homeworlds-go/internal/api/response"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameDeleteCmd())
	cmd.AddCommand(newGameEndTurnCmd())

	return cmd
}

func newGameCreateCmd() *cobra.Command {
	var firstName, firstStars, secondName, secondStars string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game from two homeworlds",
		Long: `Create a new game. Each homeworld takes a name and up to two stars,
given as comma separated color/size pairs:

  hwgame game create --first-name Sol --first-stars yellow/small,blue/medium \
                     --second-name Vega --second-stars red/large`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			first, err := parseStars(firstStars)
			if err != nil {
				return fmt.Errorf("--first-stars: %w", err)
			}
			second, err := parseStars(secondStars)
			if err != nil {
				return fmt.Errorf("--second-stars: %w", err)
			}

			req := request.CreateGameRequest{
				First:  request.HomeworldRequest{Name: firstName, Stars: first},
				Second: request.HomeworldRequest{Name: secondName, Stars: second},
			}

			var result response.Game
			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "Name of the first player's homeworld")
	cmd.Flags().StringVar(&firstStars, "first-stars", "", "Stars of the first player's homeworld")
	cmd.Flags().StringVar(&secondName, "second-name", "", "Name of the second player's homeworld")
	cmd.Flags().StringVar(&secondStars, "second-stars", "", "Stars of the second player's homeworld")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("second-name")

	return cmd
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameList

			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get current game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game

			if err := client.Get(gamePath(args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(gamePath(args[0])); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage(fmt.Sprintf("Deleted game %s", args[0]))
			return nil
		},
	}
}

func newGameEndTurnCmd() *cobra.Command {
	var fingerprint string

	cmd := &cobra.Command{
		Use:   "end-turn <id>",
		Short: "End the current turn and hand play to the opponent",
		Long: `End the current turn. A turn whose status is resigning finishes the game;
otherwise the opponent starts a fresh turn.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Game

			req := request.EndTurnRequest{ExpectedFingerprint: fingerprint}
			if err := client.Post(gamePath(args[0])+"/turn/end", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&fingerprint, "fingerprint", "", "Fail unless the game still has this fingerprint")

	return cmd
}

func gamePath(id string) string {
	return "/api/v1/games/" + url.PathEscape(id)
}
