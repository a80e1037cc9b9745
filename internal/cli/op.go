package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/homeworlds-go/internal/api/request"
	"github.com/mcoot/homeworlds-go/internal/api/response"
	"github.com/mcoot/homeworlds-go/internal/engine"
	"github.com/mcoot/homeworlds-go/internal/model"
)

func newOpCmd() *cobra.Command {
	var fingerprint string

	cmd := &cobra.Command{
		Use:   "op",
		Short: "Apply turn operations",
		Long: `Apply operations to the current turn of a game.

Each subcommand sends a single operation. Use "op apply" to send a batch
from a JSON file; a batch commits as a whole or not at all.`,
	}

	cmd.PersistentFlags().StringVar(&fingerprint, "fingerprint", "", "Fail unless the game still has this fingerprint")

	single := func(build func(args []string) (engine.Operation, error)) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			op, err := build(args[1:])
			if err != nil {
				return err
			}
			return applyOperations(cmd, args[0], fingerprint, op)
		}
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "discover <id> <name> <star>",
		Short: "Discover a new star system around a single star",
		Args:  cobra.ExactArgs(3),
		RunE: single(func(args []string) (engine.Operation, error) {
			star, err := parsePyramid(args[1])
			if err != nil {
				return nil, err
			}
			return engine.DiscoverSystem{Name: args[0], CenterStar: model.Star{Pyramid: star}}, nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "forget <id> <name>",
		Short: "Remove a discovered system whose fleets are empty",
		Args:  cobra.ExactArgs(2),
		RunE: single(func(args []string) (engine.Operation, error) {
			return engine.ForgetSystem{Name: args[0]}, nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "fleet <id> <system> <player> <ship> <add|remove>",
		Short: "Add or remove one starship in a player's fleet",
		Args:  cobra.ExactArgs(5),
		RunE: single(func(args []string) (engine.Operation, error) {
			player, err := model.ParsePlayer(args[1])
			if err != nil {
				return nil, err
			}
			ship, err := parsePyramid(args[2])
			if err != nil {
				return nil, err
			}
			delta, err := parseDelta(args[3])
			if err != nil {
				return nil, err
			}
			return engine.UpdateFleet{SystemName: args[0], Player: player, Starship: model.Starship{Pyramid: ship}, Delta: delta}, nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "bank <id> <pyramid> <add|remove>",
		Short: "Add or remove one pyramid in the bank",
		Args:  cobra.ExactArgs(3),
		RunE: single(func(args []string) (engine.Operation, error) {
			pyramid, err := parsePyramid(args[0])
			if err != nil {
				return nil, err
			}
			delta, err := parseDelta(args[1])
			if err != nil {
				return nil, err
			}
			return engine.UpdateBank{Pyramid: pyramid, Delta: delta}, nil
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "destroy <id> <system> [single|alpha|beta]",
		Short: "Destroy a star at the center of a system",
		Args:  cobra.RangeArgs(2, 3),
		RunE: single(func(args []string) (engine.Operation, error) {
			target := request.TargetSingle
			if len(args) > 1 {
				target = args[1]
			}
			req := request.OperationRequest{Type: engine.KindDestroyStar, System: args[0], Target: target}
			return req.ToOperation()
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "powers <id> (set <power> <count> | use-one)",
		Short: "Grant the turn's pending power, or use one of it",
		Args:  cobra.RangeArgs(2, 4),
		RunE: single(func(args []string) (engine.Operation, error) {
			switch {
			case args[0] == "use-one" && len(args) == 1:
				return engine.UseOnePower(), nil
			case args[0] == "set" && len(args) == 3:
				power, err := model.ParsePower(args[1])
				if err != nil {
					return nil, err
				}
				count, err := strconv.ParseUint(args[2], 10, 8)
				if err != nil {
					return nil, fmt.Errorf("count %q must be between 0 and 255", args[2])
				}
				return engine.SetPowers(power, uint8(count)), nil
			}
			return nil, fmt.Errorf("expected \"set <power> <count>\" or \"use-one\"")
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status <id> <passing|resigning>",
		Short: "Set the status of the current turn",
		Args:  cobra.ExactArgs(2),
		RunE: single(func(args []string) (engine.Operation, error) {
			status, err := model.ParseTurnStatus(args[0])
			if err != nil {
				return nil, err
			}
			return engine.SetCurrentTurnStatus{Status: status}, nil
		}),
	})

	cmd.AddCommand(newOpApplyCmd(&fingerprint))

	return cmd
}

func newOpApplyCmd(fingerprint *string) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "apply <id> -f <file>",
		Short: "Apply a batch of operations from JSON",
		Long: `Apply a batch of operations read from a file ("-" for stdin). The file
holds either a JSON array of operations or an object with an
"operations" array and an optional "expected_fingerprint".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer func() { _ = f.Close() }()
				r = f
			}

			req, err := readBatch(r)
			if err != nil {
				return err
			}
			if *fingerprint != "" {
				req.ExpectedFingerprint = *fingerprint
			}
			return postOperations(cmd, args[0], req)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "JSON file with the operations")

	return cmd
}

// readBatch accepts a bare array of operations or a full request object
func readBatch(r io.Reader) (request.ApplyOperationsRequest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return request.ApplyOperationsRequest{}, err
	}

	var ops []request.OperationRequest
	if err := json.Unmarshal(data, &ops); err == nil {
		return request.ApplyOperationsRequest{Operations: ops}, nil
	}

	var req request.ApplyOperationsRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return request.ApplyOperationsRequest{}, fmt.Errorf("failed to parse operations: %w", err)
	}
	return req, nil
}

func applyOperations(cmd *cobra.Command, gameID, fingerprint string, ops ...engine.Operation) error {
	req := request.ApplyOperationsRequest{ExpectedFingerprint: fingerprint}
	for _, op := range ops {
		wire, err := request.FromOperation(op)
		if err != nil {
			return err
		}
		req.Operations = append(req.Operations, wire)
	}
	return postOperations(cmd, gameID, req)
}

func postOperations(cmd *cobra.Command, gameID string, req request.ApplyOperationsRequest) error {
	var result response.Game
	if err := client.Post(gamePath(gameID)+"/operations", req, &result); err != nil {
		return err
	}

	NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
	return nil
}
