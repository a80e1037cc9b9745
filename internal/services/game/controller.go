package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcoot/homeworlds-go/internal/dependencies/clock"
	"github.com/mcoot/homeworlds-go/internal/dependencies/random"
	"github.com/mcoot/homeworlds-go/internal/engine"
	"github.com/mcoot/homeworlds-go/internal/model"
	"github.com/mcoot/homeworlds-go/internal/storage"
)

const (
	gameIDLength  = 12
	maxIDAttempts = 5
)

// Controller owns the lifecycle of stored games. Every change to a game
// goes through the per-game lock, so at most one batch of operations is
// applied to a turn at a time.
type Controller struct {
	storage   storage.Storage
	publisher EventPublisher
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger
	locks     *gameLocks
}

// NewController creates a new Controller. A nil publisher drops events.
func NewController(
	storage storage.Storage,
	publisher EventPublisher,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &Controller{
		storage:   storage,
		publisher: publisher,
		clock:     clock,
		random:    random,
		logger:    logger,
		locks:     newGameLocks(),
	}
}

// CreateGame builds the initial board from setup and stores a new game
// with the first player to act
func (c *Controller) CreateGame(ctx context.Context, setup model.Setup) (*model.Game, error) {
	board, err := model.NewGameBoardFromSetup(setup)
	if err != nil {
		return nil, err
	}

	gameID, err := c.newGameID(ctx)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game := &model.Game{
		ID:         gameID,
		Turn:       model.NewTurnState(model.First, board),
		TurnNumber: 1,
		History:    []model.TurnSummary{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(gameID)),
		slog.String("homeworld_first", setup.First.Name),
		slog.String("homeworld_second", setup.Second.Name),
	)

	c.publish(game, model.EventGameCreated, nil)
	return game, nil
}

func (c *Controller) newGameID(ctx context.Context) (model.GameID, error) {
	for range maxIDAttempts {
		id := model.GameID(c.random.String(gameIDLength, random.IDAlphabet))
		if id == "" {
			continue
		}
		exists, err := c.storage.GameExists(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not allocate a game id after %d attempts", maxIDAttempts)
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// ListGames returns the IDs of all stored games
func (c *Controller) ListGames(ctx context.Context) ([]model.GameID, error) {
	return c.storage.ListGames(ctx)
}

// DeleteGame removes a game
func (c *Controller) DeleteGame(ctx context.Context, gameID model.GameID) error {
	release := c.locks.lock(gameID)
	defer release()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	if err := c.storage.DeleteGame(ctx, gameID); err != nil {
		return err
	}

	c.logger.Info("game deleted", slog.String("game_id", string(gameID)))
	c.publish(game, model.EventGameDeleted, nil)
	return nil
}

// Apply applies a batch of operations to the game's current turn. The
// batch is all-or-nothing: when any operation fails the stored game is
// left unchanged and the *engine.BatchError is returned. A non-empty
// expectedFingerprint must match the turn state before the batch.
func (c *Controller) Apply(ctx context.Context, gameID model.GameID, ops []engine.Operation, expectedFingerprint string) (*model.Game, error) {
	release := c.locks.lock(gameID)
	defer release()

	game, err := c.loadActive(ctx, gameID, expectedFingerprint)
	if err != nil {
		return nil, err
	}
	if len(ops) == 0 {
		return game, nil
	}

	if err := engine.ApplyAll(&game.Turn, ops...); err != nil {
		c.logger.Info("operations rejected",
			slog.String("game_id", string(gameID)),
			slog.Int("count", len(ops)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	game.TurnOperations += len(ops)
	game.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	fingerprint, err := game.Fingerprint()
	if err != nil {
		return nil, err
	}

	kinds := make([]string, len(ops))
	for i, op := range ops {
		kinds[i] = string(op.Kind())
	}

	c.logger.Debug("operations applied",
		slog.String("game_id", string(gameID)),
		slog.Any("kinds", kinds),
	)

	c.publish(game, model.EventOperationsApplied, model.OperationsAppliedPayload{
		Kinds:       kinds,
		Fingerprint: fingerprint,
	})
	return game, nil
}

// EndTurn closes the current turn. A resigning player finishes the game;
// otherwise the opponent starts a fresh turn on the same board.
func (c *Controller) EndTurn(ctx context.Context, gameID model.GameID, expectedFingerprint string) (*model.Game, error) {
	release := c.locks.lock(gameID)
	defer release()

	game, err := c.loadActive(ctx, gameID, expectedFingerprint)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	acting := game.Turn.Player
	summary := model.TurnSummary{
		Number:     game.TurnNumber,
		Player:     acting,
		Status:     game.Turn.Status,
		Operations: game.TurnOperations,
		EndedAt:    now,
	}
	game.History = append(game.History, summary)
	game.UpdatedAt = now

	resigned := game.Turn.Status == model.Resigning
	var next model.Player
	if resigned {
		game.Finished = true
	} else {
		next = acting.Opponent()
		game.Turn = model.NewTurnState(next, game.Turn.GameBoard)
		game.TurnNumber++
		game.TurnOperations = 0
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("turn ended",
		slog.String("game_id", string(gameID)),
		slog.Int("turn", summary.Number),
		slog.String("player", string(acting)),
		slog.String("status", string(summary.Status)),
	)

	c.publishAs(game, acting, model.EventTurnEnded, model.TurnEndedPayload{
		Summary:    summary,
		NextPlayer: next,
		TurnNumber: game.TurnNumber,
	})
	if resigned {
		c.logger.Info("game finished",
			slog.String("game_id", string(gameID)),
			slog.String("resigned_by", string(acting)),
		)
		c.publishAs(game, acting, model.EventGameFinished, model.GameFinishedPayload{ResignedBy: acting})
	}
	return game, nil
}

// loadActive fetches a game that is still being played and whose turn
// state matches expectedFingerprint, when one is given
func (c *Controller) loadActive(ctx context.Context, gameID model.GameID, expectedFingerprint string) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.Finished {
		return nil, model.ErrGameFinished
	}
	if expectedFingerprint == "" {
		return game, nil
	}

	fingerprint, err := game.Fingerprint()
	if err != nil {
		return nil, err
	}
	if fingerprint != expectedFingerprint {
		return nil, model.ErrFingerprintMismatch
	}
	return game, nil
}

func (c *Controller) publish(game *model.Game, eventType model.EventType, payload any) {
	c.publishAs(game, game.Turn.Player, eventType, payload)
}

func (c *Controller) publishAs(game *model.Game, player model.Player, eventType model.EventType, payload any) {
	c.publisher.Publish(model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		GameID:    game.ID,
		Player:    player,
		Payload:   payload,
	})
}
