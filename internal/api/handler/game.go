package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/homeworlds-go/internal/api/apierr"
	"github.com/mcoot/homeworlds-go/internal/api/request"
	"github.com/mcoot/homeworlds-go/internal/api/response"
	"github.com/mcoot/homeworlds-go/internal/api/sse"
	"github.com/mcoot/homeworlds-go/internal/model"
	"github.com/mcoot/homeworlds-go/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	controller *game.Controller
	hubManager *sse.HubManager
	logger     *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(controller *game.Controller, hubManager *sse.HubManager, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		controller: controller,
		hubManager: hubManager,
		logger:     logger,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := decodeJSON(r, &req, false); err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.controller.CreateGame(r.Context(), req.Setup())
	if err != nil {
		WriteError(w, err)
		return
	}
	h.writeGame(w, http.StatusCreated, g)
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := h.controller.ListGames(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.GameList{Games: make([]string, len(ids))}
	for i, id := range ids {
		resp.Games[i] = string(id)
	}
	response.JSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.controller.GetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	resp, err := response.GameFromModel(g)
	if err != nil {
		WriteError(w, err)
		return
	}
	etag := response.ETag(resp.Fingerprint)
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	response.JSON(w, http.StatusOK, resp)
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if err := h.controller.DeleteGame(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	if h.hubManager != nil {
		h.hubManager.RemoveHub(id)
	}
	response.NoContent(w)
}

// ApplyOperations handles POST /api/v1/games/{id}/operations
func (h *GameHandler) ApplyOperations(w http.ResponseWriter, r *http.Request) {
	var req request.ApplyOperationsRequest
	if err := decodeJSON(r, &req, false); err != nil {
		WriteError(w, err)
		return
	}

	ops, err := request.Operations(req.Operations)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.controller.Apply(r.Context(), gameID(r), ops, expectedFingerprint(r, req.ExpectedFingerprint))
	if err != nil {
		WriteError(w, err)
		return
	}
	h.writeGame(w, http.StatusOK, g)
}

// EndTurn handles POST /api/v1/games/{id}/turn/end
func (h *GameHandler) EndTurn(w http.ResponseWriter, r *http.Request) {
	var req request.EndTurnRequest
	if err := decodeJSON(r, &req, true); err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.controller.EndTurn(r.Context(), gameID(r), expectedFingerprint(r, req.ExpectedFingerprint))
	if err != nil {
		WriteError(w, err)
		return
	}
	h.writeGame(w, http.StatusOK, g)
}

// Events handles GET /api/v1/games/{id}/events
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if _, err := h.controller.GetGame(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}
	if h.hubManager == nil {
		WriteError(w, apierr.NewInternalError())
		return
	}

	sse.ServeSSE(w, r, h.hubManager.GetOrCreateHub(id))
}

func (h *GameHandler) writeGame(w http.ResponseWriter, status int, g *model.Game) {
	resp, err := response.GameFromModel(g)
	if err != nil {
		h.logger.Error("failed to fingerprint game",
			slog.String("game_id", string(g.ID)),
			slog.String("error", err.Error()),
		)
		WriteError(w, err)
		return
	}
	w.Header().Set("ETag", response.ETag(resp.Fingerprint))
	response.JSON(w, status, resp)
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

// expectedFingerprint prefers the body field, then an If-Match header
func expectedFingerprint(r *http.Request, fromBody string) string {
	if fromBody != "" {
		return fromBody
	}
	match := strings.TrimSpace(r.Header.Get("If-Match"))
	if match == "*" {
		return ""
	}
	return strings.Trim(strings.TrimPrefix(match, "W/"), `"`)
}
