package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/mcoot/homeworlds-go/internal/api/response"
	"github.com/mcoot/homeworlds-go/internal/model"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w, or stdout if nil
func NewOutput(format string, w io.Writer) *Output {
	if w == nil {
		w = os.Stdout
	}
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		o.printf("%s\n", msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Game:
		o.printGame(v)
	case response.GameList:
		o.printGameList(v)
	case response.Health:
		o.printHealth(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printGame(g response.Game) {
	o.printf("Game: %s\n", g.ID)
	o.printf("Fingerprint: %s\n", g.Fingerprint)
	if g.Finished {
		o.printf("State: finished after %d turns\n", len(g.History))
	} else {
		o.printf("Turn: %d (%s, %s)\n", g.TurnNumber, g.Turn.Player, g.Turn.Status)
		o.printf("Operations this turn: %d\n", g.TurnOperations)
		o.printf("Pending powers: %s\n", g.Turn.PendingPowers)
	}

	board := g.Turn.GameBoard
	o.printf("\nBank: %s\n", formatCounts(board.Bank.Pyramids))

	o.printf("\nSystems:\n")
	for _, system := range board.Systems() {
		o.printSystem(system)
	}

	if len(g.History) > 0 {
		o.printf("\nHistory:\n")
		for _, turn := range g.History {
			o.printf("  %d. %s %s (%d operations)\n", turn.Number, turn.Player, turn.Status, turn.Operations)
		}
	}
}

func (o *Output) printSystem(s *model.StarSystem) {
	home := ""
	if s.HomeworldFor != nil {
		home = fmt.Sprintf(" [homeworld of %s]", *s.HomeworldFor)
	}

	stars := s.Center.Stars()
	names := make([]string, len(stars))
	for i, star := range stars {
		names[i] = star.String()
	}
	center := strings.Join(names, " + ")
	if center == "" {
		center = "empty"
	}

	o.printf("  %s%s: %s\n", s.Name, home, center)
	o.printf("    first:  %s\n", formatCounts(shipCounts(s.FleetFirst)))
	o.printf("    second: %s\n", formatCounts(shipCounts(s.FleetSecond)))
}

func (o *Output) printGameList(l response.GameList) {
	if len(l.Games) == 0 {
		o.printf("No games\n")
		return
	}
	o.printf("Games (%d):\n", len(l.Games))
	for _, id := range l.Games {
		o.printf("  - %s\n", id)
	}
}

func (o *Output) printHealth(h response.Health) {
	o.printf("Status: %s\n", h.Status)
	if h.Storage != "" {
		o.printf("Storage: %s\n", h.Storage)
	}
}

// formatCounts renders a ledger in pyramid order, e.g. "red/small x2"
func formatCounts(counts map[model.Pyramid]uint8) string {
	if len(counts) == 0 {
		return "-"
	}
	keys := make([]model.Pyramid, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b model.Pyramid) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s x%d", k, counts[k])
	}
	return strings.Join(parts, ", ")
}

func shipCounts(f model.Fleet) map[model.Pyramid]uint8 {
	counts := make(map[model.Pyramid]uint8, len(f.Starships))
	for ship, n := range f.Starships {
		counts[ship.Pyramid] = n
	}
	return counts
}
