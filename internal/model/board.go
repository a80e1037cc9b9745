package model

import "fmt"

// Star is a pyramid placed at the center of a star system
type Star struct {
	Pyramid
}

// Starship is a pyramid owned by a player inside a star system.
// Starships with equal pyramids share a ledger entry.
type Starship struct {
	Pyramid
}

// NewStar creates a star from a color and size
func NewStar(color Color, size Size) Star {
	return Star{Pyramid: NewPyramid(color, size)}
}

// NewStarship creates a starship from a color and size
func NewStarship(color Color, size Size) Starship {
	return Starship{Pyramid: NewPyramid(color, size)}
}

// CenterKind identifies which variant a StarSystemCenter holds
type CenterKind string

const (
	CenterEmpty  CenterKind = "empty"
	CenterSingle CenterKind = "single"
	CenterBinary CenterKind = "binary"
)

// BinaryStarID selects one of the two stars of a binary center
type BinaryStarID string

const (
	Alpha BinaryStarID = "alpha"
	Beta  BinaryStarID = "beta"
)

// UnmarshalText rejects unknown star ids
func (id *BinaryStarID) UnmarshalText(text []byte) error {
	switch v := BinaryStarID(text); v {
	case Alpha, Beta:
		*id = v
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidStarID, string(text))
}

// StarSystemCenter is either empty, a single star, or a binary pair.
// The zero value is the empty center.
type StarSystemCenter struct {
	kind  CenterKind
	alpha Star
	beta  Star
}

// EmptyCenter returns a center with no stars
func EmptyCenter() StarSystemCenter {
	return StarSystemCenter{}
}

// SingleStar returns a center holding one star
func SingleStar(star Star) StarSystemCenter {
	return StarSystemCenter{kind: CenterSingle, alpha: star}
}

// BinaryStar returns a center holding two stars
func BinaryStar(alpha, beta Star) StarSystemCenter {
	return StarSystemCenter{kind: CenterBinary, alpha: alpha, beta: beta}
}

// Kind returns the variant held by the center
func (c StarSystemCenter) Kind() CenterKind {
	if c.kind == "" {
		return CenterEmpty
	}
	return c.kind
}

// IsEmpty reports whether the center holds no stars
func (c StarSystemCenter) IsEmpty() bool {
	return c.Kind() == CenterEmpty
}

// Single returns the star of a single-star center
func (c StarSystemCenter) Single() (Star, bool) {
	if c.kind != CenterSingle {
		return Star{}, false
	}
	return c.alpha, true
}

// Binary returns both stars of a binary center
func (c StarSystemCenter) Binary() (alpha, beta Star, ok bool) {
	if c.kind != CenterBinary {
		return Star{}, Star{}, false
	}
	return c.alpha, c.beta, true
}

// Stars returns the stars of the center in alpha, beta order
func (c StarSystemCenter) Stars() []Star {
	switch c.kind {
	case CenterSingle:
		return []Star{c.alpha}
	case CenterBinary:
		return []Star{c.alpha, c.beta}
	}
	return nil
}

// CenterFromStars builds a center from zero, one or two stars
func CenterFromStars(stars []Star) (StarSystemCenter, error) {
	switch len(stars) {
	case 0:
		return EmptyCenter(), nil
	case 1:
		return SingleStar(stars[0]), nil
	case 2:
		return BinaryStar(stars[0], stars[1]), nil
	}
	return StarSystemCenter{}, fmt.Errorf("%w: a star system has at most two stars, got %d", ErrInvalidSetup, len(stars))
}

// Fleet counts a player's starships within one star system.
// A starship is present only while its count is positive.
type Fleet struct {
	Starships map[Starship]uint8
}

// NewFleet creates an empty fleet
func NewFleet() Fleet {
	return Fleet{Starships: make(map[Starship]uint8)}
}

// Counts returns the underlying ledger, allocating it if needed
func (f *Fleet) Counts() map[Starship]uint8 {
	if f.Starships == nil {
		f.Starships = make(map[Starship]uint8)
	}
	return f.Starships
}

// Count returns how many starships of this kind are in the fleet
func (f Fleet) Count(ship Starship) uint8 {
	return f.Starships[ship]
}

// IsEmpty reports whether the fleet holds no starships
func (f Fleet) IsEmpty() bool {
	return len(f.Starships) == 0
}

// Bank counts the shared supply of pyramids not in play.
// A pyramid is present only while its count is positive.
type Bank struct {
	Pyramids map[Pyramid]uint8
}

// NewBank creates an empty bank
func NewBank() Bank {
	return Bank{Pyramids: make(map[Pyramid]uint8)}
}

// Counts returns the underlying ledger, allocating it if needed
func (b *Bank) Counts() map[Pyramid]uint8 {
	if b.Pyramids == nil {
		b.Pyramids = make(map[Pyramid]uint8)
	}
	return b.Pyramids
}

// Count returns how many pyramids of this kind are in the bank
func (b Bank) Count(p Pyramid) uint8 {
	return b.Pyramids[p]
}

// StarSystem is a named location on the board
type StarSystem struct {
	Name         string           `json:"name"`
	Center       StarSystemCenter `json:"center"`
	FleetFirst   Fleet            `json:"fleet_first"`
	FleetSecond  Fleet            `json:"fleet_second"`
	HomeworldFor *Player          `json:"homeworld_for,omitempty"`
}

// NewStarSystem creates a non-homeworld system with empty fleets
func NewStarSystem(name string, center StarSystemCenter) StarSystem {
	return StarSystem{
		Name:        name,
		Center:      center,
		FleetFirst:  NewFleet(),
		FleetSecond: NewFleet(),
	}
}

// NewHomeworld creates a system permanently associated with a player
func NewHomeworld(name string, center StarSystemCenter, owner Player) StarSystem {
	system := NewStarSystem(name, center)
	system.HomeworldFor = &owner
	return system
}

// Fleet returns the given player's fleet in this system
func (s *StarSystem) Fleet(player Player) *Fleet {
	if player == Second {
		return &s.FleetSecond
	}
	return &s.FleetFirst
}

// IsHomeworld reports whether the system is tagged as a player's homeworld
func (s *StarSystem) IsHomeworld() bool {
	return s.HomeworldFor != nil
}

// FleetsEmpty reports whether neither player has starships here
func (s *StarSystem) FleetsEmpty() bool {
	return s.FleetFirst.IsEmpty() && s.FleetSecond.IsEmpty()
}

// GameBoard is the bank, both homeworlds and every discovered system
type GameBoard struct {
	Bank              Bank         `json:"bank"`
	HomeworldFirst    StarSystem   `json:"homeworld_first"`
	HomeworldSecond   StarSystem   `json:"homeworld_second"`
	DiscoveredSystems []StarSystem `json:"discovered_systems"`
}

// NewGameBoard creates a board with the given homeworlds, an empty bank
// and no discovered systems
func NewGameBoard(homeworldFirst, homeworldSecond StarSystem) GameBoard {
	return GameBoard{
		Bank:              NewBank(),
		HomeworldFirst:    homeworldFirst,
		HomeworldSecond:   homeworldSecond,
		DiscoveredSystems: []StarSystem{},
	}
}

// Homeworld returns the given player's homeworld
func (b *GameBoard) Homeworld(player Player) *StarSystem {
	if player == Second {
		return &b.HomeworldSecond
	}
	return &b.HomeworldFirst
}

// Systems returns every system on the board, homeworlds first
func (b *GameBoard) Systems() []*StarSystem {
	systems := make([]*StarSystem, 0, len(b.DiscoveredSystems)+2)
	systems = append(systems, &b.HomeworldFirst, &b.HomeworldSecond)
	for i := range b.DiscoveredSystems {
		systems = append(systems, &b.DiscoveredSystems[i])
	}
	return systems
}

// FindSystem looks a system up by exact name, or returns nil
func (b *GameBoard) FindSystem(name string) *StarSystem {
	for _, system := range b.Systems() {
		if system.Name == name {
			return system
		}
	}
	return nil
}

// DiscoveredIndex returns the index of a discovered system, or -1
func (b *GameBoard) DiscoveredIndex(name string) int {
	for i := range b.DiscoveredSystems {
		if b.DiscoveredSystems[i].Name == name {
			return i
		}
	}
	return -1
}
