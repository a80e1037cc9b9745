package model

import "fmt"

// Color is the color of a pyramid
type Color string

const (
	Green  Color = "green"
	Yellow Color = "yellow"
	Red    Color = "red"
	Blue   Color = "blue"
)

// Colors lists every color in canonical order
var Colors = []Color{Green, Yellow, Red, Blue}

// Size is the size of a pyramid, ordered Small < Medium < Large
type Size string

const (
	Small  Size = "small"
	Medium Size = "medium"
	Large  Size = "large"
)

// Sizes lists every size from smallest to largest
var Sizes = []Size{Small, Medium, Large}

// Pyramid is the atomic game piece. Pyramids of equal color and size are
// interchangeable.
type Pyramid struct {
	Color Color `json:"color"`
	Size  Size  `json:"size"`
}

// Player identifies one of the two seats at the board
type Player string

const (
	First  Player = "first"
	Second Player = "second"
)

// Power is a one-time special capability granted for a turn
type Power string

const (
	PowerBuild   Power = "build"
	PowerMove    Power = "move"
	PowerCapture Power = "capture"
	PowerTrade   Power = "trade"
)

// Valid reports whether c is one of the four colors
func (c Color) Valid() bool {
	switch c {
	case Green, Yellow, Red, Blue:
		return true
	}
	return false
}

// Index returns the position of the color in Colors, or -1
func (c Color) Index() int {
	for i, color := range Colors {
		if color == c {
			return i
		}
	}
	return -1
}

// UnmarshalText rejects unknown colors
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseColor converts a name into a Color
func ParseColor(s string) (Color, error) {
	c := Color(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return c, nil
}

// Valid reports whether s is one of the three sizes
func (s Size) Valid() bool {
	return s.Rank() > 0
}

// Rank orders sizes: 1 for small, 2 for medium, 3 for large, 0 if invalid
func (s Size) Rank() int {
	switch s {
	case Small:
		return 1
	case Medium:
		return 2
	case Large:
		return 3
	}
	return 0
}

// UnmarshalText rejects unknown sizes
func (s *Size) UnmarshalText(text []byte) error {
	parsed, err := ParseSize(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSize converts a name into a Size
func ParseSize(s string) (Size, error) {
	size := Size(s)
	if !size.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}
	return size, nil
}

// NewPyramid creates a pyramid of the given color and size
func NewPyramid(color Color, size Size) Pyramid {
	return Pyramid{Color: color, Size: size}
}

// Valid reports whether both color and size are known values
func (p Pyramid) Valid() bool {
	return p.Color.Valid() && p.Size.Valid()
}

// String renders the pyramid as e.g. "red/small"
func (p Pyramid) String() string {
	return string(p.Color) + "/" + string(p.Size)
}

// Less orders pyramids by color, then by size
func (p Pyramid) Less(other Pyramid) bool {
	if p.Color != other.Color {
		return p.Color.Index() < other.Color.Index()
	}
	return p.Size.Rank() < other.Size.Rank()
}

// Valid reports whether p is First or Second
func (p Player) Valid() bool {
	return p == First || p == Second
}

// Opponent returns the other player
func (p Player) Opponent() Player {
	if p == First {
		return Second
	}
	return First
}

// UnmarshalText rejects unknown players
func (p *Player) UnmarshalText(text []byte) error {
	parsed, err := ParsePlayer(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePlayer converts a name into a Player
func ParsePlayer(s string) (Player, error) {
	p := Player(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPlayer, s)
	}
	return p, nil
}

// Valid reports whether p is a known power
func (p Power) Valid() bool {
	switch p {
	case PowerBuild, PowerMove, PowerCapture, PowerTrade:
		return true
	}
	return false
}

// UnmarshalText rejects unknown powers
func (p *Power) UnmarshalText(text []byte) error {
	parsed, err := ParsePower(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParsePower converts a name into a Power
func ParsePower(s string) (Power, error) {
	p := Power(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPower, s)
	}
	return p, nil
}
