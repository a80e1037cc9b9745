package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// LedgerEntry is the wire form of one ledger key and its count
type LedgerEntry struct {
	Color Color `json:"color"`
	Size  Size  `json:"size"`
	Count uint8 `json:"count"`
}

type centerJSON struct {
	Kind  CenterKind `json:"kind"`
	Star  *Star      `json:"star,omitempty"`
	Alpha *Star      `json:"alpha,omitempty"`
	Beta  *Star      `json:"beta,omitempty"`
}

// MarshalJSON encodes the center as {"kind": ..., stars...}
func (c StarSystemCenter) MarshalJSON() ([]byte, error) {
	out := centerJSON{Kind: c.Kind()}
	switch c.kind {
	case CenterSingle:
		star := c.alpha
		out.Star = &star
	case CenterBinary:
		alpha, beta := c.alpha, c.beta
		out.Alpha = &alpha
		out.Beta = &beta
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes and validates a center
func (c *StarSystemCenter) UnmarshalJSON(data []byte) error {
	var in centerJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch in.Kind {
	case CenterEmpty, "":
		*c = EmptyCenter()
	case CenterSingle:
		if in.Star == nil {
			return fmt.Errorf("%w: single center needs a star", ErrInvalidCenter)
		}
		*c = SingleStar(*in.Star)
	case CenterBinary:
		if in.Alpha == nil || in.Beta == nil {
			return fmt.Errorf("%w: binary center needs alpha and beta", ErrInvalidCenter)
		}
		*c = BinaryStar(*in.Alpha, *in.Beta)
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidCenter, in.Kind)
	}
	return nil
}

type pendingPowersJSON struct {
	Phase         PowersPhase `json:"phase"`
	Power         Power       `json:"power,omitempty"`
	Count         uint8       `json:"count,omitempty"`
	OriginalCount uint8       `json:"original_count,omitempty"`
}

// MarshalJSON encodes the pending powers phase and its data
func (p PendingPowers) MarshalJSON() ([]byte, error) {
	return json.Marshal(pendingPowersJSON{
		Phase:         p.Phase(),
		Power:         p.power,
		Count:         p.count,
		OriginalCount: p.originalCount,
	})
}

// UnmarshalJSON decodes and validates pending powers
func (p *PendingPowers) UnmarshalJSON(data []byte) error {
	// Power is decoded as a plain string so the Nil phase may omit it
	var in struct {
		Phase         PowersPhase `json:"phase"`
		Power         string      `json:"power"`
		Count         uint8       `json:"count"`
		OriginalCount uint8       `json:"original_count"`
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch in.Phase {
	case PowersNil, "":
		*p = NoPendingPowers()
		return nil
	case PowersPending, PowersExhausted:
	default:
		return fmt.Errorf("%w: unknown phase %q", ErrInvalidPendingPowers, in.Phase)
	}

	power, err := ParsePower(in.Power)
	if err != nil {
		return err
	}
	if in.OriginalCount == 0 {
		return fmt.Errorf("%w: original count must be positive", ErrInvalidPendingPowers)
	}
	if in.Phase == PowersExhausted {
		*p = ExhaustedPowers(power, in.OriginalCount)
		return nil
	}
	if in.Count == 0 || in.Count > in.OriginalCount {
		return fmt.Errorf("%w: count %d out of range", ErrInvalidPendingPowers, in.Count)
	}
	*p = PendingPowers{phase: PowersPending, power: power, count: in.Count, originalCount: in.OriginalCount}
	return nil
}

// MarshalJSON encodes the fleet as entries sorted by color then size
func (f Fleet) MarshalJSON() ([]byte, error) {
	entries := make([]LedgerEntry, 0, len(f.Starships))
	for ship, count := range f.Starships {
		entries = append(entries, LedgerEntry{Color: ship.Color, Size: ship.Size, Count: count})
	}
	sortEntries(entries)
	return json.Marshal(entries)
}

// UnmarshalJSON decodes a fleet, rejecting zero counts and duplicates
func (f *Fleet) UnmarshalJSON(data []byte) error {
	entries, err := decodeEntries(data)
	if err != nil {
		return err
	}
	starships := make(map[Starship]uint8, len(entries))
	for _, e := range entries {
		starships[NewStarship(e.Color, e.Size)] = e.Count
	}
	f.Starships = starships
	return nil
}

// MarshalJSON encodes the bank as entries sorted by color then size
func (b Bank) MarshalJSON() ([]byte, error) {
	entries := make([]LedgerEntry, 0, len(b.Pyramids))
	for pyramid, count := range b.Pyramids {
		entries = append(entries, LedgerEntry{Color: pyramid.Color, Size: pyramid.Size, Count: count})
	}
	sortEntries(entries)
	return json.Marshal(entries)
}

// UnmarshalJSON decodes a bank, rejecting zero counts and duplicates
func (b *Bank) UnmarshalJSON(data []byte) error {
	entries, err := decodeEntries(data)
	if err != nil {
		return err
	}
	pyramids := make(map[Pyramid]uint8, len(entries))
	for _, e := range entries {
		pyramids[NewPyramid(e.Color, e.Size)] = e.Count
	}
	b.Pyramids = pyramids
	return nil
}

func sortEntries(entries []LedgerEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return NewPyramid(entries[i].Color, entries[i].Size).Less(NewPyramid(entries[j].Color, entries[j].Size))
	})
}

func decodeEntries(data []byte) ([]LedgerEntry, error) {
	var entries []LedgerEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	seen := make(map[Pyramid]bool, len(entries))
	for _, e := range entries {
		p := NewPyramid(e.Color, e.Size)
		if e.Count == 0 {
			return nil, fmt.Errorf("%w: zero count for %s", ErrInvalidLedger, p)
		}
		if seen[p] {
			return nil, fmt.Errorf("%w: duplicate entry for %s", ErrInvalidLedger, p)
		}
		seen[p] = true
	}
	return entries, nil
}
