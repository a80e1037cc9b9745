package cli

import (
	"fmt"
	"strings"

	"github.com/mcoot/homeworlds-go/internal/engine"
	"github.com/mcoot/homeworlds-go/internal/model"
)

// parsePyramid reads a "color/size" pair such as "red/small"
func parsePyramid(s string) (model.Pyramid, error) {
	colorName, sizeName, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "/")
	if !ok {
		return model.Pyramid{}, fmt.Errorf("pyramid %q must be color/size, e.g. red/small", s)
	}
	color, err := model.ParseColor(colorName)
	if err != nil {
		return model.Pyramid{}, err
	}
	size, err := model.ParseSize(sizeName)
	if err != nil {
		return model.Pyramid{}, err
	}
	return model.NewPyramid(color, size), nil
}

// parseStars reads a comma separated list of pyramids. An empty string is
// no stars at all.
func parseStars(s string) ([]model.Star, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var stars []model.Star
	for _, part := range strings.Split(s, ",") {
		p, err := parsePyramid(part)
		if err != nil {
			return nil, err
		}
		stars = append(stars, model.Star{Pyramid: p})
	}
	return stars, nil
}

// parseDelta accepts add/remove as well as the wire names
func parseDelta(s string) (engine.Delta, error) {
	switch strings.ToLower(s) {
	case "add", "+", string(engine.AddOne):
		return engine.AddOne, nil
	case "remove", "-", string(engine.RemoveOne):
		return engine.RemoveOne, nil
	}
	return "", fmt.Errorf("delta %q must be add or remove", s)
}
