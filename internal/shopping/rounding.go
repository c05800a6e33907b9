package shopping

import (
	"math"
	"strings"
)

type unitClass int

const (
	unitOther unitClass = iota
	unitKilogram
	unitGram
	unitMillilitre
	unitLitre
	unitPiece
)

// classify matches units by substring. Millilitres are checked before litres
// so that "ml" and "millilitre" never land in the litre class.
func classify(unit string) unitClass {
	u := strings.ToLower(strings.TrimSpace(unit))
	switch {
	case strings.Contains(u, "ml") || strings.Contains(u, "millil"):
		return unitMillilitre
	case strings.Contains(u, "kg") || strings.Contains(u, "kilo"):
		return unitKilogram
	case u == "g" || u == "gr" || strings.Contains(u, "gram"):
		return unitGram
	case u == "l" || strings.Contains(u, "litre") || strings.Contains(u, "liter"):
		return unitLitre
	case u == "" || strings.Contains(u, "pc") || strings.Contains(u, "piece") ||
		strings.Contains(u, "unit") || strings.Contains(u, "each"):
		return unitPiece
	}
	return unitOther
}

func increment(q float64, class unitClass) float64 {
	switch class {
	case unitKilogram:
		return 0.25
	case unitGram:
		switch {
		case q < 50:
			return 10
		case q < 200:
			return 25
		default:
			return 50
		}
	case unitMillilitre:
		if q < 100 {
			return 10
		}
		return 50
	case unitLitre:
		if q < 0.5 {
			return 0.1
		}
		return 0.25
	case unitPiece:
		return 1
	}
	return 0.01
}

// RoundQuantity rounds q up to the purchasable increment of its unit.
// Non-positive quantities round to zero.
func RoundQuantity(q float64, unit string) float64 {
	if q <= 0 {
		return 0
	}
	inc := increment(q, classify(unit))
	// The epsilon keeps exact multiples from being pushed up by float error.
	steps := math.Ceil(q/inc - 1e-9)
	return math.Round(steps*inc*1000) / 1000
}
