// Package palette assigns reproducible colours to clusters.
package palette

import (
	"math/rand"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// DefaultSeed seeds the generator when no seed is configured.
	DefaultSeed int64 = 42
	// BorderColor is the accent shared by every group.
	BorderColor = "#2B7CE9"
)

// GroupColor is the fill/border pair of a group.
type GroupColor struct {
	Background string `json:"background"`
	Border     string `json:"border"`
}

// GroupStyle is the per-group style object understood by the renderer.
type GroupStyle struct {
	Color GroupColor `json:"color"`
}

// GroupStyles maps a cluster label to its style.
type GroupStyles map[string]GroupStyle

// Assign draws one colour per distinct label from a generator seeded with seed.
// Labels are de-duplicated and sorted first, so the mapping depends only on the
// label set. Colours are drawn independently and may coincide.
func Assign(labels []string, seed int64) GroupStyles {
	unique := make(map[string]bool, len(labels))
	sorted := make([]string, 0, len(labels))
	for _, l := range labels {
		if !unique[l] {
			unique[l] = true
			sorted = append(sorted, l)
		}
	}
	sort.Strings(sorted)

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // G404: reproducible colours, not security
	styles := make(GroupStyles, len(sorted))
	for _, label := range sorted {
		styles[label] = GroupStyle{
			Color: GroupColor{
				Background: randomColor(rng).Hex(),
				Border:     BorderColor,
			},
		}
	}
	return styles
}

// Saturation and value bands keep fills light enough for dark labels.
const (
	minSaturation = 0.35
	maxSaturation = 0.75
	minValue      = 0.80
	maxValue      = 0.95
)

// randomColor draws a hue uniformly and places saturation and value inside
// the readable bands.
func randomColor(rng *rand.Rand) colorful.Color {
	h := rng.Float64() * 360
	s := minSaturation + rng.Float64()*(maxSaturation-minSaturation)
	v := minValue + rng.Float64()*(maxValue-minValue)
	return colorful.Hsv(h, s, v).Clamped()
}
