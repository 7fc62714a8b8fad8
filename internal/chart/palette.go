package chart

import "github.com/KaramelBytes/runstats/internal/segment"

// Palette is a cyclic list of hex colors.
type Palette []string

// DefaultPalette matches the conventional first five plot colors.
var DefaultPalette = Palette{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd"}

// Color returns the i-th color, wrapping around.
func (p Palette) Color(i int) string {
	if len(p) == 0 {
		return DefaultPalette.Color(i)
	}
	if i < 0 {
		i = -i
	}
	return p[i%len(p)]
}

// ByBitModel assigns each bit model the color of the first run it appears in.
func (p Palette) ByBitModel(groups []segment.Group) map[string]string {
	out := make(map[string]string)
	for _, g := range groups {
		if _, ok := out[g.BitModel]; ok {
			continue
		}
		out[g.BitModel] = p.Color(g.RunIndex)
	}
	return out
}
