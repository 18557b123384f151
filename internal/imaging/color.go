package imaging

import (
	"fmt"
	"sort"

	"github.com/anthonynsimon/bild/histogram"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/ppm-editor/internal/ppm"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#rrggbb"
	RGB RGBColor `json:"rgb"` // RGB components
	HSL HSLColor `json:"hsl"` // HSL representation
}

// newColorResult renders an 8-bit RGB triple in every supported notation.
func newColorResult(r, g, b uint8) ColorResult {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, l := c.Hsl()
	return ColorResult{
		Hex: c.Hex(),
		RGB: RGBColor{R: r, G: g, B: b},
		HSL: HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
	}
}

// ColorFrequency represents a color and its occurrence frequency in a grid.
type ColorFrequency struct {
	Color      ColorResult `json:"color"`      // Quantized color
	Percentage float64     `json:"percentage"` // Percentage of pixels with this color (0-100)
}

// ChannelStats summarizes the distribution of one color channel.
type ChannelStats struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
}

// LuminanceStats summarizes perceived brightness (Rec. 601 luma, 0-255).
type LuminanceStats struct {
	Mean   float64 `json:"mean"`
	Median int     `json:"median"`
}

// ColorSummary describes the color content of a grid.
type ColorSummary struct {
	Pixels    int              `json:"pixels"`
	Average   ColorResult      `json:"average"`
	Dominant  []ColorFrequency `json:"dominant"`
	Red       ChannelStats     `json:"red"`
	Green     ChannelStats     `json:"green"`
	Blue      ChannelStats     `json:"blue"`
	Luminance LuminanceStats   `json:"luminance"`
}

// Summarize computes the average color, the count most common colors, the
// per-channel ranges, and luminance statistics of g.
//
// # Color Quantization
//
// Dominant colors are grouped by quantizing every channel to a multiple of
// 16, so colors within 16 units of each other per channel count together:
//
//	quantized = (original / 16) * 16
//
// Returns an error if g is not a valid grid or count is not positive.
func Summarize(g ppm.Grid, count int) (*ColorSummary, error) {
	if err := ppm.Validate(g); err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, fmt.Errorf("color count must be positive, got %d", count)
	}

	img := g.Image()
	total := g.Cols() * g.Rows()

	summary := &ColorSummary{
		Pixels:   total,
		Dominant: dominantColors(g, total, count),
	}

	hist := histogram.NewRGBAHistogram(img)
	summary.Red = channelStats(hist.R.Bins)
	summary.Green = channelStats(hist.G.Bins)
	summary.Blue = channelStats(hist.B.Bins)

	if total > 0 {
		summary.Average = newColorResult(
			uint8(summary.Red.Mean+0.5),
			uint8(summary.Green.Mean+0.5),
			uint8(summary.Blue.Mean+0.5),
		)
	}

	summary.Luminance = luminanceStats(imaging.Histogram(img))

	return summary, nil
}

func dominantColors(g ppm.Grid, total, count int) []ColorFrequency {
	type rgb struct{ r, g, b uint8 }

	colorCounts := make(map[rgb]int)
	for _, row := range g {
		for i := 0; i+2 < len(row); i += 3 {
			key := rgb{
				r: uint8(row[i] / 16 * 16),
				g: uint8(row[i+1] / 16 * 16),
				b: uint8(row[i+2] / 16 * 16),
			}
			colorCounts[key]++
		}
	}

	type entry struct {
		key rgb
		n   int
	}
	entries := make([]entry, 0, len(colorCounts))
	for k, n := range colorCounts {
		entries = append(entries, entry{k, n})
	}

	// Ties break on the packed color so output is deterministic.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].n != entries[j].n {
			return entries[i].n > entries[j].n
		}
		a, b := entries[i].key, entries[j].key
		return int(a.r)<<16|int(a.g)<<8|int(a.b) < int(b.r)<<16|int(b.g)<<8|int(b.b)
	})

	if len(entries) > count {
		entries = entries[:count]
	}

	colors := make([]ColorFrequency, len(entries))
	for i, e := range entries {
		colors[i] = ColorFrequency{
			Color:      newColorResult(e.key.r, e.key.g, e.key.b),
			Percentage: float64(e.n) / float64(total) * 100,
		}
	}
	return colors
}

func channelStats(bins []int) ChannelStats {
	stats := ChannelStats{Min: -1}
	var sum, n int
	for v, c := range bins {
		if c == 0 {
			continue
		}
		if stats.Min < 0 {
			stats.Min = v
		}
		stats.Max = v
		sum += v * c
		n += c
	}
	if n == 0 {
		return ChannelStats{}
	}
	stats.Mean = float64(sum) / float64(n)
	return stats
}

// luminanceStats derives mean and median from a normalized 256-bin histogram.
func luminanceStats(hist [256]float64) LuminanceStats {
	var stats LuminanceStats
	var cumulative float64
	medianFound := false
	for v, p := range hist {
		stats.Mean += float64(v) * p
		cumulative += p
		if !medianFound && cumulative >= 0.5 {
			stats.Median = v
			medianFound = true
		}
	}
	return stats
}

// Description pairs file metadata with a color summary.
type Description struct {
	*ImageInfo
	Colors *ColorSummary `json:"colors"`
}

// Describe loads path through cache and reports its metadata together with
// a summary of its count most common colors.
func Describe(cache *GridCache, path string, count int) (*Description, error) {
	info, g, err := loadImageInfo(cache, path)
	if err != nil {
		return nil, err
	}
	summary, err := Summarize(g, count)
	if err != nil {
		return nil, err
	}
	return &Description{ImageInfo: info, Colors: summary}, nil
}
