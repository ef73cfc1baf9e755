package images

import "github.com/chewxy/math32"

// ChannelStats summarizes one channel of an image.
type ChannelStats struct {
	// Min is the smallest value seen.
	Min uint8 `json:"min" yaml:"min"`
	// Max is the largest value seen.
	Max uint8 `json:"max" yaml:"max"`
	// Mean is the arithmetic mean.
	Mean float32 `json:"mean" yaml:"mean"`
	// StdDev is the population standard deviation.
	StdDev float32 `json:"stdDev" yaml:"stdDev"`
}

// Stats computes per-channel statistics in declaration order (for example
// R, G, B for an RGB image). An empty image yields zero-valued stats.
func (img *Image) Stats() ([]ChannelStats, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}

	ch := img.ColorType.Channels()
	stats := make([]ChannelStats, ch)
	n := img.Width * img.Height
	if n == 0 {
		return stats, nil
	}

	// Histograms keep the accumulation exact regardless of image size.
	hist := make([][256]uint64, ch)
	for i, v := range img.Data {
		hist[i%ch][v]++
	}

	for c := range stats {
		var sum float64
		minSet := false
		for v, count := range hist[c] {
			if count == 0 {
				continue
			}
			if !minSet {
				stats[c].Min = uint8(v)
				minSet = true
			}
			stats[c].Max = uint8(v)
			sum += float64(v) * float64(count)
		}
		mean := float32(sum / float64(n))

		var variance float32
		for v, count := range hist[c] {
			if count == 0 {
				continue
			}
			d := float32(v) - mean
			variance += d * d * float32(count)
		}

		stats[c].Mean = mean
		stats[c].StdDev = math32.Sqrt(variance / float32(n))
	}

	return stats, nil
}
