package pcaimage

// ComponentCount derives the rank budget k for one compression call
// from the quality percentage and the image dimensions. The smaller
// dimension bounds the attainable rank; k is floored at 1 so even
// quality <= 0 yields a valid (maximally reduced) decomposition, and
// quality >= 100 keeps the full rank.
func ComponentCount(quality float64, height, width int) int {
	maxComponents := height
	if width < height {
		maxComponents = width
	}

	k := int(float64(maxComponents) * quality / 100.0)
	if k < 1 {
		k = 1
	}
	if k > maxComponents {
		k = maxComponents
	}
	return k
}
