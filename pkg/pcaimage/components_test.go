package pcaimage

import (
	"testing"
)

func TestComponentCount(t *testing.T) {
	type input struct {
		quality float64
		height  int
		width   int
	}

	validInputOutputMap := map[input]int{
		{quality: 100, height: 10, width: 10}: 10,
		{quality: 50, height: 4, width: 4}:    2,
		{quality: 50, height: 100, width: 40}: 20,
		{quality: 50, height: 40, width: 100}: 20,
		{quality: 1, height: 10, width: 10}:   1,
		{quality: 0, height: 10, width: 10}:   1,
		{quality: -20, height: 10, width: 10}: 1,
		{quality: 150, height: 10, width: 10}: 10,
		{quality: 99, height: 10, width: 10}:  9,
		{quality: 80, height: 1, width: 1}:    1,
	}

	for in, expected := range validInputOutputMap {
		k := ComponentCount(in.quality, in.height, in.width)
		if k != expected {
			t.Errorf("ComponentCount(%v, %d, %d) = %d, expected %d", in.quality, in.height, in.width, k, expected)
		}
	}
}

func TestComponentCountAlwaysInRange(t *testing.T) {
	dimensions := []struct {
		height int
		width  int
	}{
		{1, 1}, {1, 100}, {100, 1}, {7, 13}, {13, 7}, {480, 640},
	}

	for _, d := range dimensions {
		maxComponents := d.height
		if d.width < d.height {
			maxComponents = d.width
		}
		for quality := 1; quality <= 100; quality++ {
			k := ComponentCount(float64(quality), d.height, d.width)
			if k < 1 || k > maxComponents {
				t.Errorf("ComponentCount(%d, %d, %d) = %d outside [1, %d]", quality, d.height, d.width, k, maxComponents)
			}
		}
	}
}

func TestComponentCountDeterministic(t *testing.T) {
	for i := 0; i < 10; i++ {
		if ComponentCount(42, 33, 77) != ComponentCount(42, 33, 77) {
			t.Fatal("ComponentCount is not deterministic")
		}
	}
}
