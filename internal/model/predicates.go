package model

// ValidPlacement reports whether a candidate start/duration is committable.
// Placements arrive from continuous pointer input; invalid ones are dropped
// silently by callers rather than surfaced.
func ValidPlacement(start, duration float64) bool {
	return duration > 0 && start >= 0
}

// Overlaps reports whether the half-open intervals [aStart, aStart+aDur) and
// [bStart, bStart+bDur) intersect.
func Overlaps(aStart, aDur, bStart, bDur float64) bool {
	return aStart < bStart+bDur && aStart+aDur > bStart
}

// ItemsOverlap applies Overlaps to two placed items.
func ItemsOverlap(a, b Item) bool {
	return Overlaps(a.Start, a.Duration, b.Start, b.Duration)
}

// ContentLength is the length of source material behind a media item: the
// crop window when one is set, otherwise the asset's native duration. Zero
// means unbounded (images).
func (m MediaFields) ContentLength() float64 {
	if m.Crop != nil {
		return m.Crop.Length()
	}
	if m.Asset.Kind == AssetVideo {
		return m.Asset.NativeDuration
	}
	return 0
}
