package img2bead

import (
	"fmt"
	"image"
)

// CropRect describes a center-crop region in source-pixel coordinates.
// Coordinates are float64 so the planned aspect ratio matches the target
// ratio exactly; the samplers truncate to whole pixels via Bounds.
type CropRect struct {
	X, Y, W, H float64
}

// PlanCrop computes the center crop of a srcW x srcH image whose aspect
// ratio matches targetW:targetH. If the source is proportionally wider
// than the target, the full height is kept and the width trimmed;
// otherwise (including exact ratio ties) the full width is kept and the
// height trimmed, which for a tie degenerates to the full frame.
func PlanCrop(srcW, srcH, targetW, targetH int) (CropRect, error) {
	if srcW <= 0 || srcH <= 0 {
		return CropRect{}, fmt.Errorf("source dimensions must be positive, got %dx%d", srcW, srcH)
	}
	if targetW <= 0 || targetH <= 0 {
		return CropRect{}, fmt.Errorf("target dimensions must be positive, got %dx%d", targetW, targetH)
	}

	imgRatio := float64(srcW) / float64(srcH)
	targetRatio := float64(targetW) / float64(targetH)

	if imgRatio > targetRatio {
		// Source is wider: keep the full height, trim the sides.
		h := float64(srcH)
		w := h * targetRatio
		return CropRect{X: (float64(srcW) - w) / 2, Y: 0, W: w, H: h}, nil
	}

	// Source is taller (or an exact ratio match): keep the full width.
	w := float64(srcW)
	h := w / targetRatio
	return CropRect{X: 0, Y: (float64(srcH) - h) / 2, W: w, H: h}, nil
}

// Bounds returns the integer-truncated crop rectangle the samplers
// operate on. Width and height are at least 1 so a valid plan never
// yields an empty region.
func (c CropRect) Bounds() image.Rectangle {
	x, y := int(c.X), int(c.Y)
	w, h := int(c.W), int(c.H)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return image.Rect(x, y, x+w, y+h)
}
