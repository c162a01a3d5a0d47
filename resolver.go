package img2bead

import (
	"github.com/wbrown/img2bead/palette"
)

// Resolver maps a raw color to the closest entry of a bead catalog. The
// pipeline treats resolution as an injected collaborator: the real
// implementation lives in the palette package, and tests substitute
// deterministic stubs. Implementations must be pure with respect to their
// inputs — internal memoization is fine as long as it never changes the
// result.
type Resolver interface {
	Resolve(r, g, b float64, paletteID string) (palette.Entry, error)
}
