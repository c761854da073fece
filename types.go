package algosht

import (
	"fmt"
	"strings"
)

// Scheme selects the sampling theorem that fixes the sample positions and
// the colatitude quadrature.
type Scheme uint8

const (
	// DH is Driscoll–Healy sampling: 2L equiangular colatitudes that avoid
	// both poles.
	DH Scheme = iota + 1

	// MW is McEwen–Wiaux sampling: L-1 colatitude rings plus the south pole,
	// the fewest samples of any exact theorem.
	MW

	// GL is Gauss–Legendre sampling: L colatitudes at the arccosines of the
	// Gauss–Legendre nodes.
	GL
)

// String returns the short scheme name used on the command line.
func (s Scheme) String() string {
	switch s {
	case DH:
		return "DH"
	case MW:
		return "MW"
	case GL:
		return "GL"
	default:
		return fmt.Sprintf("Scheme(%d)", uint8(s))
	}
}

// Valid reports whether s is one of the defined schemes.
func (s Scheme) Valid() bool {
	return s == DH || s == MW || s == GL
}

// ParseScheme converts a case-insensitive scheme name to a Scheme.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DH":
		return DH, nil
	case "MW":
		return MW, nil
	case "GL":
		return GL, nil
	default:
		return 0, newError(KindArgumentInvalid, "ParseScheme", ErrUnknownScheme, "%q", name)
	}
}

// Schemes lists every supported scheme.
func Schemes() []Scheme {
	return []Scheme{DH, MW, GL}
}
