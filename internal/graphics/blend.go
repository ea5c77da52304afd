package graphics

import "fmt"

// BlendMode selects how a batch is composited against the framebuffer.
// All vertices within one batch share a single blend mode; changing mode
// between draw calls forces a flush.
type BlendMode int

const (
	BlendNone BlendMode = iota
	BlendAlpha
	BlendAdditive
	BlendSubtractive
	BlendMultiply
	BlendScreen
)

func (m BlendMode) String() string {
	switch m {
	case BlendNone:
		return "none"
	case BlendAlpha:
		return "alpha"
	case BlendAdditive:
		return "additive"
	case BlendSubtractive:
		return "subtractive"
	case BlendMultiply:
		return "multiply"
	case BlendScreen:
		return "screen"
	}
	return "unknown"
}

// ParseBlendMode maps a mode name from an asset definition back to its
// BlendMode value.
func ParseBlendMode(name string) (BlendMode, error) {
	for m := BlendNone; m <= BlendScreen; m++ {
		if m.String() == name {
			return m, nil
		}
	}
	return BlendNone, fmt.Errorf("unknown blend mode %q", name)
}

// PrimitiveMode is the topology of a submitted vertex range. The batched
// path always submits triangle lists; the direct submission path accepts
// an explicit topology.
type PrimitiveMode int

const (
	TriangleList PrimitiveMode = iota
	LineList
	PointList
)
