package actor

// Layer is a set of capability tags attached to a body once, at construction
type Layer uint32

const (
	LayerDefault Layer = 1 << iota
	// LayerGameplay marks bodies rendered by the top-down gameplay camera
	LayerGameplay
	// LayerDraggable marks bodies the user may drag freely
	LayerDraggable
)

func (l Layer) Has(flag Layer) bool {
	return l&flag == flag
}

func (l Layer) With(flag Layer) Layer {
	return l | flag
}
