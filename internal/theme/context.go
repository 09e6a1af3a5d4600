package theme

// Direction is the text direction style functions may adapt to.
type Direction int

const (
	DirectionLTR Direction = iota
	DirectionRTL
)

func (d Direction) String() string {
	if d == DirectionRTL {
		return "rtl"
	}
	return "ltr"
}

// RenderContext carries cross-cutting inputs that style functions may read
// but never mutate. It is supplied by the provider alongside the active
// theme and participates in cache identity, since compiled styles depend
// on it.
type RenderContext struct {
	Direction          Direction
	AnimationsDisabled bool
}
