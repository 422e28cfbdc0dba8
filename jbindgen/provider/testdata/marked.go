package testdata

// Shade is bound as Colour.
//
//jbind:enum Colour
type Shade int

const (
	ShadeLight Shade = iota
	//jbind:name MEDIUM
	ShadeMedium
	ShadeDark
	//jbind:skip
	ShadeInternal
)

//jbind:skip
type Hidden int

const HiddenA Hidden = 1
