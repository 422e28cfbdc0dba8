package testdata

// Direction is declared in a second file.
type Direction uint8

// North is up.
const North Direction = 0

const (
	East Direction = iota + 1
	South
	West
)
