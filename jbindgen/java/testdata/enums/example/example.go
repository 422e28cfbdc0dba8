package example

type Color int

const (
	Red Color = iota + 10
	Green
	Blue
)
