// Package item is named like a local of the generated glue.
package item

type Color string

const (
	Red   Color = "r"
	Green Color = "g"
	Blue  Color = "b"
)
