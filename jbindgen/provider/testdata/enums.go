package testdata

// Color is a primary color.
type Color int

const (
	// ColorRed is red light.
	ColorRed Color = iota
	ColorGreen // green light
	// ColorBlue is blue light.
	//
	// Deprecated: use ColorAzure.
	ColorBlue

	// ColorDefault aliases ColorRed.
	ColorDefault = ColorRed
)

const colorHidden Color = 99

// Level was declared before its values.
type Level string

// The values are not in alphabetical order.
const (
	Low    Level = "low"
	High   Level = "high"
	Medium Level = "medium"
)

// Ratio is not an enum: floats cannot be switched on exactly.
type Ratio float64

const Half Ratio = 0.5

// Empty has no constants.
type Empty int
