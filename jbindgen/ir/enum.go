package ir

// EnumDefinition describes a Go enumeration to expose to Java.
// Item order is significant: it fixes the ordinal of every item.
type EnumDefinition struct {
	// Name is the Java simple name of the generated enum.
	Name string

	// Native is the Go type the enum binds to.
	Native NativeType

	// Items are the enum constants in declaration order.
	Items []EnumItem

	// Documentation for the enum type.
	Documentation Documentation

	// Source location of the declaration.
	Source Source
}

// EnumItem represents a single enum constant.
type EnumItem struct {
	// Name is the Java-visible constant name.
	Name string

	// NativeName is the Go constant identifier, unqualified.
	NativeName string

	// Documentation for this item.
	Documentation Documentation
}
