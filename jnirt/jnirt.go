// Package jnirt is the run-time support package imported by the Go glue that
// jbind generates. It defines the JNI surface the glue needs, the
// ordinal-convertible capability implemented for every bound enum, and the
// boundary faults raised when a call cannot complete.
//
// Nothing in this package runs while generating bindings.
package jnirt

// Int is the Java int, the intermediate type enum ordinals travel as.
type Int = int32

// Object is an opaque reference to a Java object. Zero is null.
type Object uintptr

// Class is a reference to a Java class. Zero is null.
type Class uintptr

// FieldID identifies a field of a Java class. Zero is invalid.
type FieldID uintptr

// Env is the subset of the JNI environment used by generated glue.
// Implementations wrap the JNIEnv pointer of the current thread.
type Env interface {
	// FindClass resolves a class by its internal name, e.g. "com/example/Color".
	FindClass(name string) Class

	// GetStaticFieldID resolves a static field by name and type signature.
	GetStaticFieldID(cls Class, name, sig string) FieldID

	// GetStaticObjectField reads the value of a static object field.
	GetStaticObjectField(cls Class, field FieldID) Object

	// NewGlobalRef creates a reference that outlives the current native frame.
	NewGlobalRef(obj Object) Object
}

// OrdinalConvertible converts an enum value to and from its Java ordinal.
// Generated glue implements it for every bound enum type; FromOrdinal only
// accepts ordinals ToOrdinal can produce and faults on anything else.
type OrdinalConvertible[T any] interface {
	ToOrdinal(v T) Int
	FromOrdinal(x Int) T
}
