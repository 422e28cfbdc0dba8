package jnirt

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEnv models a JVM holding one loaded enum class.
type fakeEnv struct {
	className string
	constants map[string]Object // static field name -> value
	nullValue bool
	noGlobal  bool

	findClass  int
	fieldIDs   int
	sigs       []string
	fieldNames map[FieldID]string
}

const fakeClass Class = 0x100

func newFakeEnv(className string, names ...string) *fakeEnv {
	env := &fakeEnv{
		className:  className,
		constants:  make(map[string]Object),
		fieldNames: make(map[FieldID]string),
	}
	for i, n := range names {
		env.constants[n] = Object(0x1000 + i)
	}
	return env
}

func (e *fakeEnv) FindClass(name string) Class {
	e.findClass++
	if name != e.className {
		return 0
	}
	return fakeClass
}

func (e *fakeEnv) GetStaticFieldID(cls Class, name, sig string) FieldID {
	e.fieldIDs++
	e.sigs = append(e.sigs, sig)
	if cls != fakeClass+1 {
		return 0
	}
	if _, ok := e.constants[name]; !ok {
		return 0
	}
	id := FieldID(len(e.fieldNames) + 1)
	e.fieldNames[id] = name
	return id
}

func (e *fakeEnv) GetStaticObjectField(cls Class, field FieldID) Object {
	if e.nullValue {
		return 0
	}
	return e.constants[e.fieldNames[field]]
}

func (e *fakeEnv) NewGlobalRef(obj Object) Object {
	if e.noGlobal {
		return 0
	}
	return obj + 1
}

func faultOf(t *testing.T, fn func()) *BoundaryFault {
	t.Helper()
	var fault *BoundaryFault
	func() {
		defer func() {
			r := recover()
			require.NotNil(t, r, "expected a boundary fault")
			err, ok := r.(error)
			require.True(t, ok, "panic value %v is not an error", r)
			require.True(t, errors.As(err, &fault), "panic value %T is not a *BoundaryFault", r)
		}()
		fn()
	}()
	return fault
}

func TestEnumHandles_Object(t *testing.T) {
	env := newFakeEnv("test/object/Color", "Red", "Green", "Blue")
	h := NewEnumHandles("test/object/Color")

	assert.Equal(t, Object(0x1000), h.Object(env, "Red"))
	assert.Equal(t, Object(0x1002), h.Object(env, "Blue"))
	assert.Equal(t, []string{"Ltest/object/Color;", "Ltest/object/Color;"}, env.sigs)
}

func TestEnumHandles_Caches(t *testing.T) {
	env := newFakeEnv("test/cache/Color", "Red", "Green")
	h := NewEnumHandles("test/cache/Color")

	for i := 0; i < 3; i++ {
		h.Object(env, "Red")
		h.Object(env, "Green")
	}
	assert.Equal(t, 1, env.findClass, "class should be resolved once")
	assert.Equal(t, 2, env.fieldIDs, "each field id should be resolved once")

	h.Invalidate()
	h.Object(env, "Red")
	assert.Equal(t, 2, env.findClass)
	assert.Equal(t, 3, env.fieldIDs)
}

func TestNewEnumHandles_SharedPerClass(t *testing.T) {
	a := NewEnumHandles("test/shared/Color")
	b := NewEnumHandles("test/shared/Color")
	c := NewEnumHandles("test/shared/Shape")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, "test/shared/Shape", c.ClassName())
}

func TestInvalidateAll(t *testing.T) {
	env := newFakeEnv("test/reload/Color", "Red")
	h := NewEnumHandles("test/reload/Color")
	h.Object(env, "Red")

	InvalidateAll()
	h.Object(env, "Red")
	assert.Equal(t, 2, env.findClass)
}

func TestEnumHandles_Faults(t *testing.T) {
	t.Run("class not found", func(t *testing.T) {
		env := newFakeEnv("test/other/Color", "Red")
		h := NewEnumHandles("test/missing/Color")

		fault := faultOf(t, func() { h.Object(env, "Red") })
		assert.Equal(t, StepFindClass, fault.Step)
		assert.Equal(t, "test/missing/Color", fault.Enum)
		assert.Contains(t, fault.Error(), "FindClass test/missing/Color")
	})

	t.Run("global ref fails", func(t *testing.T) {
		env := newFakeEnv("test/noglobal/Color", "Red")
		env.noGlobal = true
		h := NewEnumHandles("test/noglobal/Color")

		fault := faultOf(t, func() { h.Object(env, "Red") })
		assert.Equal(t, StepFindClass, fault.Step)
	})

	t.Run("field not found", func(t *testing.T) {
		env := newFakeEnv("test/nofield/Color", "Red")
		h := NewEnumHandles("test/nofield/Color")

		fault := faultOf(t, func() { h.Object(env, "Purple") })
		assert.Equal(t, StepFieldID, fault.Step)
		assert.Equal(t, "Purple", fault.Field)
		assert.Contains(t, fault.Error(), "Purple")
		assert.Contains(t, fault.Error(), "test/nofield/Color")

		// The class handle survives a field fault.
		assert.Equal(t, Object(0x1000), h.Object(env, "Red"))
		assert.Equal(t, 1, env.findClass)
	})

	t.Run("null value", func(t *testing.T) {
		env := newFakeEnv("test/null/Color", "Red")
		env.nullValue = true
		h := NewEnumHandles("test/null/Color")

		fault := faultOf(t, func() { h.Object(env, "Red") })
		assert.Equal(t, StepFieldValue, fault.Step)
		assert.Equal(t, "Red", fault.Field)
	})
}

func TestBoundaryFault_Error(t *testing.T) {
	assert.Equal(t, "jnirt: 3 not expected for example.Color (decode)",
		NewOrdinalFault("example.Color", 3).Error())
	assert.Equal(t, "jnirt: 9 not expected for example.Color (encode)",
		NewValueFault("example.Color", 9).Error())
}
