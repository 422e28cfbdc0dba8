package jnirt

import "sync"

// EnumHandles resolves the Java constants of one enum class by reflection
// and caches the class and field handles it looks up. Generated glue keeps
// one EnumHandles per bound enum type.
//
// The cache lives until Invalidate or InvalidateAll is called, which must
// happen whenever the Java runtime (and with it every class handle) is
// reloaded.
type EnumHandles struct {
	className string
	signature string

	mu     sync.Mutex
	class  Class
	fields map[string]FieldID
}

var handles = struct {
	sync.Mutex
	byClass map[string]*EnumHandles
}{byClass: make(map[string]*EnumHandles)}

// NewEnumHandles returns the handle cache for the Java enum with the given
// internal class name, e.g. "com/example/Color". Calls with the same name
// share one cache.
func NewEnumHandles(className string) *EnumHandles {
	handles.Lock()
	defer handles.Unlock()

	if h, ok := handles.byClass[className]; ok {
		return h
	}
	h := &EnumHandles{
		className: className,
		signature: "L" + className + ";",
		fields:    make(map[string]FieldID),
	}
	handles.byClass[className] = h
	return h
}

// ClassName returns the internal name of the enum class.
func (h *EnumHandles) ClassName() string { return h.className }

// Object returns the enum constant stored in the static field named item.
// It panics with a *BoundaryFault if the class or field cannot be resolved,
// or if the field holds null.
func (h *EnumHandles) Object(env Env, item string) Object {
	h.mu.Lock()
	cls, fid, fault := h.resolve(env, item)
	h.mu.Unlock()
	if fault != nil {
		panic(fault)
	}

	obj := env.GetStaticObjectField(cls, fid)
	if obj == 0 {
		panic(&BoundaryFault{Enum: h.className, Step: StepFieldValue, Field: item})
	}
	return obj
}

// resolve must be called with h.mu held.
func (h *EnumHandles) resolve(env Env, item string) (Class, FieldID, *BoundaryFault) {
	if h.class == 0 {
		local := env.FindClass(h.className)
		if local == 0 {
			return 0, 0, &BoundaryFault{Enum: h.className, Step: StepFindClass}
		}
		global := Class(env.NewGlobalRef(Object(local)))
		if global == 0 {
			return 0, 0, &BoundaryFault{Enum: h.className, Step: StepFindClass}
		}
		h.class = global
	}

	fid, ok := h.fields[item]
	if !ok {
		fid = env.GetStaticFieldID(h.class, item, h.signature)
		if fid == 0 {
			return 0, 0, &BoundaryFault{Enum: h.className, Step: StepFieldID, Field: item}
		}
		h.fields[item] = fid
	}
	return h.class, fid, nil
}

// Invalidate drops every cached handle. The next lookup resolves the class again.
func (h *EnumHandles) Invalidate() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.class = 0
	h.fields = make(map[string]FieldID)
}

// InvalidateAll drops the cached handles of every enum class.
// Call it when the Java runtime is reloaded.
func InvalidateAll() {
	handles.Lock()
	defer handles.Unlock()

	for _, h := range handles.byClass {
		h.Invalidate()
	}
}
