package rootio

// MethodMixin is an extension point: a function that post-processes a
// freshly-decoded Instance of a named class, the way uproot lets a
// handful of well-known classes (e.g. histograms) expose friendlier
// accessors on top of their raw streamed fields (spec §9 "extension
// point for class-specific behaviour"). Mixins never change what was
// decoded, only what additional methods/values are attached.
//
// Grounded on the Carlodf-cetl Opener registry: a name-keyed map of
// constructors built once at startup and looked up by string, rather
// than package-level init() registration, so a process can run
// multiple independent registries with different behaviour (spec's
// guidance against implicit global mutable state).
type MethodMixin func(inst *Instance) error

// MethodRegistry maps class names to their mixin, if any.
type MethodRegistry struct {
	mixins map[string]MethodMixin
}

// NewMethodRegistry returns an empty registry.
func NewMethodRegistry() *MethodRegistry {
	return &MethodRegistry{mixins: make(map[string]MethodMixin)}
}

// Register attaches mixin to className, replacing any previous one.
func (r *MethodRegistry) Register(className string, mixin MethodMixin) {
	if r.mixins == nil {
		r.mixins = make(map[string]MethodMixin)
	}
	r.mixins[className] = mixin
}

// Lookup returns the mixin registered for className, if any.
func (r *MethodRegistry) Lookup(className string) (MethodMixin, bool) {
	if r == nil {
		return nil, false
	}
	m, ok := r.mixins[className]
	return m, ok
}

// apply runs the registry's mixin for obj's class, if one is
// registered and obj is a synthesized Instance; built-in types are
// never subject to mixins since their Go type already is their
// friendly API.
func (r *MethodRegistry) apply(obj Object) error {
	inst, ok := obj.(*Instance)
	if !ok {
		return nil
	}
	mixin, ok := r.Lookup(obj.Class())
	if !ok {
		return nil
	}
	return mixin(inst)
}
