package models

// ScalingContext identifies the interaction context a trust score was
// computed in (a session type, a channel, a product surface...). The zero
// value is the default context, so a missing context id can never collide
// with a real one named "default".
type ScalingContext struct {
	id string
}

func DefaultScalingContext() ScalingContext {
	return ScalingContext{}
}

func NamedScalingContext(id string) ScalingContext {
	return ScalingContext{id: id}
}

func (c ScalingContext) IsDefault() bool {
	return c.id == ""
}

// Name returns the context id and whether the context is a named one.
func (c ScalingContext) Name() (string, bool) {
	return c.id, c.id != ""
}

// StorageKey is the value persisted in context columns. Only the repository
// layer should use it.
func (c ScalingContext) StorageKey() string {
	return c.id
}

func ScalingContextFromStorage(id string) ScalingContext {
	return ScalingContext{id: id}
}
