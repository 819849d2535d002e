package introspect

import "strings"

// Option configures extractors and the Describer.
type Option func(*options)

type options struct {
	typeMappings       map[string]string
	includeForeignKeys bool
}

func defaultOptions() *options {
	return &options{
		includeForeignKeys: true,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithTypeMappings overrides how declared types are displayed.
// Keys are catalog type names (case-insensitive), values are the display
// strings used verbatim instead of the engine's own formatting.
func WithTypeMappings(mappings map[string]string) Option {
	return func(o *options) {
		o.typeMappings = make(map[string]string, len(mappings))
		for k, v := range mappings {
			o.typeMappings[strings.ToLower(strings.TrimSpace(k))] = v
		}
	}
}

// WithForeignKeys controls whether the Describer looks up foreign keys.
// Defaults to true.
func WithForeignKeys(include bool) Option {
	return func(o *options) {
		o.includeForeignKeys = include
	}
}

func (o *options) mappedType(typeName string) (string, bool) {
	if o == nil || o.typeMappings == nil {
		return "", false
	}
	mapped, ok := o.typeMappings[strings.ToLower(strings.TrimSpace(typeName))]
	return mapped, ok
}
