package calltrace

// DefaultNameFragments are the role fragments matched against component names
// when none are configured.
var DefaultNameFragments = []string{"Service", "Repository", "Controller"}

// Config controls which components receive tracing.
type Config struct {
	// TargetPackage is the package path prefix a component's type must live under.
	// An empty value disables tracing entirely.
	TargetPackage string `yaml:"target_package" envconfig:"TRACE_TARGET_PACKAGE"`

	// NameFragments are matched with strings.Contains against the component name.
	// Defaults to DefaultNameFragments.
	NameFragments []string `yaml:"name_fragments" envconfig:"TRACE_NAME_FRAGMENTS"`
}

// Selector builds the Selector described by the configuration.
func (c Config) Selector() Selector {
	return NewSelector(c.TargetPackage, c.NameFragments...)
}
