package svgi

// Built-in library names with forced factory and pragma expressions.
const (
	LibraryPreact = "preact"
	LibraryReact  = "react"
)

// LibraryKind identifies which Library variant was resolved.
type LibraryKind int

const (
	// KindCustom uses the configured factory, pragma and import style.
	KindCustom LibraryKind = iota

	// KindPreact imports { h } from preact.
	KindPreact

	// KindReact imports React from react.
	KindReact
)

// String returns the kind name.
func (k LibraryKind) String() string {
	switch k {
	case KindPreact:
		return "preact"
	case KindReact:
		return "react"
	default:
		return "custom"
	}
}

// Library is the resolved import source and node factory for generated code.
// It is built once by resolveLibrary and never changes afterwards.
type Library struct {
	Kind LibraryKind

	// Source is the module specifier placed in the import statement.
	Source string

	// Factory is the symbol imported from Source.
	Factory string

	// Pragma is the call expression that builds the root node.
	Pragma string

	// IsDefault selects `import X from` over `import { X } from`.
	IsDefault bool
}

// ImportStatement renders the single import line of a generated module.
func (l Library) ImportStatement() string {
	spec := l.Factory
	if !l.IsDefault {
		spec = "{ " + l.Factory + " }"
	}
	return "import " + spec + " from '" + l.Source + "';"
}

// resolveLibrary applies the built-in overrides for preact and react.
// Those two names always win over explicit factory, pragma and import
// settings; any other library must carry its own factory.
func resolveLibrary(opts Options) (Library, error) {
	switch opts.Library {
	case "":
		return Library{}, &ConfigurationError{Option: "targetLibrary", Message: "is required"}
	case LibraryPreact:
		return Library{Kind: KindPreact, Source: opts.Library, Factory: "h", Pragma: "h", IsDefault: false}, nil
	case LibraryReact:
		return Library{Kind: KindReact, Source: opts.Library, Factory: "React", Pragma: "React.createElement", IsDefault: true}, nil
	}

	lib := Library{
		Kind:      KindCustom,
		Source:    opts.Library,
		Factory:   opts.Factory,
		Pragma:    opts.Pragma,
		IsDefault: true,
	}
	if opts.IsDefault != nil {
		lib.IsDefault = *opts.IsDefault
	}
	if lib.Factory == "" {
		return Library{}, &ConfigurationError{
			Option:  "factoryExpression",
			Message: "couldn't be set from the provided options",
		}
	}
	if lib.Pragma == "" {
		return Library{}, &ConfigurationError{
			Option:  "pragmaExpression",
			Message: "couldn't be set from the provided options",
		}
	}
	return lib, nil
}
