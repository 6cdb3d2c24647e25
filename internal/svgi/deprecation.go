package svgi

import (
	"fmt"
	"sync"
)

// Deprecation records the use of a legacy option name.
type Deprecation struct {
	// Option is the legacy name (e.g. "jsx").
	Option string

	// Replacement is the name to use instead (e.g. "targetLibrary").
	Replacement string
}

// Message renders the notice shown to users.
func (d Deprecation) Message() string {
	return fmt.Sprintf("options.%s is deprecated. Use %s instead", d.Option, d.Replacement)
}

// LegacyOptions maps legacy option names to their replacements.
var LegacyOptions = map[string]string{
	"jsx":     "targetLibrary",
	"factory": "factoryExpression",
	"pragma":  "pragmaExpression",
	"default": "isDefaultImport",
}

// deprecationNotices delivers the notices of one plugin instance exactly once.
type deprecationNotices struct {
	mu      sync.Mutex
	pending []Deprecation
}

func newDeprecationNotices(deps []Deprecation) *deprecationNotices {
	return &deprecationNotices{pending: append([]Deprecation(nil), deps...)}
}

// flush hands every pending notice to warn and forgets them. Without a warn
// callback the notices stay pending for a later call that has one.
func (n *deprecationNotices) flush(warn func(string)) {
	if warn == nil {
		return
	}

	n.mu.Lock()
	pending := n.pending
	n.pending = nil
	n.mu.Unlock()

	for _, d := range pending {
		warn(d.Message())
	}
}
