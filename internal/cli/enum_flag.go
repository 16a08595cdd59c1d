package cli

import (
	"fmt"
	"strings"
)

// enumValue is a pflag.Value accepting one of a fixed set of values in any
// casing. The canonical spelling is stored.
type enumValue struct {
	allowed []string
	value   string
	typ     string
}

func newEnumValue(typ, def string, allowed ...string) *enumValue {
	return &enumValue{allowed: allowed, value: def, typ: typ}
}

func (e *enumValue) String() string { return e.value }

func (e *enumValue) Set(s string) error {
	for _, a := range e.allowed {
		if strings.EqualFold(strings.TrimSpace(s), a) {
			e.value = a
			return nil
		}
	}
	return fmt.Errorf("must be one of: %s", strings.Join(e.allowed, ", "))
}

func (e *enumValue) Type() string { return e.typ }

// Output formats accepted by -o.
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func newOutputFlag() *enumValue {
	return newEnumValue("format", outputTable, outputTable, outputJSON, outputYAML)
}
