// Package form holds the editable values behind every add, edit and auth
// screen. Rules are declared as validator tags; failures are reported per
// field using the wording users see in the web app.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Form is an editable entity. Implementations are pointers so input
// widgets can bind to their fields.
type Form interface {
	// Validate returns nil when the form may be submitted.
	Validate() FieldErrors
	// Payload builds the request body. id is empty for creates.
	Payload(id string) any

	messages() map[string]string
}

// FieldErrors maps a field's JSON name to a user-facing message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := fe.Fields()
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + fe[f]
	}
	return strings.Join(parts, "; ")
}

// Fields returns the failing field names, sorted.
func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for f := range fe {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Messages returns the messages in field order.
func (fe FieldErrors) Messages() []string {
	fields := fe.Fields()
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = fe[f]
	}
	return out
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// check validates v and translates failures through msgs, which is keyed
// by "field.tag" or by "field" alone.
func check(v any, msgs map[string]string) FieldErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"": err.Error()}
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = message(msgs, field, fe.Tag())
	}
	return out
}

func message(msgs map[string]string, field, tag string) string {
	if m, ok := msgs[field+"."+tag]; ok {
		return m
	}
	if m, ok := msgs[field]; ok {
		return m
	}
	return fmt.Sprintf("%s is invalid", field)
}

// Rule returns a single-field validator for input widgets. Rules that
// compare against other fields are left to Validate.
func Rule(f Form, field string) func(string) error {
	tag := fieldTag(f, field)
	return func(value string) error {
		if tag == "" {
			return nil
		}
		if err := validate.Var(value, tag); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				return errors.New(message(f.messages(), field, verrs[0].Tag()))
			}
			return err
		}
		return nil
	}
}

// fieldTag returns the validate tag of the field whose JSON name is field,
// minus cross-field rules.
func fieldTag(f Form, field string) string {
	t := reflect.TypeOf(f)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if strings.SplitN(sf.Tag.Get("json"), ",", 2)[0] != field {
			continue
		}
		var keep []string
		for _, rule := range strings.Split(sf.Tag.Get("validate"), ",") {
			name := strings.SplitN(rule, "=", 2)[0]
			if rule == "" || strings.HasSuffix(name, "field") || strings.Contains(name, "_if") || strings.Contains(name, "_unless") {
				continue
			}
			keep = append(keep, rule)
		}
		return strings.Join(keep, ",")
	}
	return ""
}

// now is replaced in tests.
var now = time.Now

// toIntOr0 converts an id held as text into the number the API expects.
func toIntOr0(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != f || f > 1<<53 || f < -(1<<53) {
		return 0
	}
	return int(f)
}

func trimAll(ptrs ...*string) {
	for _, p := range ptrs {
		*p = strings.TrimSpace(*p)
	}
}
