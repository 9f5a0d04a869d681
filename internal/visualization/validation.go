package visualization

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Payload is the untrusted create/update body. Pointers distinguish an
// absent field from an empty one. An explicit JSON null name is kept apart
// from an absent one and fails validation.
type Payload struct {
	Name        *string `json:"name"`
	Description *string `json:"description" validate:"required,max=180"`

	nameNull bool
}

// UnmarshalJSON records an explicit null name.
func (p *Payload) UnmarshalJSON(b []byte) error {
	type payload Payload
	var raw struct {
		payload
		Name json.RawMessage `json:"name"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = Payload(raw.payload)
	p.Name = nil
	switch {
	case raw.Name == nil:
	case string(raw.Name) == "null":
		p.nameNull = true
	default:
		var name string
		if err := json.Unmarshal(raw.Name, &name); err != nil {
			return err
		}
		p.Name = &name
	}
	return nil
}

// Input is a payload that passed validation, with defaults applied.
type Input struct {
	Name        string
	Description string
}

// Validator checks a payload and returns the validated input or a
// *ValidationError.
type Validator interface {
	Validate(p Payload) (Input, error)
}

// SchemaValidator validates payloads with go-playground/validator tags.
type SchemaValidator struct {
	validate *validator.Validate
}

func NewSchemaValidator() *SchemaValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &SchemaValidator{validate: v}
}

func (s *SchemaValidator) Validate(p Payload) (Input, error) {
	fields := make(map[string]string)
	if err := s.validate.Struct(p); err != nil {
		fields = formatValidationErrors(err)
		if len(fields) == 0 {
			return Input{}, NewValidationError(err.Error())
		}
	}
	if p.nameNull {
		fields["name"] = "Expected string, received null"
	}
	if len(fields) > 0 {
		return Input{}, &ValidationError{Message: joinFields(fields), Fields: fields}
	}
	name := DefaultName
	if p.Name != nil {
		name = strings.TrimSpace(*p.Name)
	}
	return Input{Name: name, Description: *p.Description}, nil
}

func formatValidationErrors(err error) map[string]string {
	out := make(map[string]string)
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return out
	}
	for _, e := range ve {
		out[e.Field()] = formatFieldError(e)
	}
	return out
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return fmt.Sprintf("Maximum length is %s", e.Param())
	default:
		return fmt.Sprintf("Validation failed on '%s'", e.Tag())
	}
}

// joinFields renders "field: message" pairs in a stable order.
func joinFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fields[k])
	}
	return strings.Join(parts, "; ")
}
