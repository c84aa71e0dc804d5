package gitlab

import (
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

// Form accumulates name/value pairs for a form-urlencoded request body.
// Values added under the same name repeat in the encoded output in the
// order they were added.
type Form struct {
	values url.Values
}

// NewForm returns an empty form.
func NewForm() *Form {
	return &Form{values: url.Values{}}
}

// FormFromValues wraps existing parameter values as a form body.
func FormFromValues(values url.Values) *Form {
	if values == nil {
		values = url.Values{}
	}
	return &Form{values: values}
}

// FormFromStruct flattens a tagged struct into form parameters using its
// `url` field tags, the typed-form counterpart of the pair-by-pair builder.
func FormFromStruct(v any) (*Form, error) {
	values, err := query.Values(v)
	if err != nil {
		return nil, fmt.Errorf("could not encode form struct: %w", err)
	}
	return &Form{values: values}, nil
}

// WithParam adds a parameter, stringifying the value. Nil values are
// dropped so optional fields can be passed through unconditionally.
func (f *Form) WithParam(name string, value any) *Form {
	if value == nil {
		return f
	}
	f.values.Add(name, fmt.Sprint(value))
	return f
}

// Values returns the underlying parameter map.
func (f *Form) Values() url.Values {
	return f.values
}

// Encode serializes the form as application/x-www-form-urlencoded.
func (f *Form) Encode() string {
	return f.values.Encode()
}
