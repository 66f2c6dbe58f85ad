package httpform

import (
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-formguard/pkg/formcheck"
)

// Provider exposes one submitted form to the validator.
type Provider struct {
	form     string
	values   url.Values
	declared map[string]struct{}
}

var _ formcheck.FormProvider = (*Provider)(nil)

// NewProvider wraps values as form formID. When declared is non-empty, names
// outside it are reported as unknown fields; otherwise every name that was not
// submitted is treated as an absent value.
func NewProvider(formID string, values url.Values, declared []string) *Provider {
	p := &Provider{form: formID, values: values}
	if len(declared) > 0 {
		p.declared = make(map[string]struct{}, len(declared))
		for _, name := range declared {
			p.declared[name] = struct{}{}
		}
	}
	return p
}

// Field implements formcheck.FormProvider. Repeated keys resolve to their
// first value. A name with no key of its own resolves through its dotted
// children ("address" through "address.street"): present when any child was
// submitted, valued by the first non-empty child in key order.
func (p *Provider) Field(formID, fieldName string) (string, bool, error) {
	if formID != p.form {
		return "", false, formcheck.FormNotFoundError{Form: formID}
	}
	if p.declared != nil {
		if _, ok := p.declared[fieldName]; !ok {
			return "", false, formcheck.FieldNotFoundError{Form: formID, Field: fieldName}
		}
	}
	values, ok := p.values[fieldName]
	if !ok || len(values) == 0 {
		value, present := p.nested(fieldName)
		return value, present, nil
	}
	return values[0], true, nil
}

func (p *Provider) nested(fieldName string) (string, bool) {
	prefix := fieldName + "."
	var keys []string
	for key, values := range p.values {
		if strings.HasPrefix(key, prefix) && len(values) > 0 {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return "", false
	}
	sort.Strings(keys)
	for _, key := range keys {
		if v := p.values[key][0]; v != "" {
			return v, true
		}
	}
	return "", true
}
