// Package rsvp is the wedding RSVP form: its field lists, decoding of an
// accepted submission and the endpoint that answers it.
package rsvp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gorilla/schema"

	"github.com/goliatone/go-formguard/pkg/config"
)

// FormID is the id the RSVP form is served under.
const FormID = "rsvp"

// NotAvailable replaces empty values in stored submissions.
const NotAvailable = "N/A"

var (
	// Required lists the fields a guest must fill in.
	Required = []string{"name", "email", "guests"}
	// Declared lists every field the form submits.
	Declared = []string{"name", "email", "address", "guests", "hotel_preference", "notes"}
)

// Form returns the RSVP form configuration.
func Form() config.Form {
	return config.Form{
		ID:       FormID,
		Path:     "/rsvp",
		Required: append([]string(nil), Required...),
		Declared: append([]string(nil), Declared...),
		HelpHTML: `<p>Reply for everyone in your party. Leave notes empty when there is nothing to add.</p>`,
	}
}

// Submission is one RSVP.
type Submission struct {
	Name            string `schema:"name" json:"name"`
	Email           string `schema:"email" json:"email"`
	Address         string `schema:"address" json:"address"`
	Guests          string `schema:"guests" json:"guests"`
	HotelPreference string `schema:"hotel_preference" json:"hotel_preference"`
	Notes           string `schema:"notes" json:"notes"`
}

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// Decode reads a submission from form values. Unknown keys are ignored and a
// repeated key contributes only its first value.
func Decode(values url.Values) (Submission, error) {
	var s Submission
	if err := decoder.Decode(&s, firstValues(values)); err != nil {
		return Submission{}, fmt.Errorf("rsvp: decode: %w", err)
	}
	return s, nil
}

func firstValues(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for key, vs := range values {
		if len(vs) > 0 {
			out[key] = vs[:1]
		}
	}
	return out
}

// ID is the key a submission is stored under: the lower-cased name with
// surrounding spaces trimmed and inner runs of spaces collapsed.
func (s Submission) ID() string {
	name := strings.TrimSpace(strings.ToLower(s.Name))
	var b strings.Builder
	b.Grow(len(name))
	prevSpace := false
	for _, r := range name {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// WithDefaults returns a copy with every empty field set to NotAvailable.
func (s Submission) WithDefaults() Submission {
	for _, field := range []*string{&s.Name, &s.Email, &s.Address, &s.Guests, &s.HotelPreference, &s.Notes} {
		if *field == "" {
			*field = NotAvailable
		}
	}
	return s
}
