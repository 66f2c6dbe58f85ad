// Package document exposes the forms of a parsed HTML page through the
// formcheck.FormProvider contract. Lookups follow the browser's
// document.forms[id][name].value rules for a freshly loaded page: values come
// from markup defaults, never from user edits.
package document

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/goliatone/go-formguard/pkg/formcheck"
)

// Document is a parsed HTML page. It is read-only and safe for concurrent
// lookups.
type Document struct {
	root  *goquery.Document
	forms []*goquery.Selection
}

var _ formcheck.FormProvider = (*Document)(nil)

// FormInfo summarises one form for listings.
type FormInfo struct {
	Index  int      `json:"index"`
	Name   string   `json:"name,omitempty"`
	ID     string   `json:"id,omitempty"`
	Action string   `json:"action,omitempty"`
	Method string   `json:"method,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

// Parse reads an HTML page from r.
func Parse(r io.Reader) (*Document, error) {
	if r == nil {
		return nil, errors.New("document: reader is nil")
	}
	root, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("document: parse html: %w", err)
	}
	doc := &Document{root: root}
	root.Find("form").Each(func(_ int, form *goquery.Selection) {
		doc.forms = append(doc.forms, form)
	})
	return doc, nil
}

// ParseString parses an HTML page held in memory.
func ParseString(html string) (*Document, error) {
	return Parse(strings.NewReader(html))
}

// Field implements formcheck.FormProvider.
func (d *Document) Field(formID, fieldName string) (string, bool, error) {
	form, ok := d.form(formID)
	if !ok {
		return "", false, formcheck.FormNotFoundError{Form: formID}
	}

	matches := d.namedControls(form, fieldName)
	switch len(matches) {
	case 0:
		return "", false, formcheck.FieldNotFoundError{Form: formID, Field: fieldName}
	case 1:
		value, present := controlValue(matches[0])
		return value, present, nil
	default:
		return radioListValue(matches), true, nil
	}
}

// Forms lists every form in document order.
func (d *Document) Forms() []FormInfo {
	out := make([]FormInfo, 0, len(d.forms))
	for idx, form := range d.forms {
		info := FormInfo{
			Index:  idx,
			Name:   attr(form, "name"),
			ID:     attr(form, "id"),
			Action: attr(form, "action"),
			Method: strings.ToUpper(attr(form, "method")),
		}
		seen := make(map[string]struct{})
		for _, control := range d.controls(form) {
			name := attr(control, "name")
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			info.Fields = append(info.Fields, name)
		}
		out = append(out, info)
	}
	return out
}

// form resolves formID by name, then id, then numeric index.
func (d *Document) form(formID string) (*goquery.Selection, bool) {
	if d == nil {
		return nil, false
	}
	for _, form := range d.forms {
		if attr(form, "name") == formID {
			return form, true
		}
	}
	for _, form := range d.forms {
		if attr(form, "id") == formID {
			return form, true
		}
	}
	if idx, err := strconv.Atoi(formID); err == nil && idx >= 0 && idx < len(d.forms) {
		return d.forms[idx], true
	}
	return nil, false
}

// controls returns the listed elements owned by form: its descendants that
// are not reassigned to another form, plus elements elsewhere that name the
// form through a form attribute. An empty form attribute leaves the element
// without an owner.
func (d *Document) controls(form *goquery.Selection) []*goquery.Selection {
	formID := attr(form, "id")
	var out []*goquery.Selection

	form.Find(listedSelector).Each(func(_ int, el *goquery.Selection) {
		if owner, ok := el.Attr("form"); ok && (owner == "" || owner != formID) {
			return
		}
		if isImageInput(el) {
			return
		}
		out = append(out, el)
	})

	if formID == "" {
		return out
	}
	d.root.Find(listedSelector).Each(func(_ int, el *goquery.Selection) {
		if owner, ok := el.Attr("form"); !ok || owner != formID {
			return
		}
		if el.Closest("form").IsSelection(form) {
			return
		}
		if isImageInput(el) {
			return
		}
		out = append(out, el)
	})
	return out
}

func (d *Document) namedControls(form *goquery.Selection, name string) []*goquery.Selection {
	var out []*goquery.Selection
	for _, control := range d.controls(form) {
		if attr(control, "name") == name || attr(control, "id") == name {
			out = append(out, control)
		}
	}
	return out
}

func attr(sel *goquery.Selection, name string) string {
	value, _ := sel.Attr(name)
	return value
}
