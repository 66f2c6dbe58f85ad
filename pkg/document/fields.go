package document

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const listedSelector = "button, fieldset, input, object, output, select, textarea"

func isImageInput(el *goquery.Selection) bool {
	return goquery.NodeName(el) == "input" && inputType(el) == "image"
}

func inputType(el *goquery.Selection) string {
	return strings.ToLower(strings.TrimSpace(attr(el, "type")))
}

// controlValue mirrors the .value property of a single control. Elements
// without a value property (fieldset, object) report present=false.
func controlValue(el *goquery.Selection) (string, bool) {
	switch goquery.NodeName(el) {
	case "input":
		if value, ok := el.Attr("value"); ok {
			return value, true
		}
		switch inputType(el) {
		case "checkbox", "radio":
			return "on", true
		}
		return "", true
	case "button":
		return attr(el, "value"), true
	case "textarea":
		return el.Text(), true
	case "output":
		return el.Text(), true
	case "select":
		return selectValue(el), true
	default:
		return "", false
	}
}

// selectValue returns the value of the selected option. A single select
// falls back to its first option when none is marked; the last marked option
// wins when several are.
func selectValue(el *goquery.Selection) string {
	options := el.Find("option")
	if options.Length() == 0 {
		return ""
	}
	_, multiple := el.Attr("multiple")

	selected := options.FilterFunction(func(_ int, opt *goquery.Selection) bool {
		_, ok := opt.Attr("selected")
		return ok
	})
	switch {
	case selected.Length() == 0 && multiple:
		return ""
	case selected.Length() == 0:
		return optionValue(options.First())
	case multiple:
		return optionValue(selected.First())
	default:
		return optionValue(selected.Last())
	}
}

func optionValue(opt *goquery.Selection) string {
	if value, ok := opt.Attr("value"); ok {
		return value
	}
	return strings.Join(strings.Fields(opt.Text()), " ")
}

// radioListValue mirrors RadioNodeList.value: the value of the first checked
// radio button, or "" when none is checked.
func radioListValue(matches []*goquery.Selection) string {
	for _, el := range matches {
		if goquery.NodeName(el) != "input" || inputType(el) != "radio" {
			continue
		}
		if _, checked := el.Attr("checked"); !checked {
			continue
		}
		if value, ok := el.Attr("value"); ok {
			return value
		}
		return "on"
	}
	return ""
}
