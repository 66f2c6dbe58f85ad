package httpform

import (
	"io"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
)

const noticeSource = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{ title }}</title>
</head>
<body>
<main class="formguard-notice" role="alert">
  <h1>{{ title }}</h1>
  <p>{{ message }}</p>
  <ul>
  {% for field in missing %}<li data-field="{{ field }}">{{ field }}</li>
  {% endfor %}</ul>
  {% if help %}<section class="formguard-help">{{ help|safe }}</section>{% endif %}
  <p><a href="javascript:history.back()">Back to the form</a></p>
</main>
</body>
</html>
`

var (
	noticeOnce     sync.Once
	noticeTemplate *pongo2.Template
	noticeErr      error

	helpPolicyOnce sync.Once
	helpPolicy     *bluemonday.Policy
)

func notice() (*pongo2.Template, error) {
	noticeOnce.Do(func() {
		noticeTemplate, noticeErr = pongo2.FromString(noticeSource)
	})
	return noticeTemplate, noticeErr
}

// renderNotice writes the HTML rejection page. Help markup is sanitised
// before it reaches the template.
func renderNotice(w io.Writer, payload Payload, helpHTML string) error {
	tpl, err := notice()
	if err != nil {
		return err
	}
	return tpl.ExecuteWriter(pongo2.Context{
		"title":   "Some required fields are empty",
		"message": payload.Message,
		"missing": payload.Missing,
		"help":    sanitizeHelp(helpHTML),
	}, w)
}

func sanitizeHelp(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(helpSanitizer().Sanitize(trimmed))
}

func helpSanitizer() *bluemonday.Policy {
	helpPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.RequireNoFollowOnLinks(true)
		helpPolicy = policy
	})
	return helpPolicy
}
