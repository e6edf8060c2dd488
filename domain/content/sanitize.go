package content

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	bodyPolicy  = newBodyPolicy()
	plainPolicy = bluemonday.StrictPolicy()
)

// newBodyPolicy builds the policy for rich-text bodies and update text.
// UGCPolicy allows common formatting while removing dangerous elements.
func newBodyPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.AllowElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("class").OnElements("p", "span", "div", "h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li")

	// Table and list elements
	p.AllowElements("table", "thead", "tbody", "tr", "th", "td")
	p.AllowElements("ul", "ol", "li")

	// Text formatting
	p.AllowElements("strong", "em", "u", "s", "sub", "sup", "blockquote", "pre", "code")

	// Links and images
	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowRelativeURLs(true)
	p.AllowAttrs("src", "alt", "title", "width", "height").OnElements("img")

	return p
}

// SanitizeBody sanitizes an HTML fragment for storage in an item body
func SanitizeBody(s string) string {
	return strings.TrimSpace(bodyPolicy.Sanitize(s))
}

// SanitizePlain strips all markup; used for titles and type names
func SanitizePlain(s string) string {
	return strings.TrimSpace(plainPolicy.Sanitize(s))
}
