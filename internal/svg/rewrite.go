// Package svg rewrites SVG markup for embedding in HTML viewer pages.
package svg

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	heightAttrRe = regexp.MustCompile(`height\s*=\s*"[^"]*"`)
	widthAttrRe  = regexp.MustCompile(`width\s*=\s*"[^"]*"`)
)

// FullWidth rewrites the opening <svg> tag so the image scales to its
// container: every height attribute in the tag is dropped and every width
// attribute is forced to 100%. A missing width attribute is not synthesized.
// The rewritten tag replaces each occurrence of the original tag text, so
// the rest of the document is untouched.
func FullWidth(content string) (string, error) {
	start := strings.Index(content, "<svg")
	if start == -1 {
		return "", fmt.Errorf("no <svg> start tag found")
	}

	end := strings.Index(content[start:], ">")
	if end == -1 {
		return "", fmt.Errorf("unterminated <svg> tag")
	}

	tag := content[start : start+end+1]
	rewritten := heightAttrRe.ReplaceAllString(tag, "")
	rewritten = widthAttrRe.ReplaceAllString(rewritten, `width="100%"`)

	return strings.ReplaceAll(content, tag, rewritten), nil
}
