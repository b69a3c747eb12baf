package maven

import (
	"bytes"

	"golang.org/x/net/html"

	"github.com/matzehuels/pomcheck/pkg/version"
)

// ParseListing returns the versions linked from a repository directory
// listing, in document order. Each hyperlink target is matched against the
// version token pattern and the first match is kept; links without one
// (parent directory, maven-metadata.xml, checksums) are ignored.
func ParseListing(body []byte) []string {
	var versions []string
	for _, href := range hrefs(body) {
		if v, ok := version.Extract(href); ok {
			versions = append(versions, v)
		}
	}
	return versions
}

func hrefs(body []byte) []string {
	var out []string
	z := html.NewTokenizer(bytes.NewReader(body))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return out
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "a" {
				continue
			}
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) == "href" {
					out = append(out, string(val))
				}
			}
		}
	}
}
