package links

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrMissingHref reports an anchor that advertises unsubscribing but carries
// no href attribute at all, so there is nothing to follow.
var ErrMissingHref = errors.New("unsubscribe anchor has no href attribute")

// ExtractUnsubscribeLink scans HTML content for anchors whose visible text
// mentions unsubscribing and whose href contains "http". The last candidate
// in document order wins; an empty string with a nil error means the content
// offers no candidate. An anchor with qualifying text but no href attribute
// at all yields ErrMissingHref.
func ExtractUnsubscribeLink(content string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("parse content: %w", err)
	}

	var link string
	var missingHref bool
	doc.Find("a").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.Contains(strings.ToLower(s.Text()), "unsubscribe") {
			return true
		}
		href, ok := s.Attr("href")
		if !ok {
			missingHref = true
			return false
		}
		if strings.Contains(href, "http") {
			link = href
		}
		return true
	})
	if missingHref {
		return "", ErrMissingHref
	}

	return link, nil
}
