package kyobo

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sehyun-dev/shelfsync/internal/models"
)

const brandName = "교보문고"

// titleSelectors are tried in order; h1 is the last resort so that branding
// headers higher in the DOM never shadow the product heading.
var titleSelectors = []string{
	"h1.prod_title",
	".prod_detail_header h1",
	".bookDetail_header__title",
	"h1.tit",
	".prod_title strong",
	".prod_title em",
	".product_detail .title",
	"h1",
}

var (
	idPattern       = regexp.MustCompile(`([A-Z]\d{6,})`)
	detailIDPattern = regexp.MustCompile(`/detail/([A-Z]\d{6,})`)

	whitespacePattern = regexp.MustCompile(`\s+`)
	brandTailPattern  = regexp.MustCompile(`(?i)\s*[-–—]\s*(교보문고|Kyobo\s*Book\s*Centre)\s*$`)
	pagesPattern      = regexp.MustCompile(`(\d{1,5})\s*(쪽|페이지)`)
	authorPattern     = regexp.MustCompile(`(?:저자|지은이)\s*[::]\s*([^|<>]{1,60}?)\s*(?:[|·]|출판|$)`)
	publisherPattern  = regexp.MustCompile(`(?:출판사|펴낸곳)\s*[::]\s*([^|<>]{1,60}?)\s*(?:[|·]|발행|$)`)
)

// ExtractID pulls a catalog identifier (letter prefix plus six or more
// digits) out of an arbitrary string, typically a stored detail URL.
func ExtractID(s string) string {
	return idPattern.FindString(s)
}

// Extract scrapes a metadata record out of raw detail-page markup. Stages
// run in fixed precedence and only ever fill fields still absent: JSON-LD
// blocks, then the body heading for the title, then OG tags for the cover
// only, then loose full-text fallbacks unless light is set.
func Extract(rawHTML string, light bool) models.BookMetadata {
	var meta models.BookMetadata

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return meta
	}

	meta.Merge(extractJSONLD(doc))

	if meta.Title == "" {
		meta.Title = extractBodyTitle(doc)
	}

	// OG tags backfill the cover and nothing else. og:title is frequently
	// truncated or carries site branding, so it never seeds the title.
	if meta.CoverURL == "" {
		meta.CoverURL, _ = doc.Find(`meta[property="og:image"]`).Attr("content")
	}

	if !light {
		flat := whitespacePattern.ReplaceAllString(rawHTML, " ")
		if meta.Pages == 0 {
			if m := pagesPattern.FindStringSubmatch(flat); m != nil {
				meta.Pages, _ = strconv.Atoi(m[1])
			}
		}
		if meta.Author == "" {
			if m := authorPattern.FindStringSubmatch(flat); m != nil {
				meta.Author = strings.TrimSpace(m[1])
			}
		}
		if meta.Publisher == "" {
			if m := publisherPattern.FindStringSubmatch(flat); m != nil {
				meta.Publisher = strings.TrimSpace(m[1])
			}
		}
	}

	meta.Title = CleanTitle(meta.Title)
	return meta
}

// extractJSONLD walks every ld+json script on the page and collects Book and
// Product nodes. The first non-empty value per field wins across blocks.
func extractJSONLD(doc *goquery.Document) models.BookMetadata {
	var meta models.BookMetadata

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return
		}

		nodes, ok := payload.([]any)
		if !ok {
			nodes = []any{payload}
		}
		for _, node := range nodes {
			obj, ok := node.(map[string]any)
			if !ok {
				continue
			}
			if t, _ := obj["@type"].(string); t != "Book" && t != "Product" {
				continue
			}
			meta.Merge(models.BookMetadata{
				Title:     CleanTitle(stringField(obj["name"])),
				Author:    collapse(nameList(obj["author"])),
				Publisher: collapse(stringField(obj["publisher"])),
				Pages:     intField(obj["numberOfPages"]),
				Genre:     collapse(stringField(obj["genre"])),
				ISBN:      stringField(obj["isbn"]),
			})
		}
	})

	return meta
}

// stringField reads a JSON-LD value that may be a plain string or an
// object carrying a name.
func stringField(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		s, _ := t["name"].(string)
		return s
	}
	return ""
}

// nameList additionally accepts a list of strings or name objects, joined
// with ", " the way the storefront lists co-authors.
func nameList(v any) string {
	if items, ok := v.([]any); ok {
		var names []string
		for _, it := range items {
			if s := stringField(it); s != "" {
				names = append(names, s)
			}
		}
		return strings.Join(names, ", ")
	}
	return stringField(v)
}

func intField(v any) int {
	switch t := v.(type) {
	case float64:
		if t > 0 {
			return int(t)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

// extractBodyTitle scans the heading selectors for a usable human-readable
// title. Candidates that are empty, suspiciously long, or carry the
// storefront's brand are navigation text, not the book.
func extractBodyTitle(doc *goquery.Document) string {
	for _, sel := range titleSelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		cand := CleanTitle(strings.TrimSpace(node.Text()))
		if cand != "" && len([]rune(cand)) <= 100 && !strings.Contains(cand, brandName) {
			return cand
		}
	}
	return ""
}

// CleanTitle normalizes a scraped title: collapse whitespace, drop anything
// after a " | " separator, and strip a trailing brand-name tail. Idempotent.
func CleanTitle(t string) string {
	if t == "" {
		return t
	}
	t = strings.TrimSpace(whitespacePattern.ReplaceAllString(t, " "))
	if i := strings.Index(t, " | "); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}
	return brandTailPattern.ReplaceAllString(t, "")
}

func collapse(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
