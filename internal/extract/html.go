package extract

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTMLToText strips markup from an HTML body part, returning its visible
// text. Script and style contents are discarded.
func HTMLToText(data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	doc.Find("script, style").Remove()
	return strings.TrimSpace(doc.Text()), nil
}
