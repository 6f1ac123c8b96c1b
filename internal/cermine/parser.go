package cermine

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/matsen/crystal/internal/citation"
)

// JATS output structure, limited to the back-matter reference list.
type jatsArticle struct {
	Back *jatsBack `xml:"back"`
}

type jatsBack struct {
	RefList *jatsRefList `xml:"ref-list"`
}

type jatsRefList struct {
	Refs []jatsRef `xml:"ref"`
}

type jatsRef struct {
	MixedCitation *jatsCitation `xml:"mixed-citation"`
}

type jatsCitation struct {
	ArticleTitles []string   `xml:"article-title"`
	Years         []string   `xml:"year"`
	StringNames   []jatsName `xml:"string-name"`
}

type jatsName struct {
	InnerXML string `xml:",innerxml"`
}

// parseReferences extracts the ordered reference list from a JATS
// document. A missing back-matter or ref-list node means the document
// could not be processed, not that it has zero references.
func parseReferences(data []byte) ([]citation.RawReference, error) {
	var article jatsArticle
	if err := xml.Unmarshal(data, &article); err != nil {
		return nil, fmt.Errorf("parsing JATS output: %w", err)
	}

	if article.Back == nil {
		return nil, errors.New("JATS output has no back matter")
	}
	if article.Back.RefList == nil {
		return nil, errors.New("JATS back matter has no reference list")
	}

	refs := make([]citation.RawReference, 0, len(article.Back.RefList.Refs))
	for i, ref := range article.Back.RefList.Refs {
		if ref.MixedCitation == nil {
			return nil, fmt.Errorf("reference %d has no citation element", i+1)
		}

		raw := citation.RawReference{
			Title:  citation.NoTitleFound,
			Year:   citation.NoYear,
			Author: citation.AuthorNotFound,
			Source: citation.SourceDocument,
		}
		if len(ref.MixedCitation.ArticleTitles) > 0 && ref.MixedCitation.ArticleTitles[0] != "" {
			raw.Title = ref.MixedCitation.ArticleTitles[0]
		}
		if len(ref.MixedCitation.Years) > 0 && ref.MixedCitation.Years[0] != "" {
			raw.Year = ref.MixedCitation.Years[0]
		}
		if len(ref.MixedCitation.StringNames) > 0 {
			if name := flattenName(ref.MixedCitation.StringNames[0]); name != "" {
				raw.Author = name
			}
		}
		refs = append(refs, raw)
	}
	return refs, nil
}

// flattenName concatenates all text fragments under a name element,
// joining them with single spaces. CERMINE nests given-names and surname
// sub-elements; display form is their text in document order.
func flattenName(name jatsName) string {
	dec := xml.NewDecoder(bytes.NewReader([]byte(name.InnerXML)))
	var parts []string
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Inner XML already passed the outer parse; treat residual
			// errors as end of usable text.
			break
		}
		if cd, ok := tok.(xml.CharData); ok {
			if text := strings.TrimSpace(string(cd)); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, " ")
}
