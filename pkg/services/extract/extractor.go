package extract

import (
	"bufio"
	"context"
	"strings"

	"github.com/gws-tools/scubacfg/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	sectionMarker = "### "
	headingMarker = "#### "
)

type lineKind int

const (
	lineBlank lineKind = iota
	lineSection
	lineHeading
	lineText
)

// classify tokenizes a single baseline-document line. Heading and section
// markers must be a line prefix; everything else is body text.
func classify(raw string) (lineKind, string) {
	line := strings.TrimSpace(raw)
	switch {
	case line == "":
		return lineBlank, ""
	case strings.HasPrefix(line, headingMarker):
		return lineHeading, strings.TrimSpace(strings.TrimPrefix(line, headingMarker))
	case strings.HasPrefix(line, sectionMarker):
		return lineSection, strings.TrimSpace(strings.TrimPrefix(line, sectionMarker))
	default:
		return lineText, line
	}
}

// headingPolicyID pulls the policy identifier out of a heading's text. The
// identifier is the heading's first token; anything after it is title text
// and is ignored. Returns "" when the token is not a well-formed id.
func headingPolicyID(heading string) string {
	id, _, _ := strings.Cut(heading, " ")
	if !domain.ValidPolicyID(id) {
		return ""
	}
	return id
}

// Baselines extracts every named document into a catalog. A malformed or
// empty document contributes an empty policy list; it never fails the batch.
func Baselines(ctx context.Context, docs map[string]string) domain.BaselineCatalog {
	catalog := make(domain.BaselineCatalog, len(docs))
	for name, content := range docs {
		catalog[name] = Policies(ctx, name, content)
	}
	return catalog
}

// Policies scans one baseline document and returns its policy records in
// document order. A heading opens a record when it carries a valid policy
// id; subsequent text lines up to the next heading or section boundary form
// the record's description. Headings without a valid id are skipped, and a
// duplicate id overwrites the earlier record (last occurrence wins).
func Policies(ctx context.Context, baseline, content string) []domain.PolicyRecord {
	logger := zerolog.Ctx(ctx)

	var (
		records []domain.PolicyRecord
		index   = map[string]int{}
		openID  string
		body    []string
	)

	closeRecord := func() {
		if openID == "" {
			return
		}
		rec := domain.PolicyRecord{ID: openID, Description: strings.Join(body, " ")}
		if at, seen := index[openID]; seen {
			logger.Warn().
				Str("baseline", baseline).
				Str("policy_id", openID).
				Msg("duplicate policy id, keeping last occurrence")
			records[at] = rec
		} else {
			index[openID] = len(records)
			records = append(records, rec)
		}
		openID, body = "", nil
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		kind, text := classify(scanner.Text())
		switch kind {
		case lineHeading:
			closeRecord()
			openID = headingPolicyID(text)
			if openID == "" {
				logger.Debug().
					Str("baseline", baseline).
					Str("heading", text).
					Msg("skipping heading without a valid policy id")
			}
		case lineSection:
			closeRecord()
		case lineText:
			if openID != "" {
				body = append(body, text)
			}
		case lineBlank:
			// Blank lines inside a body are insignificant.
		}
	}
	closeRecord()

	return records
}
