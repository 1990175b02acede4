package ledger

import (
	"regexp"
	"strings"
)

var separatorRun = regexp.MustCompile(`[-_.]+`)

// normalizeName applies the PEP 503 distribution name normalization.
func normalizeName(name string) string {
	return separatorRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// declaration is a parsed direct-reference requirement:
//
//	name[extras] @ source@ref ; marker
type declaration struct {
	raw    string
	name   string
	source string
	ref    string
	// refStart/refEnd delimit ref inside raw.
	refStart int
	refEnd   int
}

// parseDeclaration returns false for anything that is not a direct reference
// carrying an explicit ref.
func parseDeclaration(raw string) (declaration, bool) {
	at := strings.Index(raw, "@")
	if at < 0 {
		return declaration{}, false
	}

	name := raw[:at]
	if br := strings.Index(name, "["); br >= 0 {
		name = name[:br]
	}
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, "<>=!~ ;") {
		return declaration{}, false
	}

	urlStart := at + 1
	for urlStart < len(raw) && (raw[urlStart] == ' ' || raw[urlStart] == '\t') {
		urlStart++
	}
	urlEnd := urlStart
	for urlEnd < len(raw) && raw[urlEnd] != ' ' && raw[urlEnd] != '\t' && raw[urlEnd] != ';' {
		urlEnd++
	}
	url := raw[urlStart:urlEnd]

	refAt := strings.LastIndex(url, "@")
	if refAt < 0 || refAt < strings.LastIndex(url, "/") || refAt == len(url)-1 {
		return declaration{}, false
	}

	return declaration{
		raw:      raw,
		name:     name,
		source:   url[:refAt],
		ref:      url[refAt+1:],
		refStart: urlStart + refAt + 1,
		refEnd:   urlEnd,
	}, true
}

// withRef returns the declaration text with its ref replaced.
func (d declaration) withRef(ref string) string {
	return d.raw[:d.refStart] + ref + d.raw[d.refEnd:]
}

var tagRef = regexp.MustCompile(`^v(\d+\.\d+\.\d+)$`)

// tagVersion extracts X.Y.Z from a "vX.Y.Z" ref.
func tagVersion(ref string) (string, bool) {
	m := tagRef.FindStringSubmatch(ref)
	if m == nil {
		return "", false
	}
	return m[1], true
}
