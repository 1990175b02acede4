// Package manifest reads pyproject.toml documents and rewrites string values
// in place. Values are decoded with a TOML decoder and located with a TOML
// parser that reports the byte span of every literal, so a rewrite touches
// only the targeted literals. The result is decoded again before it is
// accepted; comments, ordering and formatting survive untouched.
package manifest

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pelletier/go-toml/v2/unstable"

	"github.com/grpc-protos/protosync/internal/protosync/fsutil"
	perrors "github.com/grpc-protos/protosync/pkg/errors"
)

// Document is a decoded manifest together with its original bytes.
type Document struct {
	Path string
	raw  []byte
	data map[string]interface{}
	lits []literal
}

// literal is one string value and the span of its quoted form in raw.
type literal struct {
	key     []string
	inArray bool
	value   string
	start   int
	end     int
}

// Load reads and decodes the manifest at path.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, perrors.NewNotFoundError("manifest", path)
		}
		return nil, err
	}
	return Parse(path, raw)
}

// Parse decodes raw. path is used for error messages and Save.
func Parse(path string, raw []byte) (*Document, error) {
	data := map[string]interface{}{}
	if _, err := toml.Decode(string(raw), &data); err != nil {
		return nil, perrors.WrapStructural(path, "parse manifest", err)
	}
	lits, err := scanLiterals(raw)
	if err != nil {
		return nil, perrors.WrapStructural(path, "parse manifest", err)
	}
	return &Document{Path: path, raw: raw, data: data, lits: lits}, nil
}

// Bytes returns the current document bytes.
func (d *Document) Bytes() []byte {
	return d.raw
}

func (d *Document) lookup(keys ...string) (interface{}, bool) {
	var cur interface{} = d.data
	for _, k := range keys {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[k]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// StringAt returns the string at the dotted key.
func (d *Document) StringAt(keys ...string) (string, bool) {
	v, ok := d.lookup(keys...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Strings returns every string value of the document in document order,
// wherever it is declared: plain values, array elements of any table and
// inline tables alike.
func (d *Document) Strings() []string {
	out := make([]string, 0, len(d.lits))
	for _, l := range d.lits {
		out = append(out, l.value)
	}
	return out
}

// SetString replaces the string value of key inside table. Only the
// characters between the quotes change; the quoting style is kept.
func (d *Document) SetString(table []string, key, value string) error {
	op := "rewrite " + dotted(table, key)
	if err := checkLiteral(value); err != nil {
		return perrors.WrapStructural(d.Path, op, err)
	}

	full := append(append([]string{}, table...), key)
	if _, ok := d.StringAt(full...); !ok {
		return perrors.WrapStructural(d.Path, "read "+dotted(table, key), perrors.ErrManifestField)
	}

	var spans []literal
	for _, l := range d.lits {
		if !l.inArray && equalKeys(l.key, full) {
			spans = append(spans, l)
		}
	}
	if len(spans) != 1 {
		return perrors.WrapStructural(d.Path, op, perrors.ErrManifestRewrite)
	}

	return d.commit(d.rewrite(spans, value), func(nd *Document) bool {
		got, ok := nd.StringAt(full...)
		return ok && got == value
	}, op)
}

// ReplaceString replaces every string literal whose content is exactly old
// with replacement and returns the number of literals replaced.
func (d *Document) ReplaceString(old, replacement string) (int, error) {
	if old == replacement {
		return 0, nil
	}
	if err := checkLiteral(replacement); err != nil {
		return 0, perrors.WrapStructural(d.Path, "rewrite dependency", err)
	}

	var spans []literal
	for _, l := range d.lits {
		if l.value == old {
			spans = append(spans, l)
		}
	}
	if len(spans) == 0 {
		return 0, perrors.WrapStructural(d.Path, "rewrite dependency", perrors.ErrManifestRewrite)
	}

	err := d.commit(d.rewrite(spans, replacement), func(nd *Document) bool {
		return !bytes.Equal(nd.raw, d.raw)
	}, "rewrite dependency")
	if err != nil {
		return 0, err
	}
	return len(spans), nil
}

// rewrite returns raw with each span replaced by value in the span's own
// quoting. spans are in document order.
func (d *Document) rewrite(spans []literal, value string) []byte {
	out := make([]byte, 0, len(d.raw))
	last := 0
	for _, l := range spans {
		q := delimiter(d.raw[l.start:l.end])
		out = append(out, d.raw[last:l.start]...)
		out = append(out, q...)
		out = append(out, value...)
		out = append(out, q...)
		last = l.end
	}
	return append(out, d.raw[last:]...)
}

// commit re-decodes candidate and adopts it when verify accepts it.
func (d *Document) commit(candidate []byte, verify func(*Document) bool, op string) error {
	nd, err := Parse(d.Path, candidate)
	if err != nil {
		return perrors.WrapStructural(d.Path, op, fmt.Errorf("%w: result does not decode", perrors.ErrManifestRewrite))
	}
	if !verify(nd) {
		return perrors.WrapStructural(d.Path, op, perrors.ErrManifestRewrite)
	}
	*d = *nd
	return nil
}

// Save writes the document atomically.
func (d *Document) Save() error {
	return fsutil.WriteFile(d.Path, d.raw, 0o644)
}

// scanLiterals walks every top-level expression and records each string
// value with its full dotted key.
func scanLiterals(raw []byte) ([]literal, error) {
	var p unstable.Parser
	p.Reset(raw)

	var table []string
	var out []literal
	for p.NextExpression() {
		e := p.Expression()
		switch e.Kind {
		case unstable.Table, unstable.ArrayTable:
			it := e.Key()
			table = keyPath(nil, &it)
		case unstable.KeyValue:
			it := e.Key()
			out = collect(out, keyPath(table, &it), e.Value(), false)
		}
	}
	if err := p.Error(); err != nil {
		return nil, err
	}
	return out, nil
}

func keyPath(prefix []string, it *unstable.Iterator) []string {
	key := append([]string{}, prefix...)
	for it.Next() {
		key = append(key, string(it.Node().Data))
	}
	return key
}

func collect(out []literal, key []string, n *unstable.Node, inArray bool) []literal {
	switch n.Kind {
	case unstable.String:
		out = append(out, literal{
			key:     key,
			inArray: inArray,
			value:   string(n.Data),
			start:   int(n.Raw.Offset),
			end:     int(n.Raw.Offset + n.Raw.Length),
		})
	case unstable.Array:
		it := n.Children()
		for it.Next() {
			out = collect(out, key, it.Node(), true)
		}
	case unstable.InlineTable:
		it := n.Children()
		for it.Next() {
			kv := it.Node()
			kit := kv.Key()
			out = collect(out, keyPath(key, &kit), kv.Value(), inArray)
		}
	}
	return out
}

// delimiter returns the quote sequence that opens token.
func delimiter(token []byte) string {
	q := token[:1]
	if triple := bytes.Repeat(q, 3); len(token) >= 6 && bytes.HasPrefix(token, triple) {
		return string(triple)
	}
	return string(q)
}

func checkLiteral(value string) error {
	if strings.ContainsAny(value, "\"'\\\n\r") {
		return fmt.Errorf("%w: value %q cannot be written as a plain literal", perrors.ErrManifestRewrite, value)
	}
	return nil
}

func dotted(table []string, key string) string {
	return strings.Join(append(append([]string{}, table...), key), ".")
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
