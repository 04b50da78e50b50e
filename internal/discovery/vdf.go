package discovery

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// KeyValues is a parsed Valve KeyValues (VDF/ACF) block.
// Values are either string or KeyValues.
type KeyValues map[string]any

// Child returns the nested block under key (case-insensitive), or nil
func (kv KeyValues) Child(key string) KeyValues {
	v, _ := kv.lookup(key).(KeyValues)
	return v
}

// String returns the string value under key (case-insensitive), or ""
func (kv KeyValues) String(key string) string {
	v, _ := kv.lookup(key).(string)
	return v
}

func (kv KeyValues) lookup(key string) any {
	if v, ok := kv[key]; ok {
		return v
	}
	for k, v := range kv {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return nil
}

// ParseKeyValues reads a KeyValues document from r
func ParseKeyValues(r io.Reader) (KeyValues, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading vdf: %w", err)
	}
	p := &kvParser{lex: &kvLexer{src: string(data)}}
	return p.block(true)
}

type kvTokenKind int

const (
	tokEOF kvTokenKind = iota
	tokString
	tokOpen
	tokClose
)

type kvToken struct {
	kind kvTokenKind
	text string
}

type kvLexer struct {
	src string
	pos int
}

func (l *kvLexer) next() (kvToken, error) {
	for {
		l.skipSpace()
		if l.pos >= len(l.src) {
			return kvToken{kind: tokEOF}, nil
		}
		if strings.HasPrefix(l.src[l.pos:], "//") {
			if nl := strings.IndexByte(l.src[l.pos:], '\n'); nl >= 0 {
				l.pos += nl + 1
			} else {
				l.pos = len(l.src)
			}
			continue
		}
		// Platform conditionals such as [$WIN32] are ignored
		if l.src[l.pos] == '[' {
			if end := strings.IndexByte(l.src[l.pos:], ']'); end >= 0 {
				l.pos += end + 1
				continue
			}
		}
		break
	}

	switch c := l.src[l.pos]; c {
	case '{':
		l.pos++
		return kvToken{kind: tokOpen}, nil
	case '}':
		l.pos++
		return kvToken{kind: tokClose}, nil
	case '"':
		return l.quoted()
	default:
		start := l.pos
		for l.pos < len(l.src) && !isKVSpace(l.src[l.pos]) && !strings.ContainsRune(`"{}`, rune(l.src[l.pos])) {
			l.pos++
		}
		return kvToken{kind: tokString, text: l.src[start:l.pos]}, nil
	}
}

func (l *kvLexer) quoted() (kvToken, error) {
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == '"':
			l.pos++
			return kvToken{kind: tokString, text: sb.String()}, nil
		case c == '\\' && l.pos+1 < len(l.src):
			l.pos++
			switch e := l.src[l.pos]; e {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(e)
			}
		default:
			sb.WriteByte(c)
		}
		l.pos++
	}
	return kvToken{}, fmt.Errorf("vdf: unclosed quote")
}

func (l *kvLexer) skipSpace() {
	for l.pos < len(l.src) && isKVSpace(l.src[l.pos]) {
		l.pos++
	}
}

func isKVSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

type kvParser struct {
	lex *kvLexer
}

// block parses key/value pairs until a closing brace, or EOF at the top level
func (p *kvParser) block(top bool) (KeyValues, error) {
	out := make(KeyValues)
	for {
		tok, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokEOF:
			if !top {
				return nil, fmt.Errorf("vdf: unexpected end of input, missing }")
			}
			return out, nil
		case tokClose:
			if top {
				return nil, fmt.Errorf("vdf: unexpected }")
			}
			return out, nil
		case tokOpen:
			return nil, fmt.Errorf("vdf: unexpected { without key")
		}

		key := tok.text
		val, err := p.lex.next()
		if err != nil {
			return nil, err
		}
		switch val.kind {
		case tokString:
			out[key] = val.text
		case tokOpen:
			inner, err := p.block(false)
			if err != nil {
				return nil, err
			}
			out[key] = inner
		default:
			return nil, fmt.Errorf("vdf: unexpected end after key %q", key)
		}
	}
}

// LibraryPaths extracts library directories from a parsed libraryfolders.vdf.
// Both the current format ("0" { "path" "..." }) and the legacy one ("1" "...") are understood.
func LibraryPaths(root KeyValues) []string {
	lf := root.Child("libraryfolders")
	if lf == nil {
		return nil
	}

	type indexed struct {
		n    int
		path string
	}
	var found []indexed
	for k, v := range lf {
		n, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		switch e := v.(type) {
		case KeyValues:
			if p := e.String("path"); p != "" {
				found = append(found, indexed{n, p})
			}
		case string:
			if e != "" {
				found = append(found, indexed{n, e})
			}
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].n < found[j].n })

	paths := make([]string, 0, len(found))
	for _, f := range found {
		paths = append(paths, f.path)
	}
	return paths
}

// AppManifest holds the fields of an appmanifest_<appid>.acf file
type AppManifest struct {
	AppID      string
	Name       string
	InstallDir string
}

// ParseAppManifest parses appmanifest content
func ParseAppManifest(r io.Reader) (AppManifest, error) {
	root, err := ParseKeyValues(r)
	if err != nil {
		return AppManifest{}, err
	}
	state := root.Child("AppState")
	if state == nil {
		return AppManifest{}, fmt.Errorf("vdf: missing AppState")
	}
	return AppManifest{
		AppID:      state.String("appid"),
		Name:       state.String("name"),
		InstallDir: state.String("installdir"),
	}, nil
}
