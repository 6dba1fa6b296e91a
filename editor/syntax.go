package editor

import (
	"bytes"
	"strings"
)

// SyntaxFlags selects which highlighting rules a descriptor opts into.
type SyntaxFlags int

const (
	FlagNumbers SyntaxFlags = 1 << iota
	FlagStrings
	FlagComments
	FlagKeywordsStrong
	FlagKeywordsRegular
)

// Syntax describes one file-type's highlighting rules. keywordsStrong
// and keywordsRegular are split, at table-construction time, from the
// source table's single keyword list where a trailing "|" marks a
// type-like (regular-color) keyword.
type Syntax struct {
	Name                   string
	Extensions             []string
	keywordsStrong         []string
	keywordsRegular        []string
	singleLineCommentStart string
	multilineCommentStart  string
	multilineCommentEnd    string
	Flags                  SyntaxFlags
}

// rawSyntax is the literal table: one keyword list per descriptor,
// trailing "|" marking the type-like (regular) keywords.
type rawSyntax struct {
	name                   string
	extensions             []string
	keywords               []string
	singleLineCommentStart string
	multilineCommentStart  string
	multilineCommentEnd    string
	flags                  SyntaxFlags
}

var rawHLDB = []rawSyntax{
	{
		name:       "c",
		extensions: []string{".c", ".h", ".cpp"},
		keywords: []string{
			"switch", "if", "while", "for", "break", "continue", "return", "else",
			"struct", "union", "typedef", "static", "enum", "class", "case",
			"int", "long", "double", "float", "char", "unsigned", "signed", "void",
			"size_t|", "FILE|", "ssize_t|",
		},
		singleLineCommentStart: "//",
		multilineCommentStart:  "/*",
		multilineCommentEnd:    "*/",
		flags:                  FlagNumbers | FlagStrings | FlagComments | FlagKeywordsStrong | FlagKeywordsRegular,
	},
	{
		name:       "go",
		extensions: []string{".go"},
		keywords: []string{
			"break", "case", "chan", "const", "continue", "default", "defer", "else",
			"fallthrough", "for", "go", "goto", "if", "import", "package",
			"range", "return", "select", "struct", "switch", "type", "var",
			"interface|", "func|", "map|",
		},
		singleLineCommentStart: "//",
		multilineCommentStart:  "/*",
		multilineCommentEnd:    "*/",
		flags:                  FlagNumbers | FlagStrings | FlagComments | FlagKeywordsStrong | FlagKeywordsRegular,
	},
	{
		name:       "text",
		extensions: []string{".txt", ".md"},
		keywords:   nil,
		flags:      0,
	},
}

// HLDB is the process-wide, read-only syntax table built once from
// rawHLDB at package init.
var HLDB = buildHLDB(rawHLDB)

func buildHLDB(raw []rawSyntax) []Syntax {
	out := make([]Syntax, len(raw))
	for i, r := range raw {
		var strong, regular []string
		for _, kw := range r.keywords {
			if strings.HasSuffix(kw, "|") {
				regular = append(regular, kw[:len(kw)-1])
			} else {
				strong = append(strong, kw)
			}
		}
		out[i] = Syntax{
			Name:                   r.name,
			Extensions:             r.extensions,
			keywordsStrong:         strong,
			keywordsRegular:        regular,
			singleLineCommentStart: r.singleLineCommentStart,
			multilineCommentStart:  r.multilineCommentStart,
			multilineCommentEnd:    r.multilineCommentEnd,
			Flags:                  r.flags,
		}
	}
	return out
}

const separatorChars = ",.()+-/*=~%<>[];"

func isSeparator(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f', 0:
		return true
	}
	return strings.IndexByte(separatorChars, c) >= 0
}

// SelectSyntaxHighlight infers a Syntax descriptor from the document's
// filename extension and re-highlights every row under it. No match
// leaves syntax nil, meaning only search MATCH highlighting applies.
func (e *Editor) SelectSyntaxHighlight() {
	e.syntax = nil
	if e.filename == "" {
		return
	}

	ext := ""
	if i := strings.LastIndex(e.filename, "."); i != -1 {
		ext = e.filename[i:]
	}
	if ext == "" {
		return
	}

	for i := range HLDB {
		s := &HLDB[i]
		for _, pattern := range s.Extensions {
			if ext == pattern {
				e.syntax = s
				for row := range e.rows {
					e.highlightRow(row)
				}
				return
			}
		}
	}
}

// highlightRow re-derives hl for row idx and cascades into idx+1 if
// the row's ends-in-open-comment bit changed.
func (e *Editor) highlightRow(idx int) {
	if idx < 0 || idx >= len(e.rows) {
		return
	}
	row := &e.rows[idx]
	prevOpenComment := false
	if idx > 0 {
		prevOpenComment = e.rows[idx-1].hlOpenComment
	}

	hl, endsOpen := scanRow(row.render, e.syntax, prevOpenComment)
	row.hl = hl

	changed := row.hlOpenComment != endsOpen
	row.hlOpenComment = endsOpen
	if changed && idx+1 < len(e.rows) {
		e.highlightRow(idx + 1)
	}
}

// scanRow is the syntax scanner proper: a single left-to-right pass
// over render producing one HighlightTag per byte. startOpenComment
// carries the previous row's ends-in-open-comment state in.
func scanRow(render []byte, syn *Syntax, startOpenComment bool) ([]HighlightTag, bool) {
	hl := make([]HighlightTag, len(render))
	if syn == nil {
		return hl, false
	}

	scs := []byte(syn.singleLineCommentStart)
	mcs := []byte(syn.multilineCommentStart)
	mce := []byte(syn.multilineCommentEnd)

	prevSep := true
	var inString byte
	inComment := startOpenComment

	for i := 0; i < len(render); {
		c := render[i]
		prevHL := HLNormal
		if i > 0 {
			prevHL = hl[i-1]
		}

		if syn.Flags&FlagComments != 0 && len(scs) > 0 && inString == 0 && !inComment {
			if bytes.HasPrefix(render[i:], scs) {
				for j := i; j < len(render); j++ {
					hl[j] = HLComment
				}
				break
			}
		}

		if syn.Flags&FlagComments != 0 && len(mcs) > 0 && len(mce) > 0 && inString == 0 {
			if inComment {
				hl[i] = HLComment
				if bytes.HasPrefix(render[i:], mce) {
					for j := 0; j < len(mce) && i+j < len(render); j++ {
						hl[i+j] = HLComment
					}
					inComment = false
					i += len(mce)
					prevSep = true
					continue
				}
				i++
				continue
			} else if bytes.HasPrefix(render[i:], mcs) {
				inComment = true
				for j := 0; j < len(mcs) && i+j < len(render); j++ {
					hl[i+j] = HLComment
				}
				i += len(mcs)
				continue
			}
		}

		if syn.Flags&FlagStrings != 0 {
			if inString != 0 {
				hl[i] = HLString
				if c == '\\' && i+1 < len(render) {
					hl[i+1] = HLString
					i += 2
					continue
				}
				if c == inString {
					inString = 0
				}
				i++
				prevSep = true
				continue
			} else if c == '"' || c == '\'' {
				inString = c
				hl[i] = HLString
				i++
				continue
			}
		}

		if syn.Flags&FlagNumbers != 0 {
			if (isDigit(c) && (prevSep || prevHL == HLNumber)) || (c == '.' && prevHL == HLNumber) {
				hl[i] = HLNumber
				i++
				prevSep = false
				continue
			}
		}

		if prevSep {
			if kw, tag, ok := matchKeyword(render[i:], syn); ok {
				for k := 0; k < len(kw); k++ {
					hl[i+k] = tag
				}
				i += len(kw)
				prevSep = false
				continue
			}
		}

		prevSep = isSeparator(c)
		i++
	}

	return hl, inComment
}

// matchKeyword finds the longest whole-word keyword match at the
// start of s, bounded by a separator (or end of row) after it. Each
// keyword class only matches when its flag is set on the descriptor.
func matchKeyword(s []byte, syn *Syntax) (kw string, tag HighlightTag, ok bool) {
	check := func(list []string, tag HighlightTag) (string, HighlightTag, bool) {
		for _, keyword := range list {
			klen := len(keyword)
			if klen == 0 || klen > len(s) {
				continue
			}
			if !bytes.Equal(s[:klen], []byte(keyword)) {
				continue
			}
			if klen < len(s) && !isSeparator(s[klen]) {
				continue
			}
			return keyword, tag, true
		}
		return "", 0, false
	}
	if syn.Flags&FlagKeywordsStrong != 0 {
		if kw, tag, ok := check(syn.keywordsStrong, HLKeywordStrong); ok {
			return kw, tag, ok
		}
	}
	if syn.Flags&FlagKeywordsRegular != 0 {
		return check(syn.keywordsRegular, HLKeywordRegular)
	}
	return "", 0, false
}
