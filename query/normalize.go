package query

// DirectivePrefix introduces an in-query language directive.
const DirectivePrefix = ':'

const (
	// langStart and langEnd delimit the language code after the prefix.
	langStart = 1
	langEnd   = 3
	// queryStart is the fixed prefix length skipped before the query text.
	queryStart = 4
)

// Normalized is the result of normalizing a raw query.
type Normalized struct {
	// Query is the raw query with any language directive stripped.
	Query string
	// Lang is the language override, empty when the query had no directive.
	Lang string
}

// HasOverride reports whether the raw query carried a language directive.
func (n Normalized) HasOverride() bool {
	return n.Lang != ""
}

// Normalize parses an optional leading language directive.
//
// If raw starts with ':', the next two runes are the language code and the
// query text starts after a fixed 4-rune prefix. Shorter inputs truncate:
//
//	":"      -> Lang "",   Query ""
//	":f"     -> Lang "f",  Query ""
//	":fr"    -> Lang "fr", Query ""
//	":fr:"   -> Lang "fr", Query ""
//	":fr:x"  -> Lang "fr", Query "x"
//
// Without a leading ':' the query is returned unchanged and Lang is empty, so
// normalizing an already normalized query is a no-op.
func Normalize(raw string) Normalized {
	if raw == "" || raw[0] != DirectivePrefix {
		return Normalized{Query: raw}
	}

	runes := []rune(raw)
	return Normalized{
		Lang:  string(runes[min(langStart, len(runes)):min(langEnd, len(runes))]),
		Query: string(runes[min(queryStart, len(runes)):]),
	}
}
