package fictionfetch

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// Royal Road authors conventionally mark system/status text with bracket
// pairs. All three styles render as bold; stray brackets that never close
// are dropped so they can't leak into output.
var bracketPatterns = []*regexp.Regexp{
	regexp.MustCompile(`<([^<>]+)>`),
	regexp.MustCompile(`\[([^\[\]]+)\]`),
	regexp.MustCompile(`\{([^{}]+)\}`),
}

// bracketSpanPattern matches any complete bracket pair in a single combined
// scan. Alternation order fixes the priority (angle, square, curly) when two
// styles open at the same position.
var bracketSpanPattern = regexp.MustCompile(`<[^<>]+>|\[[^\[\]]+\]|\{[^{}]+\}`)

var bracketStripper = strings.NewReplacer("<", "", ">", "", "[", "", "]", "", "{", "", "}", "")

// BracketSpan is one segment of text classified by the bracket convention.
// It exists only during normalization and is never persisted.
type BracketSpan struct {
	// Bold reports whether the span was bracket-delimited in the source.
	Bold bool

	// Text is the span content with the delimiters removed.
	Text string
}

// BoldBrackets converts bracketed segments of plain text into bold HTML and
// removes the brackets:
//
//	<something>  ->  <strong>something</strong>
//	[something]  ->  <strong>something</strong>
//	{something}  ->  <strong>something</strong>
//
// Everything else is HTML-escaped, so the result is safe to embed in a page.
func BoldBrackets(text string) string {
	var replacements []string

	mark := func(content string) string {
		token := fmt.Sprintf("@@BOLD%d@@", len(replacements))
		replacements = append(replacements, "<strong>"+html.EscapeString(content)+"</strong>")
		return token
	}

	// Angle, square, curly: independent passes, in that order.
	for _, pat := range bracketPatterns {
		text = pat.ReplaceAllStringFunc(text, func(m string) string {
			sub := pat.FindStringSubmatch(m)
			return mark(sub[1])
		})
	}

	// Unmatched brackets are stripped rather than left dangling.
	text = bracketStripper.Replace(text)

	escaped := html.EscapeString(text)
	for i, rep := range replacements {
		escaped = strings.Replace(escaped, fmt.Sprintf("@@BOLD%d@@", i), rep, 1)
	}

	return escaped
}

// SplitBracketSpans segments text into ordered text/bold spans using the
// same three bracket styles as BoldBrackets. It is used to apply the bracket
// convention inside HTML text nodes without treating real HTML tags as
// bracket syntax.
func SplitBracketSpans(s string) []BracketSpan {
	var spans []BracketSpan
	last := 0
	for _, m := range bracketSpanPattern.FindAllStringIndex(s, -1) {
		if m[0] > last {
			spans = append(spans, BracketSpan{Text: s[last:m[0]]})
		}
		token := s[m[0]:m[1]]
		spans = append(spans, BracketSpan{Bold: true, Text: token[1 : len(token)-1]})
		last = m[1]
	}
	if last < len(s) {
		spans = append(spans, BracketSpan{Text: s[last:]})
	}
	return spans
}

// StripBrackets removes all six bracket characters from s.
func StripBrackets(s string) string {
	return bracketStripper.Replace(s)
}

// ContainsBrackets reports whether s contains any of the six bracket
// characters the normalizer cares about.
func ContainsBrackets(s string) bool {
	return strings.ContainsAny(s, "<>[]{}")
}
