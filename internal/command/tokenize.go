package command

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-shellwords"
	"github.com/pkg/errors"
)

// Tokens is the result of tokenizing one sub-command.
type Tokens struct {
	// Args holds the words; Args[0] is the command name.
	Args []string

	// LineTruncated is set when the input exceeded the line limit.
	LineTruncated bool

	// Dropped counts tokens discarded beyond the token limit.
	Dropped int
}

// Tokenize splits line into shell-style words. Double- and single-quoted
// substrings form single tokens and backslash escapes the next character.
// Shell operators, parentheses, environment variables and backticks have no
// meaning and are kept as word content, so "a|b" and "f(x)" are single words.
//
// Input longer than maxLine bytes is cut at the last UTF-8 boundary within the
// limit, and at most maxTokens words are kept. An unterminated quote or escape
// is an error.
func Tokenize(line string, maxLine, maxTokens int) (Tokens, error) {
	var toks Tokens

	if maxLine > 0 && len(line) > maxLine {
		line = truncateUTF8(line, maxLine)
		toks.LineTruncated = true
	}

	p := shellwords.NewParser()
	p.ParseEnv = false
	p.ParseBacktick = false

	args, err := p.Parse(escapeOperators(line))
	if err != nil {
		return toks, errors.Wrap(err, "tokenize")
	}
	if args == nil {
		args = []string{}
	}

	if maxTokens > 0 && len(args) > maxTokens {
		toks.Dropped = len(args) - maxTokens
		args = args[:maxTokens]
	}
	toks.Args = args

	return toks, nil
}

// truncateUTF8 returns the longest prefix of s no longer than n bytes that
// does not split a multi-byte sequence.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// operatorRunes are characters go-shellwords treats specially outside quotes.
const operatorRunes = ";&|<>()`"

// escapeOperators backslash-escapes operator characters that appear outside
// quotes so the parser reads them as literal word content. Quote and escape
// state is tracked the same way the parser tracks it.
func escapeOperators(line string) string {
	if !strings.ContainsAny(line, operatorRunes) {
		return line
	}

	var b strings.Builder
	b.Grow(len(line) + 8)

	var escaped, single, double bool
	for _, r := range line {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && !single:
			escaped = true
		case r == '\'' && !double:
			single = !single
		case r == '"' && !single:
			double = !double
		case !single && !double && strings.ContainsRune(operatorRunes, r):
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
