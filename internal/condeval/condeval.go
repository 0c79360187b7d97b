// Package condeval implements the small boolean grammar used to evaluate a
// condition node's `parameters.logic` expression (spec §4.5 Condition,
// §9 Open Question 2). The source format substitutes each referenced node
// id with the literal `true`/`false` before parsing, then evaluates a
// grammar of `&` (and), `|` (or), `!` (not), and parentheses — never
// constructing or invoking any code, unlike the dynamic-eval approach the
// original program used.
package condeval

import (
	"fmt"
	"regexp"
	"unicode"
)

// allowedChars matches spec §4.5's literal post-substitution validation
// pattern: only the letters making up true/false, the boolean operators,
// parentheses, and whitespace may remain once node ids are substituted.
var allowedChars = regexp.MustCompile(`^[truefals&|!()\s]*$`)

// Substitute replaces every occurrence of a node id in logic with the
// literal "true" or "false" according to truthy, then validates the
// result against the allowed-character rule. An id only matches where it
// is bounded by non-identifier characters on both sides, so an id that is
// a prefix of another never matches inside it, whatever the order of ids.
func Substitute(logic string, ids []string, truthy func(id string) bool) (string, error) {
	out := []rune(logic)
	result := ""
	i := 0
	runes := out
	for i < len(runes) {
		matched := false
		for _, id := range ids {
			idRunes := []rune(id)
			if i+len(idRunes) > len(runes) {
				continue
			}
			if string(runes[i:i+len(idRunes)]) != id {
				continue
			}
			// Require a non-identifier boundary on both sides so "ab" doesn't
			// match inside "abc".
			if i > 0 && isIdentRune(runes[i-1]) {
				continue
			}
			end := i + len(idRunes)
			if end < len(runes) && isIdentRune(runes[end]) {
				continue
			}
			if truthy(id) {
				result += "true"
			} else {
				result += "false"
			}
			i = end
			matched = true
			break
		}
		if matched {
			continue
		}
		result += string(runes[i])
		i++
	}

	if !allowedChars.MatchString(result) {
		return "", fmt.Errorf("condition logic contains disallowed content after substitution")
	}
	return result, nil
}

func isIdentRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-'
}

// Evaluate parses and evaluates a substituted boolean expression built only
// from `true`, `false`, `&`, `|`, `!`, and parentheses.
func Evaluate(substituted string) (bool, error) {
	p := &boolParser{lex: newBoolLexer(substituted)}
	p.next()
	v, err := p.parseOr()
	if err != nil {
		return false, err
	}
	if p.tok.kind != boolTokEOF {
		return false, fmt.Errorf("unexpected trailing content in condition logic")
	}
	return v, nil
}
