// Package match implements the ordered anchor-matching cascade. Search terms
// and candidate anchors come from two independent free-text sources that
// disagree on pluralization, punctuation, word order, and added qualifiers,
// so no single comparison is reliable; the cascade tries the cheapest, least
// ambiguous strategies first and only falls back to looser ones when nothing
// earlier produced a hit.
package match

import (
	"regexp"
	"strings"
)

var duplicateSuffix = regexp.MustCompile(`--\d+$`)

// MaxStep is the number of strategies in the cascade.
const MaxStep = 12

// Match is a successful cascade result: the winning candidate anchor and the
// 1-based step of the strategy that produced it. Lower steps mean higher
// confidence.
type Match struct {
	Anchor string
	Step   int
}

type tieBreak int

const (
	// tieShortest prefers the shortest matching candidate, the usual rule:
	// extra qualifier words make a candidate less likely to be the target.
	tieShortest tieBreak = iota
	// tieLongest prefers the longest matching candidate. Used by the
	// reverse/subset strategies where the candidate is contained in the
	// search term, so the longer candidate is the more specific target.
	tieLongest
)

type strategy struct {
	name string
	tie  tieBreak
	test func(search, candidate string) bool
}

// strategies is evaluated strictly in order; index+1 is the reported step.
var strategies = []strategy{
	{name: "exact", tie: tieShortest, test: exact},
	{name: "exact-singular", tie: tieShortest, test: exactSingular},
	{name: "word-prefix", tie: tieShortest, test: wordPrefix},
	{name: "word-prefix-singular", tie: tieShortest, test: wordPrefixSingular},
	{name: "collapsed", tie: tieShortest, test: collapsed},
	{name: "collapsed-singular", tie: tieShortest, test: collapsedSingular},
	{name: "collapsed-prefix", tie: tieShortest, test: collapsedPrefix},
	{name: "collapsed-prefix-singular", tie: tieShortest, test: collapsedPrefixSingular},
	{name: "reverse-prefix", tie: tieLongest, test: reversePrefix},
	{name: "word-subset", tie: tieLongest, test: wordSubset},
	{name: "word-subset-singular", tie: tieLongest, test: wordSubsetSingular},
	{name: "unordered-words", tie: tieShortest, test: unorderedWords},
}

// Find runs the cascade for search against candidates. maxStep truncates the
// cascade when positive; zero or negative means the full cascade. The first
// strategy with at least one matching candidate wins and its matches are
// reduced to a single winner by the strategy's tie-break rule. Find is pure
// and deterministic: identical inputs always yield identical results.
func Find(search string, candidates []string, maxStep int) (Match, bool) {
	if search == "" || len(candidates) == 0 {
		return Match{}, false
	}
	if maxStep <= 0 || maxStep > MaxStep {
		maxStep = MaxStep
	}

	for i, strat := range strategies[:maxStep] {
		winner, ok := pick(search, candidates, strat)
		if ok {
			return Match{Anchor: winner, Step: i + 1}, true
		}
	}
	return Match{}, false
}

// StepName returns the diagnostic name of a cascade step, or "" when the step
// is out of range.
func StepName(step int) string {
	if step < 1 || step > MaxStep {
		return ""
	}
	return strategies[step-1].name
}

func pick(search string, candidates []string, strat strategy) (string, bool) {
	winner := ""
	found := false
	for _, candidate := range candidates {
		if candidate == "" || !strat.test(search, candidate) {
			continue
		}
		if !found {
			winner = candidate
			found = true
			continue
		}
		if strat.tie == tieLongest {
			if len(candidate) > len(winner) {
				winner = candidate
			}
		} else if len(candidate) < len(winner) {
			winner = candidate
		}
	}
	return winner, found
}

// Step 1: exact match once the candidate's "--N" duplicate suffix is stripped.
func exact(search, candidate string) bool {
	return search == stripDuplicateSuffix(candidate)
}

// Step 2: exact match after singularizing both sides.
func exactSingular(search, candidate string) bool {
	return singular(search) == singular(stripDuplicateSuffix(candidate))
}

// Step 3: the candidate's words start with exactly the search's words, in order.
func wordPrefix(search, candidate string) bool {
	return wordsHavePrefix(words(candidate), words(search))
}

// Step 4: word prefix with each word singularized first.
func wordPrefixSingular(search, candidate string) bool {
	return wordsHavePrefix(singularWords(words(candidate)), singularWords(words(search)))
}

// Step 5: exact match with hyphens removed from both sides.
func collapsed(search, candidate string) bool {
	return dehyphen(search) == dehyphen(candidate)
}

// Step 6: collapsed match plus singularization.
func collapsedSingular(search, candidate string) bool {
	return singular(dehyphen(search)) == singular(dehyphen(candidate))
}

// Step 7: candidate (hyphens removed) starts with search (hyphens removed).
func collapsedPrefix(search, candidate string) bool {
	return strings.HasPrefix(dehyphen(candidate), dehyphen(search))
}

// Step 8: collapsed prefix plus singularization.
func collapsedPrefixSingular(search, candidate string) bool {
	return strings.HasPrefix(singular(dehyphen(candidate)), singular(dehyphen(search)))
}

// Step 9: the search starts with candidate+"-", i.e. the candidate is a
// shorter, more general anchor contained as a prefix of an over-specific
// search term.
func reversePrefix(search, candidate string) bool {
	return strings.HasPrefix(search, candidate+"-")
}

// Step 10: every candidate word appears, in order, as a possibly
// non-contiguous subsequence of the search's words. Requires at least two
// candidate words to avoid one-word false positives.
func wordSubset(search, candidate string) bool {
	cw := words(candidate)
	if len(cw) < 2 {
		return false
	}
	return isSubsequence(cw, words(search))
}

// Step 11: word subset with singularized words.
func wordSubsetSingular(search, candidate string) bool {
	cw := singularWords(words(candidate))
	if len(cw) < 2 {
		return false
	}
	return isSubsequence(cw, singularWords(words(search)))
}

// Step 12: every search word (singularized) appears somewhere among the
// candidate's words, order ignored. Both sides need at least two words.
func unorderedWords(search, candidate string) bool {
	sw := singularWords(words(search))
	cw := singularWords(words(candidate))
	if len(sw) < 2 || len(cw) < 2 {
		return false
	}

	present := make(map[string]bool, len(cw))
	for _, w := range cw {
		present[w] = true
	}
	for _, w := range sw {
		if !present[w] {
			return false
		}
	}
	return true
}

func singular(s string) string {
	if len(s) > 1 && strings.HasSuffix(s, "s") {
		return s[:len(s)-1]
	}
	return s
}

func stripDuplicateSuffix(s string) string {
	return duplicateSuffix.ReplaceAllString(s, "")
}

func dehyphen(s string) string {
	return strings.ReplaceAll(s, "-", "")
}

func words(s string) []string {
	parts := strings.Split(s, "-")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func singularWords(ws []string) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = singular(w)
	}
	return out
}

// wordsHavePrefix reports whether haystack begins with exactly the words of
// prefix, in order.
func wordsHavePrefix(haystack, prefix []string) bool {
	if len(prefix) == 0 || len(haystack) < len(prefix) {
		return false
	}
	for i, w := range prefix {
		if haystack[i] != w {
			return false
		}
	}
	return true
}

// isSubsequence reports whether needle appears, in order but possibly with
// gaps, inside haystack.
func isSubsequence(needle, haystack []string) bool {
	if len(needle) == 0 {
		return false
	}
	i := 0
	for _, w := range haystack {
		if w == needle[i] {
			i++
			if i == len(needle) {
				return true
			}
		}
	}
	return false
}
