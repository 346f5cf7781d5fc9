package util

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParsedEvaluation is the structured form of the model's free-text reply.
type ParsedEvaluation struct {
	Score     int
	Strengths []string
	Gaps      []string
}

const (
	// Cleaned lines at or below this length are treated as noise.
	minEntryLength = 5
	// At most this many strengths/gaps survive per section.
	maxEntries = 3

	// Bullet glyphs the model tends to emit, stripped from line edges.
	bulletGlyphs = "*•‣▪▸▹►▬-—★☆✦✧●◉◎ \t"
)

var (
	scoreRe      = regexp.MustCompile(`(?i)score[:\s]*(\d+)`)
	strengthsRe  = regexp.MustCompile(`(?i)strengths?[:\s]*`)
	missingRe    = regexp.MustCompile(`(?i)missing[:\s]*`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// ParseEvaluation extracts score, strengths and gaps from the raw model
// output. The format is requested but not guaranteed, so everything here is
// permissive: a missing section or score token yields defaults, never an
// error. The score is passed through as found, without an upper clamp.
func ParseEvaluation(raw string) ParsedEvaluation {
	parsed := ParsedEvaluation{
		Strengths: []string{},
		Gaps:      []string{},
	}

	if m := scoreRe.FindStringSubmatch(raw); m != nil {
		if score, err := strconv.Atoi(m[1]); err == nil {
			parsed.Score = score
		}
	}

	strengths, gaps := splitSections(raw)
	parsed.Strengths = parseEntries(strengths)
	parsed.Gaps = parseEntries(gaps)

	return parsed
}

// splitSections carves the raw text into a strengths body (up to the next
// "missing" heading) and a gaps body (from the first "missing" heading to
// end-of-text; there is no known terminator after it, so trailing text
// leaks in by design of the expected format).
func splitSections(raw string) (strengths, gaps string) {
	if m := missingRe.FindStringIndex(raw); m != nil {
		gaps = raw[m[1]:]
	}

	if s := strengthsRe.FindStringIndex(raw); s != nil {
		body := raw[s[1]:]
		if m := missingRe.FindStringIndex(body); m != nil {
			body = body[:m[0]]
		}
		strengths = body
	}

	return strengths, gaps
}

// parseEntries turns a section body into at most maxEntries cleaned lines,
// preserving source order.
func parseEntries(section string) []string {
	entries := []string{}
	for _, line := range strings.Split(section, "\n") {
		clean := cleanLine(line)
		if utf8.RuneCountInString(clean) <= minEntryLength {
			continue
		}
		entries = append(entries, clean)
		if len(entries) == maxEntries {
			break
		}
	}
	return entries
}

// cleanLine strips bullet glyphs from the edges, collapses internal
// whitespace and trims residual punctuation.
func cleanLine(line string) string {
	clean := strings.Trim(strings.TrimSpace(line), bulletGlyphs)
	clean = whitespaceRe.ReplaceAllString(clean, " ")
	return strings.Trim(clean, " :;-")
}
