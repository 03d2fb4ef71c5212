package contacts

import (
	"regexp"
)

// reEmail is local@domain.tld where local and domain are word characters, dots or
// hyphens and the tld is word characters. Word characters are Unicode letters,
// digits and underscore.
var reEmail = regexp.MustCompile(`[\p{L}\p{N}_.-]+@[\p{L}\p{N}_.-]+\.[\p{L}\p{N}_]+`)

// Match is one address found in the source text.
type Match struct {
	Email  string
	Offset int // byte offset in the scanned text
}

// ExtractMatches returns every address in text, left to right, duplicates included.
func ExtractMatches(text string) []Match {
	locs := reEmail.FindAllStringIndex(text, -1)
	out := make([]Match, 0, len(locs))
	for _, l := range locs {
		out = append(out, Match{Email: text[l[0]:l[1]], Offset: l[0]})
	}
	return out
}

// ExtractEmails returns every address in text, left to right, duplicates included.
func ExtractEmails(text string) []string {
	return reEmail.FindAllString(text, -1)
}

// Unique keeps the first occurrence of each exact string. No case folding.
func Unique(emails []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	return out
}

// UniqueMatches is Unique for matches; the surviving Offset is the first occurrence.
func UniqueMatches(matches []Match) []Match {
	seen := map[string]bool{}
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if !seen[m.Email] {
			seen[m.Email] = true
			out = append(out, m)
		}
	}
	return out
}
