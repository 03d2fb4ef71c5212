package contacts

import (
	"strings"
	"unicode"

	"jobhunt-contacts/internal/classify"
	"jobhunt-contacts/internal/domain"
)

// SplitEmail splits at the first "@". domain is empty when there is none.
func SplitEmail(email string) (local, domain string) {
	local, domain, _ = strings.Cut(email, "@")
	return local, domain
}

// CompanyName derives a display name from the first label of the domain:
// "hr@abc-tech.co.in" -> "Abc Tech".
func CompanyName(email string) string {
	_, dom := SplitEmail(email)
	label, _, _ := strings.Cut(dom, ".")
	return TitleCase(strings.ReplaceAll(label, "-", " "))
}

// Website is the https URL of the address's domain.
func Website(email string) string {
	_, dom := SplitEmail(email)
	return "https://" + dom
}

// TitleCase upper-cases the first cased letter of every word and lower-cases the
// rest, where a word is a run of cased letters. "3m labs" -> "3M Labs",
// "ACME" -> "Acme".
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevCased := false
	for _, r := range s {
		cased := unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
		switch {
		case cased && prevCased:
			b.WriteRune(unicode.ToLower(r))
		case cased:
			b.WriteRune(unicode.ToTitle(r))
		default:
			b.WriteRune(r)
		}
		prevCased = cased
	}
	return b.String()
}

// BuildRecord derives the full row for one address.
func BuildRecord(email string, d domain.Defaults, c classify.Classifier) domain.ContactRecord {
	local, _ := SplitEmail(email)
	return domain.ContactRecord{
		Email:          email,
		CompanyName:    CompanyName(email),
		HRName:         c.Classify(local),
		Position:       d.Position,
		Industry:       d.Industry,
		CompanyType:    d.CompanyType,
		Location:       d.Location,
		CompanyWebsite: Website(email),
	}
}
