package extract

import "slices"

var headingStopWords = []string{
	"&", "a", "an", "and", "for", "from", "in", "into", "new", "of", "on",
	"out", "some", "the", "to", "up", "why", "with",
}

var bodyStopWords = []string{
	"+", "->", "[x]", "all", "are", "as", "be", "but", "by", "can", "did", "do",
	"end", "is", "it", "logbook", "more", "no", "not", "now", "or", "that",
	"this", "until", "use", "using", "was", "when", "will",
}

// DefaultExclude returns the built-in stop items for a domain.
// Tags have none; body words extend the heading list.
func DefaultExclude(d Domain) []string {
	switch d {
	case DomainHeading:
		return slices.Clone(headingStopWords)
	case DomainBody:
		return append(slices.Clone(headingStopWords), bodyStopWords...)
	default:
		return nil
	}
}
