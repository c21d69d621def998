// Package scoring holds the pure score-derivation logic: letter ratings and
// the packed musicbar encoding.
package scoring

// Rating is the letter grade derived from a numeric score.
type Rating string

const (
	RatingEXC  Rating = "exc"
	RatingSSS  Rating = "sss"
	RatingSS   Rating = "ss"
	RatingS    Rating = "s"
	RatingA    Rating = "a"
	RatingB    Rating = "b"
	RatingC    Rating = "c"
	RatingD    Rating = "d"
	RatingE    Rating = "e"
	RatingNone Rating = ""
)

// Ratings lists all ratings from best to worst.
var Ratings = []Rating{
	RatingEXC, RatingSSS, RatingSS, RatingS, RatingA,
	RatingB, RatingC, RatingD, RatingE, RatingNone,
}

// RatingForScore maps a numeric score to its letter rating. Thresholds are
// inclusive lower bounds evaluated highest-first.
func RatingForScore(score int) Rating {
	switch {
	case score >= 1000000:
		return RatingEXC
	case score >= 980000:
		return RatingSSS
	case score >= 950000:
		return RatingSS
	case score >= 900000:
		return RatingS
	case score >= 850000:
		return RatingA
	case score >= 800000:
		return RatingB
	case score >= 700000:
		return RatingC
	case score >= 500000:
		return RatingD
	case score > 0:
		return RatingE
	default:
		return RatingNone
	}
}
