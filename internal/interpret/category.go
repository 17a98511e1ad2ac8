package interpret

import "slices"

// RatingCategory is the classification returned by the service.
type RatingCategory string

const (
	Poor      RatingCategory = "Poor"
	Average   RatingCategory = "Average"
	Good      RatingCategory = "Good"
	Excellent RatingCategory = "Excellent"
)

// Categories lists the classes from worst to best.
var Categories = []RatingCategory{Poor, Average, Good, Excellent}

func (c RatingCategory) Valid() bool { return slices.Contains(Categories, c) }

// Icon is the marker shown next to the category.
func (c RatingCategory) Icon() string {
	switch c {
	case Poor:
		return "🔴"
	case Average:
		return "🟡"
	case Good:
		return "🟢"
	case Excellent:
		return "🌟"
	default:
		return "⚪"
	}
}

// Band describes the average-rating range a category stands for.
func (c RatingCategory) Band() string {
	switch c {
	case Poor:
		return "rating < 4"
	case Average:
		return "rating 4-6"
	case Good:
		return "rating 6-8"
	case Excellent:
		return "rating > 8"
	default:
		return ""
	}
}

// CategoryForRating maps an average rating onto its band: 4.0 and 6.0 open
// the Average and Good bands, 8.0 still counts as Good.
func CategoryForRating(rating float64) RatingCategory {
	switch {
	case rating < 4:
		return Poor
	case rating < 6:
		return Average
	case rating <= 8:
		return Good
	default:
		return Excellent
	}
}
