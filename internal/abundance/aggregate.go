package abundance

// Visit describes one sampling period as seen by the aggregator: the
// calendar date the sample was recorded on (its end date) and the number
// of consecutive trap nights it combines.
type Visit struct {
	Year   int
	Month  int
	Day    int
	Nights int
}

// Accumulate adds one occurrence to both matrices: count individuals and
// the visit's trap nights, attributed to the month bucket of the visit's
// end date.
//
// A visit whose night count exceeds its end-date day-of-month ran into
// the previous month, so its contribution is split between the two
// buckets in proportion to the nights spent in each. The day-of-month is
// used as the count of nights falling in the end month. This is an
// approximation: a sample spanning more than one full previous month
// still splits across just two buckets, attributing the whole remainder
// to the immediately preceding month. That is the established policy and
// is kept as-is.
//
// The previous-month share is dropped when the end date falls in the
// grid's very first bucket.
func Accumulate(g Grid, individuals, nights *Matrix, taxon int, v Visit, count int) {
	b := g.Index(v.Year, v.Month)
	if v.Nights <= v.Day {
		individuals.Add(taxon, b, float64(count))
		nights.Add(taxon, b, float64(v.Nights))
		return
	}

	cur := float64(v.Day) / float64(v.Nights)
	individuals.Add(taxon, b, float64(count)*cur)
	nights.Add(taxon, b, float64(v.Nights)*cur)

	if b == 0 {
		return
	}
	prev := float64(v.Nights-v.Day) / float64(v.Nights)
	individuals.Add(taxon, b-1, float64(count)*prev)
	nights.Add(taxon, b-1, float64(v.Nights)*prev)
}
