package abundance

// Derived holds the mean-individuals-per-night series computed from the
// two accumulation matrices. All three are read-only once built.
type Derived struct {
	// PerNight is taxa × buckets; a cell is undefined where no nights
	// were sampled.
	PerNight []Series
	// Monthly is taxa × 12 calendar months, each cell the mean of that
	// month's defined PerNight cells across years.
	Monthly []Series
	// Annual is taxa × years, defined only for years with all twelve
	// monthly values present.
	Annual []Series
}

// Means derives per-night, monthly and annual mean series from the
// individuals and nights matrices. It is a pure function: the matrices
// are not modified and repeated calls yield identical output.
func Means(g Grid, individuals, nights *Matrix) *Derived {
	taxa := individuals.Taxa()
	d := &Derived{
		PerNight: make([]Series, taxa),
		Monthly:  make([]Series, taxa),
		Annual:   make([]Series, taxa),
	}
	for t := 0; t < taxa; t++ {
		d.PerNight[t] = perNightRow(individuals, nights, t)
		d.Monthly[t] = monthlyRow(g, d.PerNight[t])
		d.Annual[t] = annualRow(g, d.PerNight[t])
	}
	return d
}

// perNightRow divides individuals by sampling nights per bucket. A
// bucket with zero nights has no data, not a zero mean.
func perNightRow(individuals, nights *Matrix, taxon int) Series {
	row := make(Series, individuals.Buckets())
	for b := range row {
		if n := nights.At(taxon, b); n > 0 {
			row[b] = Defined(individuals.At(taxon, b) / n)
		}
	}
	return row
}

// monthlyRow averages each calendar month across years, counting only
// years where the month has data.
func monthlyRow(g Grid, perNight Series) Series {
	row := make(Series, 12)
	for m := 0; m < 12; m++ {
		var sum float64
		var n int
		for y := 0; y < g.Years(); y++ {
			if v := perNight[y*12+m]; v.OK {
				sum += v.V
				n++
			}
		}
		if n > 0 {
			row[m] = Defined(sum / float64(n))
		}
	}
	return row
}

// annualRow averages the twelve monthly per-night means of each year.
// Partial-year coverage would bias the estimate, so a year missing any
// month stays undefined.
func annualRow(g Grid, perNight Series) Series {
	row := make(Series, g.Years())
	for y := range row {
		var sum float64
		complete := true
		for m := 0; m < 12; m++ {
			v := perNight[y*12+m]
			if !v.OK {
				complete = false
				break
			}
			sum += v.V
		}
		if complete {
			row[y] = Defined(sum / 12)
		}
	}
	return row
}
