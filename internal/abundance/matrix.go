package abundance

// Value is a numeric cell that is either defined or absent. Absence
// means "no sampling data", which is distinct from an observed zero and
// must never be collapsed into one. The zero Value is undefined.
type Value struct {
	V  float64
	OK bool
}

// Defined wraps v as a defined Value.
func Defined(v float64) Value {
	return Value{V: v, OK: true}
}

// Undefined is the absent cell.
var Undefined = Value{}

// Series is a sequence of possibly-undefined values aligned to buckets,
// calendar months or years depending on context.
type Series []Value

// Matrix is a dense taxa-by-buckets accumulator. Cells only ever grow:
// the aggregation pass adds non-negative contributions and nothing
// decrements a cell afterwards.
type Matrix struct {
	taxa    int
	buckets int
	cells   []float64
}

// NewMatrix returns a zeroed taxa-by-buckets matrix.
func NewMatrix(taxa, buckets int) *Matrix {
	return &Matrix{
		taxa:    taxa,
		buckets: buckets,
		cells:   make([]float64, taxa*buckets),
	}
}

// Taxa returns the number of rows.
func (m *Matrix) Taxa() int { return m.taxa }

// Buckets returns the number of columns.
func (m *Matrix) Buckets() int { return m.buckets }

// At returns the accumulated value for one taxon and bucket.
func (m *Matrix) At(taxon, bucket int) float64 {
	return m.cells[taxon*m.buckets+bucket]
}

// Add accumulates a non-negative contribution into one cell.
func (m *Matrix) Add(taxon, bucket int, v float64) {
	if v < 0 {
		panic("abundance: negative contribution")
	}
	m.cells[taxon*m.buckets+bucket] += v
}

// Row returns a copy of one taxon's bucket row.
func (m *Matrix) Row(taxon int) []float64 {
	row := make([]float64, m.buckets)
	copy(row, m.cells[taxon*m.buckets:(taxon+1)*m.buckets])
	return row
}
