package model

import "gonum.org/v1/gonum/floats"

// Row arithmetic covers the variable cells and the RHS cell of a row. The
// objective marker and the basis index are not part of the linear algebra
// and are left untouched in the destination row.

// AddScaledRowInto computes dest = source*scalar + target.
func (t *Tableau) AddScaledRowInto(scalar float64, source, target, dest int) {
	d := t.data.RawRowView(dest)
	z := d[t.ZColumn()]
	floats.AddScaledTo(d, t.data.RawRowView(target), scalar, t.data.RawRowView(source))
	d[t.ZColumn()] = z
}

// ScaleRow computes row = row*scalar.
func (t *Tableau) ScaleRow(scalar float64, row int) {
	d := t.data.RawRowView(row)
	z := d[t.ZColumn()]
	floats.Scale(scalar, d)
	d[t.ZColumn()] = z
}

// AddRows computes dest = x + y.
func (t *Tableau) AddRows(x, y, dest int) {
	d := t.data.RawRowView(dest)
	z := d[t.ZColumn()]
	floats.AddTo(d, t.data.RawRowView(x), t.data.RawRowView(y))
	d[t.ZColumn()] = z
}

// SubtractRows computes dest = x - y.
func (t *Tableau) SubtractRows(x, y, dest int) {
	d := t.data.RawRowView(dest)
	z := d[t.ZColumn()]
	floats.SubTo(d, t.data.RawRowView(x), t.data.RawRowView(y))
	d[t.ZColumn()] = z
}
