package mode

import "iter"

// Tuple bounds one dimension of a row. Span and Shift are the
// row-major addressing coefficients: an element's offset is the sum
// over the dimensions of sub*Span - Shift.
type Tuple struct {
	Lwb, Upb    int
	Span, Shift int
}

// Extent returns the number of index values of the dimension.
func (t Tuple) Extent() int {
	if t.Upb < t.Lwb {
		return 0
	}

	return t.Upb - t.Lwb + 1
}

// Row is a multidimensional row value. Elements live in row-major
// order; an empty row has no elements.
type Row struct {
	Elem   *Mode
	Tuples []Tuple
	Elems  []Value
	Flex   bool
}

// NewRow builds a row of elem with the given {lwb, upb} bounds, one
// pair per dimension. Every element starts uninitialised.
func NewRow(elem *Mode, bounds ...[2]int) *Row {
	if len(bounds) == 0 {
		bounds = [][2]int{{1, 0}}
	}

	tuples := make([]Tuple, len(bounds))
	span := 1
	for d := len(bounds) - 1; d >= 0; d-- {
		t := Tuple{Lwb: bounds[d][0], Upb: bounds[d][1], Span: span}
		t.Shift = t.Lwb * t.Span
		tuples[d] = t
		span *= t.Extent()
	}

	elems := make([]Value, span)
	for n := range elems {
		elems[n] = Empty(elem)
	}

	return &Row{Elem: elem, Tuples: tuples, Elems: elems}
}

// CharRow builds a one dimensional row of CHAR, lower bound 1, holding
// the characters of s.
func CharRow(s string) *Row {
	runes := []rune(s)
	row := NewRow(CHAR, [2]int{1, len(runes)})
	for n, c := range runes {
		row.Elems[n] = CharValue(c)
	}

	return row
}

// Len returns the total number of elements.
func (r *Row) Len() int {
	return len(r.Elems)
}

// At resolves a subscript list to its element. The number of
// subscripts must match the number of dimensions and each must lie
// within its bounds.
func (r *Row) At(subs ...int) *Value {
	offset := 0
	for d, t := range r.Tuples {
		offset += subs[d]*t.Span - t.Shift
	}

	return &r.Elems[offset]
}

// All ranges over the elements in row-major order.
func (r *Row) All() iter.Seq[*Value] {
	return func(yield func(*Value) bool) {
		for n := range r.Elems {
			if !yield(&r.Elems[n]) {
				return
			}
		}
	}
}

// String assembles a row of CHAR back into a string.
func (r *Row) String() string {
	runes := make([]rune, 0, len(r.Elems))
	for n := range r.Elems {
		if c, ok := r.Elems[n].Data.(rune); ok {
			runes = append(runes, c)
		}
	}

	return string(runes)
}

// Structure is a structured value; Fields holds one value per field of
// the descriptor, in declaration order.
type Structure struct {
	Mode   *Mode
	Fields []Value
}

// NewStructure builds a structure of mode m with every field
// uninitialised.
func NewStructure(m *Mode) *Structure {
	fields := make([]Value, len(m.Fields))
	for n, field := range m.Fields {
		fields[n] = Empty(field.Mode)
	}

	return &Structure{Mode: m, Fields: fields}
}

// United is a united value: the actual value and, through it, the
// actual mode.
type United struct {
	Value *Value
}
