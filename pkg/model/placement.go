package model

// Field names a placement coordinate.
type Field struct {
	Name  string
	Value *int
}

// Coordinates returns all coordinate fields in their required order:
// outer_start <= start <= inner_start <= inner_stop <= stop <= outer_stop.
func (p Placement) Coordinates() []Field {
	return []Field{
		{"outer_start", p.OuterStart},
		{"start", p.Start},
		{"inner_start", p.InnerStart},
		{"inner_stop", p.InnerStop},
		{"stop", p.Stop},
		{"outer_stop", p.OuterStop},
	}
}

// MinStart returns the smallest of the present start-like fields.
func (p Placement) MinStart() (int, bool) {
	return extreme([]*int{p.OuterStart, p.Start, p.InnerStart}, false)
}

// MaxStop returns the largest of the present stop-like fields.
func (p Placement) MaxStop() (int, bool) {
	return extreme([]*int{p.InnerStop, p.Stop, p.OuterStop}, true)
}

// Envelope returns the outermost interval covered by the placement.
func (p Placement) Envelope() (start, stop int, ok bool) {
	start, okStart := p.MinStart()
	stop, okStop := p.MaxStop()
	return start, stop, okStart && okStop
}

// HasCoordinates reports whether any coordinate field is set.
func (p Placement) HasCoordinates() bool {
	for _, f := range p.Coordinates() {
		if f.Value != nil {
			return true
		}
	}
	return false
}

func extreme(vals []*int, wantMax bool) (int, bool) {
	var res int
	var found bool
	for _, v := range vals {
		if v == nil {
			continue
		}
		if !found || (wantMax && *v > res) || (!wantMax && *v < res) {
			res = *v
			found = true
		}
	}
	return res, found
}
