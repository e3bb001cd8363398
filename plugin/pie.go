package plugin

import (
	"time"

	"github.com/google/uuid"
)

// Pie represents the breakdown chart shown next to a risk result.  Each slice is a
// factor that went into the result, so the reader can see which measurements drove it.
type Pie struct {
	Id      string    `json:"id"`
	Slices  []Slice   `json:"slices"`
	Created time.Time `json:"created"`
}

// Slice represents a factor that contributes to the overall result.  Weight is the
// share of the pie it occupies, Value how much of it is filled for this patient.
type Slice struct {
	Name     string  `json:"name"`
	Weight   int     `json:"weight"`
	Value    float64 `json:"value"`
	MaxValue float64 `json:"maxValue,omitempty"`
}

// NewPie constructs a new pie, sets the Created time to now, and generates a new ID.
// Slices are initially empty.
func NewPie() *Pie {
	pie := &Pie{}
	pie.Created = time.Now()
	pie.Id = uuid.NewString()
	return pie
}

// NewPieWithSlices constructs a new pie holding a copy of the given slices.
func NewPieWithSlices(slices []Slice) *Pie {
	pie := NewPie()
	pie.Slices = make([]Slice, len(slices))
	copy(pie.Slices, slices)
	return pie
}

// Clone creates a copy of the pie.  If generateNewID is true, it will give
// the clone a new identity.  Slices of the clone can be modified without
// affecting the original.
func (p *Pie) Clone(generateNewID bool) *Pie {
	cloned := *p
	if generateNewID {
		cloned.Id = uuid.NewString()
	}
	cloned.Slices = make([]Slice, len(p.Slices))
	copy(cloned.Slices, p.Slices)
	return &cloned
}

// UpdateSliceValue is a convenience function that finds the slice with
// the given name and updates its value.
func (p *Pie) UpdateSliceValue(name string, value float64) {
	for i := range p.Slices {
		if p.Slices[i].Name == name {
			p.Slices[i].Value = value
			return
		}
	}
}

// SliceValue returns the value of the named slice.
func (p *Pie) SliceValue(name string) (float64, bool) {
	for i := range p.Slices {
		if p.Slices[i].Name == name {
			return p.Slices[i].Value, true
		}
	}
	return 0, false
}

// TotalValues sums up all the values in the slices.
func (p *Pie) TotalValues() float64 {
	total := 0.0
	for i := range p.Slices {
		total += p.Slices[i].Value
	}
	return total
}
