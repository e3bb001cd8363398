package features

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Vector is an ordered mapping of feature name to value.  The order is the column
// order of the schema it was built for, and is the order a scaler expects.
type Vector struct {
	names  []string
	values []float64
}

// NewVector pairs names with values.  Both slices must have the same length.
func NewVector(names []string, values []float64) (*Vector, error) {
	if len(names) != len(values) {
		return nil, fmt.Errorf("vector has %d names but %d values", len(names), len(values))
	}
	v := &Vector{names: make([]string, len(names)), values: make([]float64, len(values))}
	copy(v.names, names)
	copy(v.values, values)
	return v, nil
}

// Len returns the number of features.
func (v *Vector) Len() int { return len(v.names) }

// Names returns a copy of the feature names in order.
func (v *Vector) Names() []string {
	names := make([]string, len(v.names))
	copy(names, v.names)
	return names
}

// Values returns a copy of the feature values in order.
func (v *Vector) Values() []float64 {
	values := make([]float64, len(v.values))
	copy(values, v.values)
	return values
}

// Get returns the value of the named feature.
func (v *Vector) Get(name string) (float64, bool) {
	for i := range v.names {
		if v.names[i] == name {
			return v.values[i], true
		}
	}
	return 0, false
}

// MarshalJSON writes the vector as a JSON object whose keys keep the vector's order.
func (v *Vector) MarshalJSON() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.WriteByte('{')
	for i := range v.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(v.names[i])
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(v.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
