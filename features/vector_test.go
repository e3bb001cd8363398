package features

import (
	"encoding/json"

	. "gopkg.in/check.v1"
)

type VectorSuite struct{}

var _ = Suite(&VectorSuite{})

func (s *VectorSuite) TestNewVectorLengthMismatch(c *C) {
	_, err := NewVector([]string{"a", "b"}, []float64{1})
	c.Assert(err, ErrorMatches, "vector has 2 names but 1 values")
}

func (s *VectorSuite) TestVectorCopiesInput(c *C) {
	names := []string{"b", "a"}
	values := []float64{2, 1}
	v, err := NewVector(names, values)
	c.Assert(err, IsNil)
	names[0] = "z"
	values[0] = 99
	c.Assert(v.Names(), DeepEquals, []string{"b", "a"})
	c.Assert(v.Values(), DeepEquals, []float64{2, 1})

	got, ok := v.Get("a")
	c.Assert(ok, Equals, true)
	c.Assert(got, Equals, 1.0)
	_, ok = v.Get("z")
	c.Assert(ok, Equals, false)
}

func (s *VectorSuite) TestMarshalKeepsOrder(c *C) {
	v, err := NewVector([]string{"Glucose", "Age", "BMI"}, []float64{110, 30, 24.22})
	c.Assert(err, IsNil)
	data, err := json.Marshal(v)
	c.Assert(err, IsNil)
	c.Assert(string(data), Equals, `{"Glucose":110,"Age":30,"BMI":24.22}`)
}

func (s *VectorSuite) TestSchemaByName(c *C) {
	schema, err := SchemaByName("Basic")
	c.Assert(err, IsNil)
	c.Assert(schema.Equal(BasicSchema), Equals, true)
	c.Assert(schema.Equal(EngineeredSchema), Equals, false)

	_, err = SchemaByName("nope")
	c.Assert(err, ErrorMatches, `unknown feature schema "nope"`)
}

func (s *VectorSuite) TestBuiltInSchemasAreDerivable(c *C) {
	c.Assert(BasicSchema.Check(), IsNil)
	c.Assert(EngineeredSchema.Check(), IsNil)
	c.Assert(len(KnownColumns()) > len(EngineeredSchema), Equals, true)
}
