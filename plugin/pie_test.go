package plugin

import (
	"time"

	. "gopkg.in/check.v1"
)

type PieSuite struct {
	Pie *Pie
}

var _ = Suite(&PieSuite{})

func (p *PieSuite) SetUpTest(c *C) {
	p.Pie = NewPie()
	p.Pie.Slices = []Slice{
		{Name: "Glucose", Weight: 40, MaxValue: 80, Value: 44},
		{Name: "Age", Weight: 60, MaxValue: 20, Value: 6},
	}
}

func (p *PieSuite) TestNewPie(c *C) {
	pie := NewPie()
	c.Assert(pie.Id, Not(Equals), "")
	c.Assert(time.Since(pie.Created) < (1*time.Second), Equals, true)
	c.Assert(pie.Slices, HasLen, 0)
	c.Assert(pie.TotalValues(), Equals, 0.0)
	c.Assert(NewPie().Id, Not(Equals), pie.Id)
}

func (p *PieSuite) TestNewPieWithSlices(c *C) {
	defaults := []Slice{{Name: "BMI", Weight: 20, MaxValue: 10}}
	pie := NewPieWithSlices(defaults)
	pie.UpdateSliceValue("BMI", 4.5)
	c.Assert(pie.Slices[0].Value, Equals, 4.5)
	c.Assert(defaults[0].Value, Equals, 0.0)
}

func (p *PieSuite) TestTotalValues(c *C) {
	c.Assert(p.Pie.TotalValues(), Equals, 50.0)
}

func (p *PieSuite) TestUpdateSliceValue(c *C) {
	p.Pie.UpdateSliceValue("Age", 10)
	c.Assert(p.Pie.Slices, DeepEquals, []Slice{
		{Name: "Glucose", Weight: 40, MaxValue: 80, Value: 44},
		{Name: "Age", Weight: 60, MaxValue: 20, Value: 10},
	})
	c.Assert(p.Pie.TotalValues(), Equals, 54.0)

	v, ok := p.Pie.SliceValue("Age")
	c.Assert(ok, Equals, true)
	c.Assert(v, Equals, 10.0)
	_, ok = p.Pie.SliceValue("Cherry")
	c.Assert(ok, Equals, false)

	// unknown names are ignored
	p.Pie.UpdateSliceValue("Cherry", 3)
	c.Assert(p.Pie.TotalValues(), Equals, 54.0)
}

func (p *PieSuite) TestPieClone(c *C) {
	// Test initial clone
	clone := p.Pie.Clone(true)
	c.Assert(clone, Not(Equals), p.Pie)
	c.Assert(clone.Id, Not(Equals), p.Pie.Id)
	c.Assert(clone.Created, Equals, p.Pie.Created)
	c.Assert(&clone.Slices, Not(Equals), &p.Pie.Slices)
	c.Assert(clone.Slices, DeepEquals, p.Pie.Slices)

	// Modify clone and make sure it doesn't affect original
	clone.UpdateSliceValue("Age", 2)
	c.Assert(clone.Slices[1].Value, Equals, 2.0)
	c.Assert(p.Pie.Slices[1].Value, Equals, 6.0)
}

func (p *PieSuite) TestPieCloneSameID(c *C) {
	clone := p.Pie.Clone(false)
	c.Assert(clone.Id, Equals, p.Pie.Id)
}
