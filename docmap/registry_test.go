// Copyright (C) The Lattica Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package docmap

import (
	check "gopkg.in/check.v1"
)

var _ = check.Suite(&registrySuite{})

type registrySuite struct{}

type shape interface {
	Type
	area() float64
}

var shapeTypes = NewRegistry[shape]("shape", "config.type")

type circle struct {
	Radius float64 `json:"radius"`
}

var circleSchema = shapeTypes.MustRegister("Circle", func() shape { return &circle{} },
	Field{Attr: "radius", Path: "config.radius", Required: true})

func (c *circle) Schema() *Schema { return circleSchema }
func (c *circle) area() float64   { return 3.14159 * c.Radius * c.Radius }

type rect struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

var rectSchema = shapeTypes.MustRegister("Rect", func() shape { return &rect{} },
	Field{Attr: "width", Path: "config.width", Required: true},
	Field{Attr: "height", Path: "config.height", Required: true})

func (r *rect) Schema() *Schema { return rectSchema }
func (r *rect) area() float64   { return r.Width * r.Height }

func (s *registrySuite) TestBuildDispatch(c *check.C) {
	obj, err := shapeTypes.Build(Document{
		"config": Document{"type": "Circle", "radius": float64(2)},
	})
	c.Assert(err, check.IsNil)
	circ, ok := obj.(*circle)
	c.Assert(ok, check.Equals, true)
	c.Check(circ.Radius, check.Equals, float64(2))

	obj, err = shapeTypes.Build(Document{
		"config": Document{"type": "Rect", "width": float64(3), "height": float64(4)},
	})
	c.Assert(err, check.IsNil)
	c.Check(obj.area(), check.Equals, float64(12))
}

func (s *registrySuite) TestUnknownTag(c *check.C) {
	_, err := shapeTypes.Build(Document{
		"config": Document{"type": "Pentagon"},
	})
	c.Assert(err, check.FitsTypeOf, &UnknownTypeError{})
	c.Check(err, check.ErrorMatches, `unknown shape type "Pentagon"`)
}

func (s *registrySuite) TestMissingDiscriminant(c *check.C) {
	for _, doc := range []Document{
		{},
		{"config": Document{}},
		{"config": Document{"type": ""}},
		{"config": Document{"type": float64(7)}},
	} {
		_, err := shapeTypes.Build(doc)
		c.Assert(err, check.FitsTypeOf, &UnknownTypeError{}, check.Commentf("%v", doc))
		c.Check(err, check.ErrorMatches, `shape document has no "config\.type" discriminant`)
	}
}

func (s *registrySuite) TestDumpStampsDiscriminant(c *check.C) {
	circ := &circle{Radius: 1.5}
	doc, err := circ.Schema().Dump(circ)
	c.Assert(err, check.IsNil)
	tag, ok := Lookup(doc, "config.type")
	c.Check(ok, check.Equals, true)
	c.Check(tag, check.Equals, "Circle")
	radius, _ := Lookup(doc, "config.radius")
	c.Check(radius, check.Equals, float64(1.5))
}

func (s *registrySuite) TestDuplicateTagPanics(c *check.C) {
	c.Check(func() {
		shapeTypes.Register("Circle", func() shape { return &circle{} })
	}, check.PanicMatches, `shape registry: duplicate tag "Circle"`)
}

func (s *registrySuite) TestMissingRequiredInMember(c *check.C) {
	_, err := shapeTypes.Build(Document{
		"config": Document{"type": "Rect", "width": float64(3)},
	})
	c.Assert(err, check.FitsTypeOf, &MissingFieldError{})
	c.Check(err.(*MissingFieldError).Attr, check.Equals, "height")
}

func (s *registrySuite) TestListRoundTrip(c *check.C) {
	items, err := shapeTypes.UnmarshalList([]byte(`[
		{"config": {"type": "Circle", "radius": 1}},
		{"config": {"type": "Rect", "width": 2, "height": 5}}
	]`))
	c.Assert(err, check.IsNil)
	c.Assert(items, check.HasLen, 2)
	c.Check(items[0], check.FitsTypeOf, &circle{})
	c.Check(items[1].area(), check.Equals, float64(10))

	buf, err := shapeTypes.MarshalList(items)
	c.Assert(err, check.IsNil)
	reparsed, err := shapeTypes.UnmarshalList(buf)
	c.Assert(err, check.IsNil)
	c.Check(reparsed[1].area(), check.Equals, float64(10))
}

func (s *registrySuite) TestUnmarshalListBadElement(c *check.C) {
	_, err := shapeTypes.UnmarshalList([]byte(`[{"config": {"radius": 1}}]`))
	c.Check(err, check.FitsTypeOf, &UnknownTypeError{})
}
