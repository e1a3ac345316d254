// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package compositor

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Edge names one side of a box.
type Edge int

// Box edges, in the order they are stored.
const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// Edges lists all four edges.
var Edges = [4]Edge{EdgeTop, EdgeRight, EdgeBottom, EdgeLeft}

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	default:
		return fmt.Sprintf("Edge(%d)", int(e))
	}
}

func (e Edge) valid() bool { return e >= EdgeTop && e <= EdgeLeft }

// LengthType is the type of a host style length.
type LengthType int

// Host length types. Types other than percent, fixed, auto and calculated
// (intrinsic sizes, for example) classify as undefined.
const (
	LengthTypeAuto LengthType = iota
	LengthTypePercent
	LengthTypeFixed
	LengthTypeCalculated
	LengthTypeIntrinsic
	LengthTypeMinContent
	LengthTypeMaxContent
	LengthTypeFillAvailable
	LengthTypeFitContent
)

// Calculation is a calc() expression that resolves against a containing size.
type Calculation interface {
	Evaluate(maxValue float32) float32
}

// CalculationFunc adapts a function to Calculation.
type CalculationFunc func(maxValue float32) float32

// Evaluate calls f.
func (f CalculationFunc) Evaluate(maxValue float32) float32 { return f(maxValue) }

// Length is a resolved style length as reported by the host.
type Length struct {
	Type  LengthType
	Value float32
	Calc  Calculation
}

// Auto returns an auto length.
func Auto() Length { return Length{Type: LengthTypeAuto} }

// Percent returns a percentage length; v is in percent (50 means half).
func Percent(v float32) Length { return Length{Type: LengthTypePercent, Value: v} }

// Fixed returns a length in CSS pixels.
func Fixed(v float32) Length { return Length{Type: LengthTypeFixed, Value: v} }

// Calculated returns a calc() length.
func Calculated(c Calculation) Length { return Length{Type: LengthTypeCalculated, Calc: c} }

// LengthKind classifies a stored edge value.
type LengthKind int

// Edge value kinds. The zero value is LengthUndefined.
const (
	LengthUndefined LengthKind = iota
	LengthPercent
	LengthFixed
	LengthCalculated
)

func (k LengthKind) String() string {
	switch k {
	case LengthUndefined:
		return "undefined"
	case LengthPercent:
		return "percent"
	case LengthFixed:
		return "fixed"
	case LengthCalculated:
		return "calculated"
	default:
		return fmt.Sprintf("LengthKind(%d)", int(k))
	}
}

// EdgeValue is a classified edge length.
type EdgeValue struct {
	Kind  LengthKind
	Value float32
}

// Defined reports whether the value is anything but undefined.
func (v EdgeValue) Defined() bool { return v.Kind != LengthUndefined }

// Resolve converts v to pixels. Percentages resolve against base and
// ignore zoom; fixed and calculated values are multiplied by zoom.
// Undefined values resolve to zero.
func (v EdgeValue) Resolve(base, zoom float32) float32 {
	switch v.Kind {
	case LengthPercent:
		return v.Value * base / 100
	case LengthFixed, LengthCalculated:
		return v.Value * zoom
	default:
		return 0
	}
}

func (v EdgeValue) String() string {
	switch v.Kind {
	case LengthUndefined:
		return "undefined"
	case LengthPercent:
		return fmt.Sprintf("%g%%", v.Value)
	case LengthCalculated:
		return fmt.Sprintf("calc(%g)", v.Value)
	default:
		return fmt.Sprintf("%gpx", v.Value)
	}
}

// Classify converts a host length into an edge value.
//
// Calculated lengths are evaluated once against the largest representable
// containing size, because the true containing size is not known when
// layers are flushed.
func Classify(l Length) EdgeValue {
	switch l.Type {
	case LengthTypePercent:
		return EdgeValue{Kind: LengthPercent, Value: l.Value}
	case LengthTypeFixed:
		return EdgeValue{Kind: LengthFixed, Value: l.Value}
	case LengthTypeCalculated:
		if l.Calc == nil {
			return EdgeValue{}
		}
		return EdgeValue{Kind: LengthCalculated, Value: l.Calc.Evaluate(math32.MaxFloat32)}
	default:
		return EdgeValue{}
	}
}
