// Copyright 2026 The Chromium Authors
// Use of this source code is governed by a BSD-style license that can be
// found in the LICENSE file.

package axml

import (
	"fmt"
	"math"
	"strconv"
)

// ValueType is the data type of a typed value (Res_value.dataType).
type ValueType uint8

// Value types.
const (
	TypeNull             ValueType = 0x00
	TypeReference        ValueType = 0x01
	TypeAttribute        ValueType = 0x02
	TypeString           ValueType = 0x03
	TypeFloat            ValueType = 0x04
	TypeDimension        ValueType = 0x05
	TypeFraction         ValueType = 0x06
	TypeDynamicReference ValueType = 0x07
	TypeIntDec           ValueType = 0x10
	TypeIntHex           ValueType = 0x11
	TypeIntBoolean       ValueType = 0x12
	TypeIntColorARGB8    ValueType = 0x1c
	TypeIntColorRGB8     ValueType = 0x1d
	TypeIntColorARGB4    ValueType = 0x1e
	TypeIntColorRGB4     ValueType = 0x1f
)

// Value is a typed value.
type Value struct {
	Type ValueType
	Data uint32

	// Str is set for TypeString.
	Str string
}

var (
	dimensionUnits = [...]string{"px", "dp", "sp", "pt", "in", "mm"}
	fractionUnits  = [...]string{"%", "%p"}
	radixMults     = [...]float64{
		1.0 / (1 << 8),
		1.0 / (1 << 15),
		1.0 / (1 << 23),
		1.0 / (1 << 31),
	}
)

// complexToFloat converts complex data (dimension or fraction) to float.
func complexToFloat(data uint32) float64 {
	mantissa := int32(data & 0xFFFFFF00)
	return float64(mantissa) * radixMults[(data>>4)&0x3]
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 32)
}

// Bool returns boolean value. Android treats any non-zero data as true.
func (v Value) Bool() bool {
	return v.Data != 0
}

// Int returns data as signed integer.
func (v Value) Int() int32 {
	return int32(v.Data)
}

// String formats the value in the manner of aapt.
func (v Value) String() string {
	switch v.Type {
	case TypeNull:
		if v.Data == 1 {
			return "@empty"
		}
		return ""
	case TypeReference, TypeDynamicReference:
		if v.Data == 0 {
			return "@null"
		}
		return fmt.Sprintf("@0x%08x", v.Data)
	case TypeAttribute:
		return fmt.Sprintf("?0x%08x", v.Data)
	case TypeString:
		return v.Str
	case TypeFloat:
		return formatFloat(float64(math.Float32frombits(v.Data)))
	case TypeDimension:
		unit := v.Data & 0xF
		if int(unit) >= len(dimensionUnits) {
			return fmt.Sprintf("0x%08x", v.Data)
		}
		return formatFloat(complexToFloat(v.Data)) + dimensionUnits[unit]
	case TypeFraction:
		unit := v.Data & 0xF
		if int(unit) >= len(fractionUnits) {
			return fmt.Sprintf("0x%08x", v.Data)
		}
		return formatFloat(complexToFloat(v.Data)*100) + fractionUnits[unit]
	case TypeIntDec:
		return strconv.FormatInt(int64(int32(v.Data)), 10)
	case TypeIntHex:
		return fmt.Sprintf("0x%x", v.Data)
	case TypeIntBoolean:
		return strconv.FormatBool(v.Bool())
	case TypeIntColorARGB8, TypeIntColorRGB8, TypeIntColorARGB4, TypeIntColorRGB4:
		return fmt.Sprintf("#%08x", v.Data)
	}
	return fmt.Sprintf("0x%08x", v.Data)
}

func readValue(r *reader) Value {
	// size is always 8 in practice, and aapt ignores it.
	r.Uint16("value.size")
	r.Uint8("value.res0")
	t := ValueType(r.Uint8("value.dataType"))
	data := r.Uint32("value.data")
	return Value{Type: t, Data: data}
}
