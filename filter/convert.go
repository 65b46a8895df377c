// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package filter

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/ontograph/ontograph/ontids"
)

// ParameterConversionError is returned when a parameter's actual kind cannot be coerced into
// a path's expected type. It carries both sides so a caller can report a useful message
// without re-deriving them.
type ParameterConversionError struct {
	Actual   ParamKind
	Expected ParamType
}

func (e *ParameterConversionError) Error() string {
	return fmt.Sprintf("filter: cannot convert parameter of kind %d to %s", e.Actual, e.Expected)
}

// ConvertParameters walks f and coerces every Parameter leaf to the expected type of the
// path it is compared against. It performs no backend round-trip: a path's expected type is
// known statically from the QueryPath it carries, so the whole tree can be typed in one pure
// pass before any query executes.
func ConvertParameters(f Filter) (Filter, error) {
	switch f.Kind {
	case KindAllFilter:
		out := make([]Filter, len(f.All))
		for i, sub := range f.All {
			converted, err := ConvertParameters(sub)
			if err != nil {
				return Filter{}, err
			}
			out[i] = converted
		}
		f.All = out
		return f, nil
	case KindAnyFilter:
		out := make([]Filter, len(f.AnyOf))
		for i, sub := range f.AnyOf {
			converted, err := ConvertParameters(sub)
			if err != nil {
				return Filter{}, err
			}
			out[i] = converted
		}
		f.AnyOf = out
		return f, nil
	case KindNotFilter:
		converted, err := ConvertParameters(*f.Not)
		if err != nil {
			return Filter{}, err
		}
		f.Not = &converted
		return f, nil
	case KindEqualFilter, KindNotEqualFilter:
		lhs, rhs, err := convertPair(f.Lhs, f.Rhs)
		if err != nil {
			return Filter{}, err
		}
		f.Lhs, f.Rhs = lhs, rhs
		return f, nil
	case KindStartsWithFilter, KindEndsWithFilter, KindContainsSegmentFilter:
		lhs, err := convertSide(f.Lhs, Text)
		if err != nil {
			return Filter{}, err
		}
		rhs, err := convertSide(f.Rhs, Text)
		if err != nil {
			return Filter{}, err
		}
		f.Lhs, f.Rhs = lhs, rhs
		return f, nil
	case KindInFilter:
		if f.InPath != nil && f.InPath.Path != nil {
			expected := f.InPath.Path.ExpectedType()
			if expected != Uuid && expected != Any {
				return Filter{}, &ParameterConversionError{Actual: KindUuid, Expected: expected}
			}
		}
		return f, nil
	default:
		return f, nil
	}
}

// convertPair coerces whichever side of Equal/NotEqual carries a bare parameter against the
// other side's path, leaving path-vs-path and literal-vs-literal comparisons untouched.
func convertPair(lhs, rhs *Expr) (*Expr, *Expr, error) {
	switch {
	case lhs != nil && lhs.Parameter != nil && rhs != nil && rhs.Path != nil:
		converted, err := convertSide(lhs, rhs.Path.ExpectedType())
		return converted, rhs, err
	case rhs != nil && rhs.Parameter != nil && lhs != nil && lhs.Path != nil:
		converted, err := convertSide(rhs, lhs.Path.ExpectedType())
		return lhs, converted, err
	default:
		return lhs, rhs, nil
	}
}

func convertSide(e *Expr, target ParamType) (*Expr, error) {
	if e == nil || e.Parameter == nil {
		return e, nil
	}
	converted, err := convertParameter(*e.Parameter, target)
	if err != nil {
		return nil, err
	}
	return &Expr{Parameter: &converted}, nil
}

// convertParameter applies the coercion rule table: identical kinds pass through unchanged;
// Any(json) unwraps to or wraps from a concrete kind; Number narrows to OntologyTypeVersion
// (rejecting negative or overflowing values); the string "latest" is recognized but kept as
// text rather than becoming a concrete version; and Text parses into Uuid, BaseUrl, or
// VersionedUrl. Anything else is a ParameterConversionError.
func convertParameter(p Parameter, target ParamType) (Parameter, error) {
	if paramTypeOf(p.Kind) == target || target == Any {
		if target == Any && p.Kind != KindAny {
			return wrapAny(p), nil
		}
		return p, nil
	}

	switch {
	case p.Kind == KindAny && target == Boolean:
		if b, ok := p.Any.(bool); ok {
			return BoolParam(b), nil
		}
	case p.Kind == KindAny && target == Number:
		if n, ok := asInt64(p.Any); ok {
			return narrowToNumber(n)
		}
	case p.Kind == KindAny && target == Text:
		if s, ok := p.Any.(string); ok {
			return TextParam(s), nil
		}
	case p.Kind == KindNumber && target == Number:
		return p, nil
	case p.Kind == KindNumber && target == OntologyTypeVersion:
		return narrowToVersion(int64(p.Number))
	case p.Kind == KindAny && target == OntologyTypeVersion:
		if n, ok := asInt64(p.Any); ok {
			return narrowToVersion(n)
		}
	case p.Kind == KindText && p.Text == ontids.LatestVersion && target == OntologyTypeVersion:
		return p, nil
	case p.Kind == KindText && target == Uuid:
		id, err := uuid.Parse(p.Text)
		if err != nil {
			break
		}
		return UuidParam(id), nil
	case p.Kind == KindText && target == BaseUrl:
		if _, err := ontids.ParseBaseUrl(p.Text); err != nil {
			break
		}
		return p, nil
	case p.Kind == KindText && target == VersionedUrl:
		if _, err := ontids.ParseVersionedUrl(p.Text); err != nil {
			break
		}
		return p, nil
	}

	return Parameter{}, &ParameterConversionError{Actual: p.Kind, Expected: target}
}

func paramTypeOf(k ParamKind) ParamType {
	switch k {
	case KindBoolean:
		return Boolean
	case KindNumber:
		return Number
	case KindText:
		return Text
	case KindAny:
		return Any
	case KindUuid:
		return Uuid
	case KindOntologyTypeVersion:
		return OntologyTypeVersion
	case KindTimestamp:
		return Timestamp
	default:
		return Any
	}
}

func wrapAny(p Parameter) Parameter {
	switch p.Kind {
	case KindBoolean:
		return AnyParam(p.Bool)
	case KindNumber:
		return AnyParam(p.Number)
	case KindText:
		return AnyParam(p.Text)
	case KindUuid:
		return AnyParam(p.Uuid.String())
	case KindOntologyTypeVersion:
		return AnyParam(p.Version)
	case KindTimestamp:
		return AnyParam(p.Timestamp)
	default:
		return p
	}
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

func narrowToNumber(v int64) (Parameter, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return Parameter{}, &ParameterConversionError{Actual: KindAny, Expected: Number}
	}
	return NumberParam(int32(v)), nil
}

func narrowToVersion(v int64) (Parameter, error) {
	if v < 0 || v > math.MaxUint32 {
		return Parameter{}, &ParameterConversionError{Actual: KindNumber, Expected: OntologyTypeVersion}
	}
	return VersionParam(uint32(v)), nil
}
