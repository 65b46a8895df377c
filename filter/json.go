// Copyright (C) 2020-2026, Ontograph Authors. All rights reserved.
// See the file LICENSE for licensing terms.

package filter

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON renders a Filter as a single-key tagged object, e.g.
// {"all":[{"equal":[{"path":["baseUrl"]},{"parameter":"..."}]}]}. A nil Expr side (SQL NULL)
// serializes as JSON null.
func (f Filter) MarshalJSON() ([]byte, error) {
	switch f.Kind {
	case KindAllFilter:
		return json.Marshal(map[string]any{"all": f.All})
	case KindAnyFilter:
		return json.Marshal(map[string]any{"any": f.AnyOf})
	case KindNotFilter:
		return json.Marshal(map[string]any{"not": f.Not})
	case KindEqualFilter:
		return json.Marshal(map[string]any{"equal": []any{f.Lhs, f.Rhs}})
	case KindNotEqualFilter:
		return json.Marshal(map[string]any{"notEqual": []any{f.Lhs, f.Rhs}})
	case KindInFilter:
		return json.Marshal(map[string]any{"in": []any{f.InPath, f.InList}})
	case KindStartsWithFilter:
		return json.Marshal(map[string]any{"startsWith": []any{f.Lhs, f.Rhs}})
	case KindEndsWithFilter:
		return json.Marshal(map[string]any{"endsWith": []any{f.Lhs, f.Rhs}})
	case KindContainsSegmentFilter:
		return json.Marshal(map[string]any{"containsSegment": []any{f.Lhs, f.Rhs}})
	default:
		return nil, fmt.Errorf("filter: unknown kind %d", f.Kind)
	}
}

// MarshalJSON renders an Expr as {"path": [...]} or {"parameter": <value>}. A nil *Expr
// (handled by the caller's slice, not by this method) marshals as JSON null.
func (e *Expr) MarshalJSON() ([]byte, error) {
	if e == nil {
		return []byte("null"), nil
	}
	if e.Path != nil {
		return json.Marshal(map[string]any{"path": e.Path.Segments()})
	}
	return json.Marshal(map[string]any{"parameter": e.Parameter})
}

// MarshalJSON renders a Parameter as its bare scalar value: the Kind is recovered from
// context (the path it was compared against, or Go's type switch on decode) rather than
// carried on the wire, matching how a JSON literal has no explicit type tag either.
func (p *Parameter) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	switch p.Kind {
	case KindBoolean:
		return json.Marshal(p.Bool)
	case KindNumber:
		return json.Marshal(p.Number)
	case KindText:
		return json.Marshal(p.Text)
	case KindAny:
		return json.Marshal(p.Any)
	case KindUuid:
		return json.Marshal(p.Uuid.String())
	case KindOntologyTypeVersion:
		return json.Marshal(p.Version)
	case KindTimestamp:
		return json.Marshal(p.Timestamp)
	default:
		return nil, fmt.Errorf("filter: unknown parameter kind %d", p.Kind)
	}
}

// MarshalJSON renders a ParameterList as a bare JSON array of its elements.
func (l *ParameterList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("null"), nil
	}
	strs := make([]string, len(l.UuidList))
	for i, u := range l.UuidList {
		strs[i] = u.String()
	}
	return json.Marshal(strs)
}
