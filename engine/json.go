package engine

import (
	"encoding/json"
)

func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (ev Event) MarshalJSON() ([]byte, error) {
	m := map[string]interface{}{
		"QueryID": ev.QueryID,
		"Kind":    ev.Kind,
		"Step":    ev.Step,
		"Depth":   ev.Depth,
		"Goal":    ev.Goal,
	}
	if ev.Key != "" {
		m["Key"] = ev.Key
	}
	if ev.Clause != nil {
		m["Clause"] = ev.Clause
	}
	if ev.Err != nil {
		m["Err"] = ev.Err.Error()
	}
	return json.Marshal(m)
}

func (ctx *QueryContext) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"Symbols": ctx.Symbols,
		"Heap":    ctx.Heap,
		"Frames":  ctx.Frames,
	})
}
