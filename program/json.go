package program

import (
	"encoding/json"
)

func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (c *Clause) MarshalJSON() ([]byte, error) {
	goalAddrs := c.GoalAddrs
	if goalAddrs == nil {
		goalAddrs = []int{}
	}
	return json.Marshal(map[string]interface{}{
		"Key":       c.Key,
		"BaseAddr":  c.BaseAddr,
		"Len":       c.Len,
		"HeadAddr":  c.HeadAddr,
		"NeckAddr":  c.NeckAddr,
		"GoalAddrs": goalAddrs,
		"Xs":        c.Xs,
	})
}

func (p *Program) MarshalJSON() ([]byte, error) {
	clauses := make([]interface{}, len(p.Keys))
	for i, key := range p.Keys {
		clauses[i] = map[string]interface{}{
			"Key":     key,
			"Clauses": p.Clauses[key],
		}
	}
	return json.Marshal(map[string]interface{}{
		"Cells":   p.Cells,
		"Symbols": p.Symbols,
		"Clauses": clauses,
	})
}
