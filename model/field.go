package model

// Field is one extracted demographic field. Name is always set and comes from
// the country's fixed schema; Value, Polygon and Score are nil when the field
// could not be resolved. A nil Value always implies nil Polygon and Score;
// there is no orphan metadata.
type Field struct {
	Name    string   `json:"name"`
	Value   *string  `json:"value"`
	Polygon *Polygon `json:"coordinates"`
	Score   *float64 `json:"score"`
}

// NullField returns an unresolved field for the given schema name.
func NullField(name string) Field {
	return Field{Name: name}
}

// NewField returns a resolved field. An empty value yields a null field so
// the no-orphan-metadata invariant holds by construction.
func NewField(name, value string, polygon *Polygon, score float64) Field {
	if value == "" {
		return NullField(name)
	}
	s := score
	return Field{Name: name, Value: &value, Polygon: polygon, Score: &s}
}

// NullFields returns one unresolved field per schema name, in schema order.
// This is the fixed-shape response used whenever extraction cannot run.
func NullFields(names []string) []Field {
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, NullField(name))
	}
	return fields
}
