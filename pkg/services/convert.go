package services

import "encoding/json"

// toMaps round-trips a typed slice through JSON into the
// []map[string]interface{} shape ent's field.JSON columns store,
// matching the teacher's convention of letting JSON-typed ent fields
// hold loosely-typed payloads (pkg/services/interaction_service.go's
// SetLlmRequest/SetLlmResponse) rather than adding a second bespoke
// column type per label/block shape.
func toMaps[T any](items []T) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(items))
	for _, it := range items {
		b, err := json.Marshal(it)
		if err != nil {
			continue
		}
		var m map[string]interface{}
		if err := json.Unmarshal(b, &m); err != nil {
			continue
		}
		out = append(out, m)
	}
	return out
}

// fromMaps is toMaps's inverse.
func fromMaps[T any](maps []map[string]interface{}) []T {
	out := make([]T, 0, len(maps))
	for _, m := range maps {
		b, err := json.Marshal(m)
		if err != nil {
			continue
		}
		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
