package assessment

// JSONSchema returns a draft 2020-12 JSON schema for a Record, derived from
// Fields. Enum labels are exact; the schema is stricter than ParseEducation
// and ParseAnswer.
func JSONSchema() map[string]any {
	properties := make(map[string]any, FeatureCount)
	required := make([]any, 0, FeatureCount)
	for _, f := range Fields() {
		prop := map[string]any{"title": f.Label}
		switch {
		case len(f.Options) > 0:
			enum := make([]any, len(f.Options))
			for i, o := range f.Options {
				enum[i] = o
			}
			prop["type"] = "string"
			prop["enum"] = enum
		case f.Integer():
			prop["type"] = "integer"
		default:
			prop["type"] = "number"
		}
		if f.Bounds != nil {
			prop["minimum"] = f.Bounds.Min
			prop["maximum"] = f.Bounds.Max
		}
		properties[f.Name] = prop
		required = append(required, f.Name)
	}
	return map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"title":                "Malnutrition risk assessment record",
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}
