package settings

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/artem13815/microbridge/pkg/registry"
)

var (
	visibilities = []string{"public", "employers", "private"}
	themes       = []string{"light", "dark", "system"}
	languages    = []string{"en", "es", "fr", "de", "pt", "ru"}
)

func boolProps(names ...string) map[string]any {
	props := make(map[string]any, len(names))
	for _, n := range names {
		props[n] = map[string]any{"type": "boolean"}
	}
	return props
}

func object(props map[string]any) map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}

func currencies() []string {
	opts, _ := registry.Options(registry.FieldCurrency)
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

// updateSchema describes a partial settings update: every key is optional, unknown keys
// are rejected.
func updateSchema() map[string]any {
	privacy := boolProps("showEmail", "showPhone", "showLevel")
	privacy["profileVisibility"] = map[string]any{"type": "string", "enum": visibilities}

	return object(map[string]any{
		"notifications": object(boolProps("email", "push", "projectMatches", "messages", "weeklyDigest")),
		"privacy":       object(privacy),
		"preferences": object(map[string]any{
			"language": map[string]any{"type": "string", "enum": languages},
			"timezone": map[string]any{"type": "string", "minLength": 1, "maxLength": 64},
			"theme":    map[string]any{"type": "string", "enum": themes},
			"currency": map[string]any{"type": "string", "enum": currencies()},
		}),
	})
}

var schemaLoader = gojsonschema.NewGoLoader(updateSchema())

// validate checks a raw update against the schema.
func validate(raw []byte) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return &ValidationError{Details: []string{fmt.Sprintf("malformed json: %v", err)}}
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return &ValidationError{Details: errs}
	}
	return nil
}
