package console

import (
	"encoding/json"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/proclog/format"
	"go.jacobcolvin.com/proclog/level"
	"go.jacobcolvin.com/proclog/style"
)

// SchemaID is the $id of the config file schema.
const SchemaID = "https://go.jacobcolvin.com/proclog/config.schema.json"

// Schema returns the JSON Schema describing the YAML config file read by
// [Config.LoadFile].
func Schema() *jsonschema.Schema {
	defaults := NewConfig()

	return &jsonschema.Schema{
		Schema:      "http://json-schema.org/draft-07/schema#",
		ID:          SchemaID,
		Title:       "proclog config",
		Description: "Settings for the process-aware console logger.",
		Type:        "object",
		Properties: map[string]*jsonschema.Schema{
			"mode": enumSchema("Display mode; selects style preset and color strategy.",
				style.GetAllModeStrings(), defaults.Mode),
			"level": enumSchema("Minimum level of emitted entries.",
				level.GetAllLevelStrings(), defaults.Level),
			"details": enumSchema("How much of the process hierarchy to show.",
				format.GetAllDetailsStrings(), defaults.Details),
			"scheme": enumSchema("ANSI color table.",
				style.GetAllSchemeStrings(), defaults.Scheme),
			"tagsMaxLength": {
				Type:        "integer",
				Description: "Maximum service name width in tags; 0 disables the limit.",
				Minimum:     jsonschema.Ptr(0.0),
				Default:     rawDefault(defaults.TagsMaxLength),
			},
			"showHierarchy": boolSchema("Show the parent process or the full path.", defaults.ShowHierarchy),
			"showTimestamp": boolSchema("Prefix entries with the time of day.", defaults.ShowTimestamp),
			"neutralColors": boolSchema("Include white and black in the color rotation.", defaults.NeutralColors),
			"styles":        overridesSchema(),
		},
		AdditionalProperties: falseSchema(),
	}
}

// enumSchema returns a string schema limited to values. A nil def leaves the
// default unset.
func enumSchema(desc string, values []string, def any) *jsonschema.Schema {
	enum := make([]any, 0, len(values))
	for _, v := range values {
		enum = append(enum, v)
	}

	s := &jsonschema.Schema{
		Type:        "string",
		Description: desc,
		Enum:        enum,
	}
	if def != nil {
		s.Default = rawDefault(def)
	}

	return s
}

func boolSchema(desc string, def bool) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "boolean",
		Description: desc,
		Default:     rawDefault(def),
	}
}

func overridesSchema() *jsonschema.Schema {
	styleNames := make([]string, 0, 8)
	for s := style.Reset; s <= style.Hidden; s++ {
		styleNames = append(styleNames, s.String())
	}

	styles := &jsonschema.Schema{
		Type:  "array",
		Items: enumSchema("", styleNames, nil),
	}

	ruleKeys := append([]string{style.DefaultKey}, level.GetAllLevelStrings()...)

	rule := &jsonschema.Schema{
		Type:                 "object",
		Description:          "Styles per level; " + style.DefaultKey + " applies to unlisted levels.",
		Properties:           map[string]*jsonschema.Schema{},
		AdditionalProperties: falseSchema(),
	}
	for _, k := range ruleKeys {
		rule.Properties[k] = styles
	}

	element := &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"main": rule,
			"sub":  rule,
		},
		AdditionalProperties: falseSchema(),
	}

	props := map[string]*jsonschema.Schema{
		"scheme": enumSchema("ANSI color table.", style.GetAllSchemeStrings(), nil),
	}

	for _, f := range style.Fields() {
		props[f.String()] = element
	}

	return &jsonschema.Schema{
		Type: "object",
		Description: "Overrides applied on top of the mode preset, keyed by field (" +
			strings.Join(fieldNames(), ", ") + ").",
		Properties:           props,
		AdditionalProperties: falseSchema(),
	}
}

func fieldNames() []string {
	out := make([]string, 0, 4)
	for _, f := range style.Fields() {
		out = append(out, f.String())
	}

	return out
}

func falseSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Not: &jsonschema.Schema{}}
}

func rawDefault(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}

	return b
}
