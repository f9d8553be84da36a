package rules

import (
	"bytes"
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	jsv "github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaID identifies the generated rules document schema
const SchemaID = "https://github.com/jingkaihe/skillrouter/schemas/skill-rules.json"

// schemaDocument mirrors document with a plain map so the reflector can
// describe it; key order is irrelevant to validation.
type schemaDocument struct {
	Skills map[string]SkillConfig `json:"skills" jsonschema:"required,title=Skills,description=Skill activation rules keyed by skill name"`
}

// Schema returns the JSON schema of the rules document
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		ExpandedStruct:            true,
	}
	s := r.Reflect(&schemaDocument{})
	s.ID = jsonschema.ID(SchemaID)
	s.Title = "Skill activation rules"
	return s
}

// SchemaJSON returns the indented JSON encoding of Schema
func SchemaJSON() ([]byte, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal rules schema")
	}
	return data, nil
}

// Validator validates raw rules documents against the generated schema
type Validator struct {
	schema *jsv.Schema
}

// NewValidator compiles the rules schema
func NewValidator() (*Validator, error) {
	data, err := SchemaJSON()
	if err != nil {
		return nil, err
	}

	doc, err := jsv.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode rules schema")
	}

	compiler := jsv.NewCompiler()
	if err := compiler.AddResource(SchemaID, doc); err != nil {
		return nil, errors.Wrap(err, "failed to add rules schema resource")
	}

	schema, err := compiler.Compile(SchemaID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compile rules schema")
	}

	return &Validator{schema: schema}, nil
}

// Validate checks a raw rules document against the schema
func (v *Validator) Validate(data []byte) error {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	inst, err := jsv.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(err, "invalid JSON")
	}

	if err := v.schema.Validate(inst); err != nil {
		return errors.Wrap(err, "schema validation failed")
	}
	return nil
}
