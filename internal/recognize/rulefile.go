package recognize

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"invoicerpa/constants"
)

// ruleFileSchema constrains user-supplied rule tables before any regexp is
// compiled.
const ruleFileSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "invoice_number": {"$ref": "#/$defs/rules"},
    "vendor": {"$ref": "#/$defs/rules"},
    "invoice_date": {"$ref": "#/$defs/rules"},
    "amount": {"$ref": "#/$defs/rules"},
    "due_date": {"$ref": "#/$defs/rules"},
    "status": {"$ref": "#/$defs/rules"}
  },
  "$defs": {
    "rules": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "additionalProperties": false,
        "required": ["locator"],
        "properties": {
          "locator": {"type": "string", "minLength": 1},
          "next_line": {"type": "boolean"},
          "last_match": {"type": "boolean"}
        }
      }
    }
  }
}`

var compiledRuleFileSchema = jsonschema.MustCompileString("rules.schema.json", ruleFileSchema)

type ruleSpec struct {
	Locator   string `json:"locator"`
	NextLine  bool   `json:"next_line"`
	LastMatch bool   `json:"last_match"`
}

// LoadTableFile reads a JSON rule file and overlays it on the default table.
// Fields present in the file replace the default rules for that field; absent
// fields keep their defaults.
func LoadTableFile(path string) (Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return ParseTable(raw)
}

// ParseTable validates a JSON rule document against the schema and compiles
// it into a Table on top of the defaults.
func ParseTable(raw []byte) (Table, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("rules file: decode: %w", err)
	}
	if err := compiledRuleFileSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("rules file: %w", err)
	}

	var specs map[constants.FieldKind][]ruleSpec
	if err := json.Unmarshal(raw, &specs); err != nil {
		return nil, fmt.Errorf("rules file: decode: %w", err)
	}

	table := DefaultTable()
	for kind, rs := range specs {
		rules := make([]Rule, 0, len(rs))
		for _, spec := range rs {
			re, err := regexp.Compile(spec.Locator)
			if err != nil {
				return nil, fmt.Errorf("rules file: field %s: bad locator %q: %w", kind, spec.Locator, err)
			}
			rules = append(rules, Rule{Locator: re, NextLine: spec.NextLine, LastMatch: spec.LastMatch})
		}
		table[kind] = rules
	}
	return table, nil
}
