package beans

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Schema is the YAML (or JSON) form of a bean description file.
//
//	types:
//	  - name: Person
//	    extends: [Object]
//	    fields:
//	      - {name: name, type: String}
//	    methods:
//	      - {name: friend, params: [{name: i, type: int}], returns: Person}
//	  - name: Color
//	    enum: true
//	    constants: [{name: RED}, {name: GREEN}]
//	globals:
//	  fields:
//	    - {name: out, type: PrintStream}
type Schema struct {
	Types   []TypeSchema  `yaml:"types"`
	Globals MembersSchema `yaml:"globals"`
}

// TypeSchema describes one type.
type TypeSchema struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	TopLevel    bool             `yaml:"toplevel"`
	Enum        bool             `yaml:"enum"`
	Extends     []string         `yaml:"extends"`
	Constants   []ConstantSchema `yaml:"constants"`

	MembersSchema `yaml:",inline"`
}

// MembersSchema holds fields and methods.
type MembersSchema struct {
	Fields  []FieldSchema  `yaml:"fields"`
	Methods []MethodSchema `yaml:"methods"`
}

// FieldSchema describes a field.
type FieldSchema struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	Deprecated  bool   `yaml:"deprecated"`
}

// MethodSchema describes a method.
type MethodSchema struct {
	Name        string        `yaml:"name"`
	Params      []ParamSchema `yaml:"params"`
	Returns     string        `yaml:"returns"`
	Description string        `yaml:"description"`
	Deprecated  bool          `yaml:"deprecated"`
}

// ParamSchema describes a method parameter.
type ParamSchema struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// ConstantSchema describes an enum constant.
type ConstantSchema struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ParseSchema decodes a YAML or JSON bean description.
func ParseSchema(filename string, data []byte) (*Schema, error) {
	var s Schema

	err := yaml.Unmarshal(data, &s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	return &s, nil
}
