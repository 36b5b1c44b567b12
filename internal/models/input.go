package models

import (
	"regexp"
	"text/template"
)

// Input is one configured query together with its column mappings.
type Input struct {
	Name           string            `yaml:"name"`
	Query          string            `yaml:"query"`
	HostField      string            `yaml:"host_field"`
	GroupFields    []string          `yaml:"group_fields" default:"[]"`
	GroupTemplates []string          `yaml:"group_templates" default:"[]"`
	VarFields      map[string]string `yaml:"var_fields" default:"{}"`
	Required       *bool             `yaml:"required" default:"true"`
	Params         []any             `yaml:"params"`
	Transforms     []Transform       `yaml:"transforms"`

	// Templates holds the parsed GroupTemplates, same order.
	Templates []*template.Template `yaml:"-"`
}

// IsRequired reports whether a failed query for this input aborts the build.
func (i Input) IsRequired() bool {
	return i.Required == nil || *i.Required
}

// Transform extracts a value from Field with Regex and stores it under Out.
// The first capture group is used when the expression has one, otherwise
// the whole match.
type Transform struct {
	Field string `yaml:"field"`
	Regex string `yaml:"regex"`
	Out   string `yaml:"out"`

	Pattern *regexp.Regexp `yaml:"-"`
}
