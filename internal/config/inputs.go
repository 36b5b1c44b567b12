package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"text/template"

	"github.com/creasty/defaults"
	"github.com/goccy/go-yaml"

	"github.com/ndinv/sql-inventory/internal/models"
	srvErrors "github.com/ndinv/sql-inventory/pkg/errors"
)

// LoadInputs reads and validates the inputs document at path.
func LoadInputs(path string) ([]models.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, srvErrors.NewConfigErrorWrap("", "inputs file", err)
	}
	return ParseInputs(data)
}

// ParseInputs decodes a YAML (or JSON) sequence of inputs, applies defaults
// and validates every entry. Regexes and group templates are compiled here.
func ParseInputs(data []byte) ([]models.Input, error) {
	var inputs []models.Input
	if err := yaml.UnmarshalWithOptions(data, &inputs, yaml.DisallowUnknownField()); err != nil {
		return nil, srvErrors.NewConfigError("", "", yaml.FormatError(err, false, true))
	}
	if len(inputs) == 0 {
		return nil, srvErrors.NewConfigError("", "", "no inputs defined")
	}

	seen := make(map[string]struct{}, len(inputs))
	for i := range inputs {
		in := &inputs[i]
		if err := defaults.Set(in); err != nil {
			return nil, srvErrors.NewConfigErrorWrap(in.Name, "defaults", err)
		}
		if err := validate(i, in); err != nil {
			return nil, err
		}
		if _, ok := seen[in.Name]; ok {
			return nil, srvErrors.NewConfigError(in.Name, "name", "duplicate input name")
		}
		seen[in.Name] = struct{}{}
	}

	return inputs, nil
}

func validate(idx int, in *models.Input) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return srvErrors.NewConfigError(fmt.Sprintf("#%d", idx), "name", "missing required key")
	}
	if strings.TrimSpace(in.Query) == "" {
		return srvErrors.NewConfigError(in.Name, "query", "missing required key")
	}
	in.HostField = strings.TrimSpace(in.HostField)
	if in.HostField == "" {
		return srvErrors.NewConfigError(in.Name, "host_field", "missing required key")
	}

	for col, out := range in.VarFields {
		if strings.TrimSpace(col) == "" || strings.TrimSpace(out) == "" {
			return srvErrors.NewConfigError(in.Name, "var_fields", "column and variable names must be non-empty")
		}
	}
	for _, f := range in.GroupFields {
		if strings.TrimSpace(f) == "" {
			return srvErrors.NewConfigError(in.Name, "group_fields", "column names must be non-empty")
		}
	}

	for i := range in.Transforms {
		t := &in.Transforms[i]
		if t.Field == "" || t.Regex == "" || t.Out == "" {
			return srvErrors.NewConfigError(in.Name, fmt.Sprintf("transforms[%d]", i), "field, regex and out are required")
		}
		// transforms only match at the start of the value
		re, err := regexp.Compile("^(?:" + t.Regex + ")")
		if err != nil {
			return srvErrors.NewConfigErrorWrap(in.Name, fmt.Sprintf("transforms[%d].regex", i), err)
		}
		t.Pattern = re
	}

	in.Templates = make([]*template.Template, 0, len(in.GroupTemplates))
	for i, s := range in.GroupTemplates {
		tmpl, err := template.New(fmt.Sprintf("%s.group_templates[%d]", in.Name, i)).Option("missingkey=error").Parse(s)
		if err != nil {
			return srvErrors.NewConfigErrorWrap(in.Name, fmt.Sprintf("group_templates[%d]", i), err)
		}
		in.Templates = append(in.Templates, tmpl)
	}

	return nil
}
