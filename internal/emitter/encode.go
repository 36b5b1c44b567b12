package emitter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-yaml"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format %q", s)
	}
}

// Encode serializes doc completely before anything is written to w, so a
// failed encoding never leaves a partial document behind.
func Encode(w io.Writer, doc any, format Format, pretty bool) error {
	var buf bytes.Buffer

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		if pretty {
			enc.SetIndent("", "    ")
		}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode inventory as json: %w", err)
		}
	case FormatYAML:
		b, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode inventory as yaml: %w", err)
		}
		buf.Write(b)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}

	_, err := w.Write(buf.Bytes())
	return err
}
