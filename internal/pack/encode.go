package pack

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitepack/internal/foundation/normalization"
)

// Format selects the descriptor serialization.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var formatNormalizer = normalization.NewNormalizer(map[string]Format{
	"yaml": FormatYAML,
	"yml":  FormatYAML,
	"json": FormatJSON,
}, FormatYAML)

// ParseFormat accepts yaml, yml or json in any case.
func ParseFormat(raw string) (Format, error) {
	return formatNormalizer.NormalizeWithError(raw)
}

// Encode writes d to w in the requested format.
func Encode(w io.Writer, d *Descriptor, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(d)
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d); err != nil {
			return fmt.Errorf("encode descriptor: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
