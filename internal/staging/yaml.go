package staging

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yndnr/prefmirror/internal/core/domain"
)

// Export writes s as a YAML mapping in catalog order.
func Export(w io.Writer, s *Snapshot) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, b := range table {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: b.key.Name()},
			scalarNode(b.key.Type(), b.format(s)),
		)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return enc.Close()
}

// scalarNode tags a formatted value so it round-trips as its native
// YAML type.
func scalarNode(typ, value string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Value: value}
	switch {
	case strings.HasPrefix(typ, "optional ") && value == "none":
		n.Tag, n.Value = "!!null", "null"
	case typ == "bool":
		n.Tag = "!!bool"
	case strings.HasPrefix(typ, "uint") || typ == "optional uint32":
		n.Tag = "!!int"
	case typ == "float32":
		// Left plain so whole numbers print without an explicit tag
	default:
		n.Tag = "!!str"
	}
	return n
}

// Import overlays the YAML mapping read from r onto a copy of base.
// Keys missing from the document keep base's values; unknown keys,
// repeated keys and unparsable values are errors. base is never modified.
func Import(r io.Reader, base *Snapshot) (*Snapshot, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return base.Clone(), nil
		}
		return nil, domain.ErrInvalidValue.WithDetails("malformed YAML").WithCause(err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) == 1 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, domain.ErrInvalidValue.WithDetails("settings document must be a mapping")
	}

	out := base.Clone()
	seen := make(map[string]int, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if first, dup := seen[k.Value]; dup {
			return nil, domain.ErrInvalidValue.WithDetails(fmt.Sprintf("%s: line %d: already set on line %d", k.Value, k.Line, first))
		}
		seen[k.Value] = k.Line
		if v.Kind != yaml.ScalarNode {
			return nil, domain.ErrInvalidValue.WithDetails(fmt.Sprintf("%s: line %d: expected a scalar", k.Value, v.Line))
		}

		raw := v.Value
		if v.ShortTag() == "!!null" {
			raw = ""
		}
		if err := out.Set(k.Value, raw); err != nil {
			return nil, fmt.Errorf("line %d: %w", k.Line, err)
		}
	}
	return out, nil
}
