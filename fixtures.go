package sqlseed

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Fixture is one row destined for a table.
type Fixture struct {
	Table string
	Row   *Row
}

// LoadFixtures reads a YAML document mapping table names to lists of rows:
//
//	users:
//	  - username: alice
//	    email: a@x.com
//	orders:
//	  - user_id: 1
//	    total: 9.99
//
// The file is parsed through the node API so mapping order survives into
// Row order, which in turn fixes parameter-binding order on insert.
func LoadFixtures(path string) ([]Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("fixtures: top level must map table names to row lists")
	}

	var fixtures []Fixture
	for i := 0; i+1 < len(root.Content); i += 2 {
		tableNode, listNode := root.Content[i], root.Content[i+1]
		if listNode.Kind != yaml.SequenceNode {
			return nil, fmt.Errorf("fixtures: table %q must hold a list of rows", tableNode.Value)
		}
		for _, rowNode := range listNode.Content {
			if rowNode.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("fixtures: table %q rows must be mappings", tableNode.Value)
			}
			row := NewRow()
			for j := 0; j+1 < len(rowNode.Content); j += 2 {
				keyNode, valNode := rowNode.Content[j], rowNode.Content[j+1]
				v, err := scalarValue(valNode)
				if err != nil {
					return nil, fmt.Errorf("fixtures: table %q column %q: %w", tableNode.Value, keyNode.Value, err)
				}
				row.Set(keyNode.Value, v)
			}
			fixtures = append(fixtures, Fixture{Table: tableNode.Value, Row: row})
		}
	}
	return fixtures, nil
}

func scalarValue(n *yaml.Node) (Value, error) {
	if n.Kind != yaml.ScalarNode {
		return Value{}, fmt.Errorf("nested values are not supported")
	}
	switch n.Tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return Value{}, fmt.Errorf("invalid bool %q", n.Value)
		}
		return Bool(b), nil
	case "!!int":
		i, err := strconv.ParseInt(n.Value, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid integer %q", n.Value)
		}
		return Int(i), nil
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid float %q", n.Value)
		}
		return Float(f), nil
	case "!!timestamp":
		t, err := time.Parse(time.RFC3339, n.Value)
		if err != nil {
			return Value{}, fmt.Errorf("invalid timestamp %q", n.Value)
		}
		return Time(t), nil
	case "!!str":
		return Text(n.Value), nil
	default:
		return Value{}, fmt.Errorf("unsupported YAML tag %s", n.Tag)
	}
}

// Apply inserts every fixture row in file order and returns the number of
// rows inserted. It stops at the first failure.
func (m *Manager) Apply(fixtures []Fixture) (int, error) {
	applied := 0
	for _, f := range fixtures {
		if _, err := m.Insert(f.Table, f.Row); err != nil {
			return applied, err
		}
		applied++
	}
	if applied > 0 {
		log.Info().Int("rows", applied).Msg("Fixtures applied")
	}
	return applied, nil
}
