package model

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// EncodeYAML renders prospects as a YAML document for export.
// Field order is fixed and names are always quoted if YAML would
// otherwise reinterpret them.
func EncodeYAML(people []Prospect) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}

	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for i := range people {
		seq.Content = append(seq.Content, buildProspectNode(&people[i]))
	}
	doc.Content = append(doc.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "prospects"},
		seq,
	)

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode prospects: %w", err)
	}
	return data, nil
}

// buildProspectNode creates a yaml.Node for a Prospect.
func buildProspectNode(p *Prospect) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}

	addStringField(node, "id", p.ID.String())
	addStringField(node, "name", p.Name)
	if p.EmailAddress != "" {
		addStringField(node, "email", p.EmailAddress)
	}
	addBoolField(node, "contacted", p.Contacted)

	return node
}

// Helper functions for building yaml.Node

func addStringField(node *yaml.Node, key, value string) {
	style := yaml.Style(0)
	if strings.Contains(value, "\n") {
		style = yaml.LiteralStyle
	}
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: "!!str", Style: style},
	)
}

func addBoolField(node *yaml.Node, key string, value bool) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%t", value), Tag: "!!bool"},
	)
}
