// Package loader reads schema and relationship definitions from a YAML
// file. Spreadsheet or database ingestion is an external concern; this
// is the engine-side declaration format matching the construction input
// contract.
package loader

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/querygraph-inc/querygraph-engine/pkg/catalog"
	"github.com/querygraph-inc/querygraph-engine/pkg/graph"
	"github.com/querygraph-inc/querygraph-engine/pkg/models"
)

// Definitions is the top-level shape of a definitions file: table
// declarations followed by relationship declarations.
type Definitions struct {
	Tables        []models.Table                   `yaml:"tables"`
	Relationships []models.RelationshipDeclaration `yaml:"relationships"`
}

// LoadFile reads and parses a definitions file.
func LoadFile(path string) (*Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definitions file: %w", err)
	}
	return Parse(data)
}

// Parse decodes definitions from YAML.
func Parse(data []byte) (*Definitions, error) {
	var defs Definitions
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse definitions: %w", err)
	}
	return &defs, nil
}

// Build constructs the immutable catalog and relationship graph from the
// definitions. Construction errors abort the build entirely; no
// half-built graph is returned.
func (d *Definitions) Build(logger *zap.Logger) (*catalog.Catalog, *graph.Graph, error) {
	cat, err := catalog.New(d.Tables)
	if err != nil {
		return nil, nil, fmt.Errorf("build catalog: %w", err)
	}

	g, err := graph.New(cat, d.Relationships, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("build relationship graph: %w", err)
	}

	return cat, g, nil
}
