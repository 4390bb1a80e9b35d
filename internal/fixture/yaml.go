package fixture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivannaromanovych/product-categories/internal/model"
)

// YAMLFile is a fixture source that reads the three tables from a YAML file:
//
//	users:
//	  - {id: 1, name: Roma, sex: m}
//	categories:
//	  - {id: 1, title: Grocery, icon: "🍞", ownerId: 1}
//	products:
//	  - {id: 1, name: Bread, categoryId: 1}
//
// Missing tables, or an empty file, load as empty. Unknown keys are rejected so a typo in a
// field name does not silently produce zero IDs.
type YAMLFile struct {
	Path string
}

func (f YAMLFile) Load(_ context.Context) (*model.Tables, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("fixture: opening %s: %w", f.Path, err)
	}
	defer file.Close()

	var t model.Tables
	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("fixture: decoding %s: %w", f.Path, err)
	}
	return &t, nil
}
