package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
)

// GenerateSchema returns the JSON schema of Config, indented.
func GenerateSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true
	schema := r.Reflect(&Config{})

	schema.ID = "https://github.com/ubytes/appplatform/config.schema.json"
	schema.Title = "appplatform configuration"
	schema.Description = "Window, web view, accelerator and permission settings for appplatform"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}

// GenerateSchemaFile writes the schema to path.
func GenerateSchemaFile(path string) error {
	data, err := GenerateSchema()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	return nil
}
