package client

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Bulk inventory import. The import file is validated against the schema
// below before anything is sent, so malformed files fail fast with a local
// error instead of a round trip. Valid payloads are forwarded untouched.

//go:embed inventory_import_schema.json
var importSchemaJSON []byte

var importSchema = mustCompileImportSchema()

func mustCompileImportSchema() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(importSchemaJSON))
	if err != nil {
		panic(fmt.Sprintf("invalid embedded import schema: %v", err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("inventory_import_schema.json", doc); err != nil {
		panic(fmt.Sprintf("failed to add import schema resource: %v", err))
	}

	schema, err := compiler.Compile("inventory_import_schema.json")
	if err != nil {
		panic(fmt.Sprintf("failed to compile import schema: %v", err))
	}
	return schema
}

// ValidateImportFile checks an inventory import payload against the embedded
// schema. Returns nil when the payload is well-formed.
func ValidateImportFile(data []byte) error {
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("import file is not valid JSON: %w", err)
	}

	if err := importSchema.Validate(instance); err != nil {
		return fmt.Errorf("import file failed validation: %w", err)
	}

	return nil
}

// ImportResult reports the outcome of a bulk import
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportInventory validates a bulk import file client-side and forwards it to
// the backend
func (c *Client) ImportInventory(ctx context.Context, data []byte) (*ImportResult, error) {
	if err := ValidateImportFile(data); err != nil {
		return nil, newInternalError(err, "validating inventory import file")
	}

	var result ImportResult
	err := c.do(ctx, apiRequest{
		method:       http.MethodPost,
		path:         "/inventory/import",
		body:         json.RawMessage(data),
		requiresAuth: true,
		out:          &result,
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
