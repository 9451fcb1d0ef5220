// Package schema validates raw JSON artifacts against the embedded schemas.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "qmetrics.dev/pkg/qmetrics/schema"
)

const apiReportSchemaName = "api-report.schema.json"

var (
	apiReportSchema *jsonschema.Schema
	compileOnce     sync.Once
	compileErr      error
)

// compileSchemas compiles the embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		data, err := schemafs.FS.ReadFile(apiReportSchemaName)
		if err != nil {
			compileErr = fmt.Errorf("read api report schema: %w", err)
			return
		}

		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal api report schema: %w", err)
			return
		}

		if err := compiler.AddResource(apiReportSchemaName, doc); err != nil {
			compileErr = fmt.Errorf("add api report schema resource: %w", err)
			return
		}

		apiReportSchema, err = compiler.Compile(apiReportSchemaName)
		if err != nil {
			compileErr = fmt.Errorf("compile api report schema: %w", err)
			return
		}
	})

	return compileErr
}

// ValidateAPIReport checks that data is a Newman JSON report carrying run
// statistics. Reports without a run section fail validation.
func ValidateAPIReport(data []byte) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := apiReportSchema.Validate(v); err != nil {
		return fmt.Errorf("api report validation failed: %w", err)
	}

	return nil
}
