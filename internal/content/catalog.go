package content

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SupportedMajor is the catalog format major version this build understands.
const SupportedMajor = "v1"

//go:embed catalog.yaml
var defaultCatalog []byte

//go:embed catalog.schema.json
var catalogSchema []byte

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// ValidationError reports a catalog that failed schema or consistency checks.
type ValidationError struct {
	Source string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid catalog %s: %v", e.Source, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return parse("embedded", defaultCatalog)
}

// Load reads and validates a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return parse(path, data)
}

// Parse decodes and validates catalog YAML.
func Parse(data []byte) (*Catalog, error) {
	return parse("input", data)
}

func parse(source string, data []byte) (*Catalog, error) {
	// Validate the generic document first so schema errors name the field.
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Source: source, Err: fmt.Errorf("decode yaml: %w", err)}
	}
	if err := validateSchema(doc); err != nil {
		return nil, &ValidationError{Source: source, Err: err}
	}

	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, &ValidationError{Source: source, Err: fmt.Errorf("decode catalog: %w", err)}
	}
	if err := c.check(); err != nil {
		return nil, &ValidationError{Source: source, Err: err}
	}
	c.index()
	return &c, nil
}

// check enforces what the schema cannot express.
func (c *Catalog) check() error {
	if !semver.IsValid(c.Version) {
		return fmt.Errorf("version %q is not a semantic version", c.Version)
	}
	if major := semver.Major(c.Version); major != SupportedMajor {
		return fmt.Errorf("version %s: unsupported major %s (want %s)", c.Version, major, SupportedMajor)
	}
	for i, q := range c.Questions {
		if len(q.Responses) != len(q.Options) {
			return fmt.Errorf("question %d: %d responses for %d options", q.ID, len(q.Responses), len(q.Options))
		}
		if q.ID != i+1 {
			return fmt.Errorf("question at index %d has id %d, want %d", i, q.ID, i+1)
		}
	}
	seen := make(map[int]bool, len(c.Screens))
	for _, s := range c.Screens {
		if seen[s.Step] {
			return fmt.Errorf("duplicate copy for step %d", s.Step)
		}
		seen[s.Step] = true
	}
	return nil
}

func validateSchema(doc any) error {
	schema, err := getSchema()
	if err != nil {
		return err
	}

	// The validator wants JSON-shaped values; round-trip through JSON.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("normalize document: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("normalize document: %w", err)
	}

	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func getSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(catalogSchema, &def); err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://catalog.json"
		if err := c.AddResource(url, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(url)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}
