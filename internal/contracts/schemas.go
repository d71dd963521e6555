package contracts

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ListingPayloadV1 - схема тела POST/PUT запросов JSON API
const ListingPayloadV1 = "ListingPayload/1.0.0"

// schemaBaseURL - базовый адрес ресурсов схем, не зависящий от рабочего каталога процесса
const schemaBaseURL = "mem://schemas/"

var compiledSchemas = mustCompileSchemas()

func mustCompileSchemas() map[string]*jsonschema.Schema {
	schemas, err := compileSchemas(schemasFS, "schemas")
	if err != nil {
		panic(fmt.Sprintf("contracts: %v", err))
	}
	return schemas
}

// compileSchemas регистрирует все схемы как ресурсы (для $ref), затем компилирует каждую.
func compileSchemas(fsys fs.FS, root string) (map[string]*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".json") {
			return nil
		}
		file, err := fsys.Open(p)
		if err != nil {
			return err
		}
		defer file.Close()

		resource := strings.TrimPrefix(p, root+"/")
		if err := compiler.AddResource(schemaBaseURL+resource, file); err != nil {
			return fmt.Errorf("add schema resource %s: %w", p, err)
		}
		paths = append(paths, resource)
		return nil
	})
	if err != nil {
		return nil, err
	}

	compiled := make(map[string]*jsonschema.Schema, len(paths))
	for _, resource := range paths {
		schema, err := compiler.Compile(schemaBaseURL + resource)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", resource, err)
		}
		key := keyFromPath(resource)
		if key == "" {
			return nil, fmt.Errorf("unexpected schema path %s", resource)
		}
		compiled[key] = schema
	}
	return compiled, nil
}

// keyFromPath: "listing/v1.json" -> "ListingPayload/1.0.0"
func keyFromPath(p string) string {
	dir, file := path.Split(strings.TrimSuffix(p, ".json"))
	dir = strings.Trim(dir, "/")
	if dir == "" || !strings.HasPrefix(file, "v") {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, part := range strings.Split(dir, "-") {
		name.WriteString(caser.String(part))
	}
	name.WriteString("Payload")

	return fmt.Sprintf("%s/%s.0.0", name.String(), strings.TrimPrefix(file, "v"))
}

// Validate проверяет JSON-тело по схеме и возвращает разобранный документ.
func Validate(schemaKey string, body []byte) (map[string]any, error) {
	schema, ok := compiledSchemas[schemaKey]
	if !ok {
		return nil, fmt.Errorf("schema %q not found", schemaKey)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("body is not valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return nil, fmt.Errorf("JSON schema validation failed: %w", err)
	}

	doc, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("body must be a JSON object")
	}
	return doc, nil
}
