package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	ErrVersionsFileInvalid = errors.New("registry: versions file failed validation")
	ErrSidebarFileInvalid  = errors.New("registry: sidebar file failed validation")
)

// versionsSchema constrains versions.json to a unique, non-empty list of labels.
const versionsSchema = `{
	"type": "array",
	"items": {"type": "string", "minLength": 1},
	"uniqueItems": true
}`

// sidebarsSchema constrains sidebar files to sidebar -> category -> doc ids.
const sidebarsSchema = `{
	"type": "object",
	"additionalProperties": {
		"type": "object",
		"additionalProperties": {
			"type": "array",
			"items": {"type": "string", "minLength": 1}
		}
	}
}`

// ValidationIssue captures a single validation failure.
type ValidationIssue struct {
	Location string
	Message  string
}

// FileValidationError surfaces schema issues with file-aware context.
type FileValidationError struct {
	File   string
	Issues []ValidationIssue
	Cause  error
}

func (e *FileValidationError) Error() string {
	if len(e.Issues) == 0 {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.File, e.Cause.Error())
		}
		return e.File
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		location := strings.TrimSpace(issue.Location)
		if location == "" {
			location = "#"
		} else if !strings.HasPrefix(location, "#") {
			location = "#" + location
		}
		if issue.Message == "" {
			parts = append(parts, location)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return fmt.Sprintf("%s: %s", e.File, strings.Join(parts, "; "))
}

func (e *FileValidationError) Unwrap() error {
	return e.Cause
}

func compileSchema(name, schema string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(name, bytes.NewReader([]byte(schema))); err != nil {
		return nil, err
	}
	return compiler.Compile(name)
}

func validateAgainst(schema *jsonschema.Schema, file string, data []byte, sentinel error) (any, error) {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", sentinel, file, err)
	}
	if err := schema.Validate(decoded); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return nil, &FileValidationError{
				File:   file,
				Issues: collectValidationIssues(validationErr),
				Cause:  sentinel,
			}
		}
		return nil, fmt.Errorf("%w: %s: %v", sentinel, file, err)
	}
	return decoded, nil
}

func collectValidationIssues(err *jsonschema.ValidationError) []ValidationIssue {
	if err == nil {
		return nil
	}
	issues := []ValidationIssue{}
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			issues = append(issues, ValidationIssue{
				Location: strings.TrimSpace(node.InstanceLocation),
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(err)
	return issues
}
