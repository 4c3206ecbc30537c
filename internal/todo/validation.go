package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/tasks/internal/utils"
)

const schemaURL = "https://github.com/nibzard/tasks/schema/tasks.schema.json"

// Schema is the JSON Schema for the stored task list.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Task list",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text", "completed"],
    "properties": {
      "id": {
        "type": ["string", "number"],
        "minLength": 1
      },
      "text": {
        "type": "string",
        "minLength": 1
      },
      "completed": {"type": "boolean"},
      "favorite": {"type": "boolean"},
      "createdAt": {
        "type": "string",
        "format": "date-time"
      }
    }
  }
}`

var (
	taskSchema *jsonschema.Schema
	validate   *validator.Validate
)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, strings.NewReader(Schema)); err != nil {
		panic(fmt.Sprintf("failed to add task schema: %v", err))
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		panic(fmt.Sprintf("failed to compile task schema: %v", err))
	}
	taskSchema = schema

	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("trimmed", validateTrimmed); err != nil {
		panic(fmt.Sprintf("failed to register trimmed validator: %v", err))
	}
}

// validateTrimmed requires a non-empty string without surrounding whitespace.
func validateTrimmed(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s != "" && strings.TrimSpace(s) == s
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateDocument checks a raw stored document against Schema.
func ValidateDocument(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return &ValidationError{Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	if err := taskSchema.Validate(doc); err != nil {
		return schemaErrors(err)
	}
	return nil
}

// ValidateTasks checks decoded tasks: every task needs an id and text that
// is non-empty and trimmed, and ids must be unique.
func ValidateTasks(tasks []Task) error {
	var errs []error
	seen := make(map[ID]int, len(tasks))
	for i := range tasks {
		if err := validate.Struct(&tasks[i]); err != nil {
			var fieldErrs validator.ValidationErrors
			if !errors.As(err, &fieldErrs) {
				return err
			}
			for _, fe := range fieldErrs {
				errs = append(errs, &ValidationError{
					Path: fmt.Sprintf("[%d].%s", i, fe.Field()),
					Err:  fmt.Errorf("failed %q check", fe.Tag()),
				})
			}
		}
		if j, dup := seen[tasks[i].ID]; dup && tasks[i].ID != "" {
			errs = append(errs, &ValidationError{
				Path: fmt.Sprintf("[%d].id", i),
				Err:  fmt.Errorf("duplicate id %q (also at [%d])", tasks[i].ID, j),
			})
			continue
		}
		seen[tasks[i].ID] = i
	}
	return errors.Join(errs...)
}

func schemaErrors(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	var errs []error
	collectSchemaErrors(&errs, ve)
	return errors.Join(errs...)
}

func collectSchemaErrors(errs *[]error, ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: utils.JSONPointerToPath(ve.InstanceLocation),
			Err:  errors.New(ve.Message),
		})
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(errs, cause)
	}
}
