// internal/router/schemas.go
package router

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"helpdesk-assistant/internal/intent"
)

// createSchemas validates the extracted parameter set before any create
// handler touches the record store. Only entity-critical fields are required;
// extraction is best-effort, so everything else stays optional.
var createSchemas = map[intent.EntityType]*gojsonschema.Schema{}

func init() {
	definitions := map[intent.EntityType]map[string]interface{}{
		intent.EntityDomain: {
			"type":     "object",
			"required": []string{"domain"},
			"properties": map[string]interface{}{
				"domain":     map[string]interface{}{"type": "string", "minLength": 1},
				"expiryDate": map[string]interface{}{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
				"registrar":  map[string]interface{}{"type": "string"},
				"cost":       map[string]interface{}{"type": "number", "minimum": 0},
				"autoRenew":  map[string]interface{}{"type": "boolean"},
			},
		},
		intent.EntityAsset: {
			"type":     "object",
			"required": []string{"type"},
			"properties": map[string]interface{}{
				"type":       map[string]interface{}{"type": "string", "minLength": 1},
				"brand":      map[string]interface{}{"type": "string"},
				"model":      map[string]interface{}{"type": "string"},
				"serial":     map[string]interface{}{"type": "string"},
				"assignedTo": map[string]interface{}{"type": "string"},
				"department": map[string]interface{}{"type": "string"},
			},
		},
		intent.EntityEmail: {
			"type":     "object",
			"required": []string{"email"},
			"properties": map[string]interface{}{
				"email":    map[string]interface{}{"type": "string", "format": "email"},
				"password": map[string]interface{}{"type": "string"},
				"domain":   map[string]interface{}{"type": "string"},
			},
		},
		intent.EntityTicket: {
			"type":     "object",
			"required": []string{"title"},
			"properties": map[string]interface{}{
				"title":       map[string]interface{}{"type": "string", "minLength": 1, "maxLength": 100},
				"description": map[string]interface{}{"type": "string"},
				"priority":    map[string]interface{}{"type": "string"},
				"department":  map[string]interface{}{"type": "string"},
			},
		},
		intent.EntityHosting: {
			"type":     "object",
			"required": []string{"provider"},
			"properties": map[string]interface{}{
				"provider": map[string]interface{}{"type": "string", "minLength": 1},
				"plan":     map[string]interface{}{"type": "string"},
				"cost":     map[string]interface{}{"type": "number", "minimum": 0},
			},
		},
	}

	for entity, def := range definitions {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(def))
		if err != nil {
			panic(fmt.Sprintf("invalid %s create schema: %v", entity, err))
		}
		createSchemas[entity] = schema
	}
}

// validateCreate checks the params against the entity's create schema. On
// failure it returns the user-facing "please specify" prompt for the first
// violated field.
func validateCreate(entity intent.EntityType, params map[string]interface{}) (string, bool) {
	schema, ok := createSchemas[entity]
	if !ok {
		return "", true
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(params))
	if err != nil {
		return fmt.Sprintf("❌ Could not validate command: %s", err.Error()), false
	}
	if result.Valid() {
		return "", true
	}

	first := result.Errors()[0]
	field := first.Field()
	if field == "(root)" {
		if prop, ok := first.Details()["property"].(string); ok {
			field = prop
		}
	}
	return fmt.Sprintf("Please specify the **%s** for this command.", field), false
}
