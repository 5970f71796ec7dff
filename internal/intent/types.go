// internal/intent/types.go

// Package intent turns one raw chat utterance into a structured command:
// which business entity it concerns, which verb it expresses, the typed
// parameters that could be pulled out of the text, and a confidence score
// gating whether the router is allowed to act on it. Everything in this
// package is a pure function over the input string; classification is a
// fixed-order rule cascade, not NLU.
package intent

// EntityType is the business object class a command targets.
type EntityType string

const (
	EntityDomain  EntityType = "domain"
	EntityAsset   EntityType = "asset"
	EntityEmail   EntityType = "email"
	EntityTicket  EntityType = "ticket"
	EntityHosting EntityType = "hosting"
	EntityUnknown EntityType = "unknown"
)

// ActionType is the verb a command expresses.
type ActionType string

const (
	ActionCreate  ActionType = "create"
	ActionUpdate  ActionType = "update"
	ActionDelete  ActionType = "delete"
	ActionList    ActionType = "list"
	ActionQuery   ActionType = "query"
	ActionUnknown ActionType = "unknown"
)

// Intent is the structured interpretation of one utterance. It is transient:
// built per message, consumed by the router, then discarded.
type Intent struct {
	Entity     EntityType             `json:"entity"`
	Action     ActionType             `json:"action"`
	Params     map[string]interface{} `json:"params"`
	Confidence int                    `json:"confidence"`
}

// Param returns the named parameter as a string, or "" if absent.
func (i Intent) Param(key string) string {
	if v, ok := i.Params[key].(string); ok {
		return v
	}
	return ""
}

// FloatParam returns the named parameter as a float64, or 0 and false.
func (i Intent) FloatParam(key string) (float64, bool) {
	v, ok := i.Params[key].(float64)
	return v, ok
}

// BoolParam returns the named parameter as a bool, or false and false.
func (i Intent) BoolParam(key string) (bool, bool) {
	v, ok := i.Params[key].(bool)
	return v, ok
}
