// internal/intent/action.go
package intent

import (
	"regexp"
	"strings"
)

var (
	queryWords  = regexp.MustCompile(`\b(how many|count|show me|which|what|find)\b`)
	createWords = regexp.MustCompile(`\b(create|add|new|make|register)\b`)
	updateWords = regexp.MustCompile(`\b(update|change|edit|modify|set)\b`)
	deleteWords = regexp.MustCompile(`\b(delete|remove|cancel|drop)\b`)
	listWords   = regexp.MustCompile(`\b(list|show|get|view|display)\b`)
)

type actionRule struct {
	action ActionType
	match  func(s string) bool
}

// Order matters: query is checked first so natural questions ("how many
// domains do we have") win over the bare verb keywords they contain, and
// create is checked before list so "show me how to create a ticket" does
// not land on list via "show".
var actionRules = []actionRule{
	{ActionQuery, func(s string) bool {
		return queryWords.MatchString(s) && !createWords.MatchString(s)
	}},
	{ActionCreate, createWords.MatchString},
	{ActionUpdate, updateWords.MatchString},
	{ActionDelete, deleteWords.MatchString},
	{ActionList, listWords.MatchString},
}

// ClassifyAction decides the verb of the utterance, independent of entity.
func ClassifyAction(text string) ActionType {
	s := strings.ToLower(text)
	for _, r := range actionRules {
		if r.match(s) {
			return r.action
		}
	}
	return ActionUnknown
}
