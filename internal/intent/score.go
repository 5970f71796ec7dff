// internal/intent/score.go
package intent

// Score combines classifier certainty and extraction yield into a 0-100
// confidence: 40 for a recognized entity, 30 for a recognized action, and 10
// per extracted parameter up to three. The router refuses to dispatch
// anything scoring below its threshold.
func Score(entity EntityType, action ActionType, params map[string]interface{}) int {
	score := 0
	if entity != EntityUnknown {
		score += 40
	}
	if action != ActionUnknown {
		score += 30
	}

	n := len(params)
	if n > 3 {
		n = 3
	}
	score += 10 * n

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
