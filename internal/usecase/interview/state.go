package interview

import "github.com/futig/interview-backend/internal/entity"

// DecideTurnType maps the number of turns already exchanged onto the interview phase.
func DecideTurnType(historyLen, terminalThreshold int) entity.TurnType {
	switch {
	case historyLen <= 0:
		return entity.TurnTypeFirst
	case historyLen >= terminalThreshold:
		return entity.TurnTypeFinal
	default:
		return entity.TurnTypeFollowUp
	}
}
