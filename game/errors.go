package game

import "errors"

var (
	ErrInvalidAgent   = errors.New("invalid agent index")
	ErrIllegalAction  = errors.New("illegal action")
	ErrGameOver       = errors.New("game is over")
	ErrNoLegalActions = errors.New("no legal actions")

	ErrUnknownEvaluation = errors.New("unknown evaluation function")
)
