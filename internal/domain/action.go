package domain

import (
	"fmt"
	"strings"
)

type Action string

const (
	ActionAccess  Action = "ACCESS"
	ActionErasure Action = "ERASURE"
	ActionSeed    Action = "SEED"
)

func Actions() []Action {
	return []Action{ActionAccess, ActionErasure, ActionSeed}
}

func (a Action) Valid() bool {
	switch a {
	case ActionAccess, ActionErasure, ActionSeed:
		return true
	}
	return false
}

// ParseAction expects exactly one argument naming the action to run.
func ParseAction(args []string) (Action, error) {
	valid := validActions()
	if len(args) != 1 {
		return "", fmt.Errorf("%w: expected a single argument <action>, where <action> can be one of: %s", ErrInvalidAction, valid)
	}

	action := Action(args[0])
	if !action.Valid() {
		return "", fmt.Errorf("%w: action argument must be one of %s", ErrInvalidAction, valid)
	}

	return action, nil
}

func validActions() string {
	names := make([]string, 0, len(Actions()))
	for _, a := range Actions() {
		names = append(names, string(a))
	}
	return strings.Join(names, ", ")
}
