package app

// Action is the operation selected on the command line.
type Action int

const (
	ActionInfo Action = iota
	ActionList
	ActionDump
	ActionBypass
)

func (a Action) String() string {
	switch a {
	case ActionList:
		return "list"
	case ActionDump:
		return "dump"
	case ActionBypass:
		return "bypass"
	default:
		return "info"
	}
}

// Privileged reports whether the action must pass the authorization gate.
func (a Action) Privileged() bool {
	return a == ActionDump || a == ActionBypass
}

// Request is everything a run needs, fixed before anything executes.
type Request struct {
	Action    Action
	Serial    string
	Key       string
	PromptKey bool
}

// SelectAction applies the precedence list > info > dump > bypass; with no
// action flag the run shows device info.
func SelectAction(list, info, dump, bypass bool) Action {
	switch {
	case list:
		return ActionList
	case info:
		return ActionInfo
	case dump:
		return ActionDump
	case bypass:
		return ActionBypass
	default:
		return ActionInfo
	}
}
