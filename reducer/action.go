package reducer

// Action is a plain action descriptor.
type Action struct {
	Type    string `json:"type" yaml:"type"`
	Payload any    `json:"payload,omitempty" yaml:"payload,omitempty"`
}

// Init is the reserved type of the bootstrap action a store dispatches when
// it starts without an initial state.
const Init = "__INIT__"

// IsType reports whether action is an Action (or *Action) of type typ.
func IsType(action any, typ string) bool {
	switch a := action.(type) {
	case Action:
		return a.Type == typ
	case *Action:
		return a != nil && a.Type == typ
	}
	return false
}

// TypeOf returns the type of a plain action, or "" for any other shape.
func TypeOf(action any) string {
	switch a := action.(type) {
	case Action:
		return a.Type
	case *Action:
		if a != nil {
			return a.Type
		}
	}
	return ""
}

// PayloadOf returns the payload of a plain action when it has type T.
func PayloadOf[T any](action any) (T, bool) {
	var payload any
	switch a := action.(type) {
	case Action:
		payload = a.Payload
	case *Action:
		if a != nil {
			payload = a.Payload
		}
	}
	v, ok := payload.(T)
	return v, ok
}
