package cli

// Decision is the route guard's verdict for a protected view.
type Decision int

const (
	// DecisionShowLoading: startup hydration has not finished. Render a
	// neutral loading state; redirecting now would bounce an already
	// logged-in user to the login view before storage has been read.
	DecisionShowLoading Decision = iota
	// DecisionRedirectLogin: not authenticated, send the user to login.
	DecisionRedirectLogin
	// DecisionRender: the protected view may render.
	DecisionRender
)

// Guard is a pure predicate over session state deciding whether a protected
// view may render.
func Guard(authenticated, loading bool) Decision {
	if loading {
		return DecisionShowLoading
	}
	if !authenticated {
		return DecisionRedirectLogin
	}
	return DecisionRender
}
