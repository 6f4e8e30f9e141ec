package dashboard

// ViewState is the render phase of a dashboard component. Loading is a
// client-side phase and is never produced here.
type ViewState string

const (
	ViewStateEmpty     ViewState = "empty"
	ViewStatePopulated ViewState = "populated"
)

func stateOf(empty bool) ViewState {
	if empty {
		return ViewStateEmpty
	}
	return ViewStatePopulated
}
