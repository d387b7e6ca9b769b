package httpapi

// The checkout flow is a strict forward-only sequence:
// information -> shipping -> payment -> confirmation. A session keeps every
// field entered so far, so stepping back re-renders the previous form with
// its values intact, and a direct jump past the furthest reached step is
// bounced back.

type checkoutStep int

const (
	stepInformation checkoutStep = iota
	stepShipping
	stepPayment
)

var stepNames = [...]string{"information", "shipping", "payment"}

func (s checkoutStep) Name() string {
	if s < stepInformation || int(s) >= len(stepNames) {
		return "information"
	}
	return stepNames[s]
}

func parseStep(name string) (checkoutStep, bool) {
	for i, n := range stepNames {
		if n == name {
			return checkoutStep(i), true
		}
	}
	return stepInformation, false
}

type checkoutSession struct {
	fields  map[string]string
	reached checkoutStep
}

func newCheckoutSession() *checkoutSession {
	return &checkoutSession{fields: make(map[string]string)}
}

func (cs *checkoutSession) set(name, value string) {
	cs.fields[name] = value
}

func (cs *checkoutSession) get(name string) string {
	return cs.fields[name]
}

func (cs *checkoutSession) advanceTo(s checkoutStep) {
	if s > cs.reached {
		cs.reached = s
	}
}

// clamp returns the step the session is actually allowed to show.
func (cs *checkoutSession) clamp(requested checkoutStep) checkoutStep {
	if requested > cs.reached {
		return cs.reached
	}
	return requested
}
