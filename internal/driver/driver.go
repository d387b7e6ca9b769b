// Package driver is the framework's polymorphism point: one navigation and
// element-interaction contract with two backends. ChromeDriver drives a real
// browser over the DevTools protocol; SimDriver replays the same interface
// against the in-memory store. Page objects only ever see the interface, so
// test specifications run unchanged under either backend.
package driver

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNoSuchElement is returned by Find when a locator matches nothing.
var ErrNoSuchElement = errors.New("no such element")

// ErrUnsupported marks operations a backend cannot perform, such as
// JavaScript evaluation against the simulated backend.
var ErrUnsupported = errors.New("operation not supported by this driver")

// Locator is a structured element descriptor. Exactly one of TestID, CSS or
// Name should be set, optionally combined with a Role+Text matcher. There is
// no string-based pseudo-selector syntax; each backend resolves the
// descriptor itself.
type Locator struct {
	TestID string // matches [data-testid=...]
	CSS    string // raw CSS selector, live backend only as a last resort
	Name   string // form field name
	Role   string // "button" or "link"
	Text   string // substring the element's text must contain
}

func ByTestID(id string) Locator       { return Locator{TestID: id} }
func ByName(name string) Locator       { return Locator{Name: name} }
func ByCSS(selector string) Locator    { return Locator{CSS: selector} }
func ByRole(role, text string) Locator { return Locator{Role: role, Text: text} }

func (l Locator) String() string {
	switch {
	case l.TestID != "":
		return fmt.Sprintf("testid=%s", l.TestID)
	case l.Name != "":
		return fmt.Sprintf("name=%s", l.Name)
	case l.Role != "":
		return fmt.Sprintf("role=%s[text~%q]", l.Role, l.Text)
	default:
		return fmt.Sprintf("css=%s", l.CSS)
	}
}

// Element is a handle on one resolved element. Handles are cheap and not
// kept across navigations.
type Element interface {
	Text(ctx context.Context) (string, error)
	Attr(ctx context.Context, name string) (string, error)
	Click(ctx context.Context) error
	Type(ctx context.Context, value string) error
	Select(ctx context.Context, value string) error
}

// Driver is the dual-mode page automation contract.
type Driver interface {
	// Navigate loads the url and blocks until the page has settled.
	Navigate(ctx context.Context, url string) error
	// CurrentURL reports where the driver currently is, including any
	// redirect the navigation triggered.
	CurrentURL() string

	Find(ctx context.Context, l Locator) (Element, error)
	FindAll(ctx context.Context, l Locator) ([]Element, error)

	Click(ctx context.Context, l Locator) error
	Type(ctx context.Context, l Locator, value string) error
	Select(ctx context.Context, l Locator, value string) error

	// Evaluate runs a JavaScript expression and decodes the result into
	// out. The simulated backend returns ErrUnsupported.
	Evaluate(ctx context.Context, expression string, out any) error

	// WaitFor polls until the locator matches at least one element or the
	// timeout elapses, returning a TimeoutError naming the locator.
	WaitFor(ctx context.Context, l Locator, timeout time.Duration) error

	// Screenshot captures the current page state into the artifacts
	// directory and returns the written path.
	Screenshot(ctx context.Context, name string) (string, error)

	// Reset clears per-test browser state (cart cookie, form state) so the
	// next test starts clean.
	Reset(ctx context.Context) error

	Close() error
}
