package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dannydang64/snowboard-store-sub000/internal/check"
	"github.com/dannydang64/snowboard-store-sub000/internal/store"
)

var _ Driver = (*SimDriver)(nil)

// SimDriver satisfies the Driver contract without a browser. It tracks a
// current URL and synthesizes the elements the storefront would render at
// that URL directly from the in-memory store. Clicking a control performs
// the same store mutation and URL transition the live application would, so
// page objects observe equivalent behavior under both backends.
type SimDriver struct {
	store        *store.Store
	baseURL      string
	log          *log.Logger
	artifactsDir string

	current  *url.URL
	cartID   string
	fields   map[string]string // transient input state of the current page
	checkout *simCheckout
}

type simCheckout struct {
	step    int
	reached int
	fields  map[string]string
}

const (
	simStepInformation = iota
	simStepShipping
	simStepPayment
)

var simStepNames = [...]string{"information", "shipping", "payment"}

func simParseStep(name string) int {
	for i, n := range simStepNames {
		if n == name {
			return i
		}
	}
	return simStepInformation
}

type SimConfig struct {
	BaseURL      string
	ArtifactsDir string
	Logger       *log.Logger
}

func NewSim(s *store.Store, cfg SimConfig) *SimDriver {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://storefront.sim"
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)
	}
	return &SimDriver{
		store:        s,
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		log:          cfg.Logger,
		artifactsDir: cfg.ArtifactsDir,
		fields:       make(map[string]string),
	}
}

// Store exposes the backing store so suites can seed or inspect state the
// way API-level setup would.
func (d *SimDriver) Store() *store.Store { return d.store }

func (d *SimDriver) Navigate(_ context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("navigate %s: %w", rawURL, err)
	}
	d.setLocation(u.Path, u.Query())
	return nil
}

// setLocation is the single place the simulated location changes. It applies
// the storefront's redirect rules, mirroring the live server.
func (d *SimDriver) setLocation(path string, query url.Values) {
	d.fields = make(map[string]string) // DOM input state does not survive navigation

	if path == "" {
		path = "/"
	}

	if path == "/checkout" {
		cart, err := d.currentCart()
		if err != nil || len(cart.Items) == 0 {
			d.current = &url.URL{Path: "/cart"}
			return
		}
		if d.checkout == nil {
			d.checkout = &simCheckout{fields: make(map[string]string)}
		}
		step := simParseStep(query.Get("step"))
		if step > d.checkout.reached {
			step = d.checkout.reached
		}
		d.checkout.step = step
		q := url.Values{"step": {simStepNames[step]}}
		d.current = &url.URL{Path: "/checkout", RawQuery: q.Encode()}
		return
	}

	d.current = &url.URL{Path: path, RawQuery: query.Encode()}
}

func (d *SimDriver) CurrentURL() string {
	if d.current == nil {
		return ""
	}
	return d.baseURL + d.current.String()
}

func (d *SimDriver) location() string {
	if d.current == nil {
		return "(no page)"
	}
	return d.current.String()
}

func (d *SimDriver) currentCart() (store.Cart, error) {
	if d.cartID == "" {
		return store.Cart{}, fmt.Errorf("no cart: %w", store.ErrNotFound)
	}
	return d.store.GetCart(d.cartID)
}

func (d *SimDriver) resolve(l Locator) ([]*simNode, error) {
	if l.CSS != "" {
		return nil, fmt.Errorf("css locator %q: %w", l.CSS, ErrUnsupported)
	}
	var out []*simNode
	for _, n := range d.pageNodes() {
		if n.matches(l) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (d *SimDriver) Find(ctx context.Context, l Locator) (Element, error) {
	nodes, err := d.resolve(l)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%s at %s: %w", l, d.location(), ErrNoSuchElement)
	}
	return &simElement{d: d, node: nodes[0]}, nil
}

func (d *SimDriver) FindAll(ctx context.Context, l Locator) ([]Element, error) {
	nodes, err := d.resolve(l)
	if err != nil {
		return nil, err
	}
	out := make([]Element, len(nodes))
	for i, n := range nodes {
		out[i] = &simElement{d: d, node: n}
	}
	return out, nil
}

func (d *SimDriver) Click(ctx context.Context, l Locator) error {
	el, err := d.Find(ctx, l)
	if err != nil {
		return err
	}
	return el.Click(ctx)
}

func (d *SimDriver) Type(ctx context.Context, l Locator, value string) error {
	el, err := d.Find(ctx, l)
	if err != nil {
		return err
	}
	return el.Type(ctx, value)
}

func (d *SimDriver) Select(ctx context.Context, l Locator, value string) error {
	el, err := d.Find(ctx, l)
	if err != nil {
		return err
	}
	return el.Select(ctx, value)
}

func (d *SimDriver) Evaluate(context.Context, string, any) error {
	return fmt.Errorf("javascript evaluation: %w", ErrUnsupported)
}

// WaitFor needs no polling: simulated state only changes through driver
// calls, and those never run concurrently with a wait.
func (d *SimDriver) WaitFor(ctx context.Context, l Locator, timeout time.Duration) error {
	nodes, err := d.resolve(l)
	if err != nil {
		return err
	}
	if len(nodes) > 0 {
		return nil
	}
	return &check.TimeoutError{Condition: l.String() + " at " + d.location(), Elapsed: 0}
}

// Screenshot has no pixels to capture; it writes a state dump so failures
// in mock mode still leave a useful artifact.
func (d *SimDriver) Screenshot(_ context.Context, name string) (string, error) {
	type dump struct {
		URL      string      `json:"url"`
		CartID   string      `json:"cartId"`
		Cart     *store.Cart `json:"cart,omitempty"`
		Checkout any         `json:"checkoutFields,omitempty"`
	}
	st := dump{URL: d.CurrentURL(), CartID: d.cartID}
	if c, err := d.currentCart(); err == nil {
		st.Cart = &c
	}
	if d.checkout != nil {
		st.Checkout = d.checkout.fields
	}

	if err := os.MkdirAll(d.artifactsDir, 0o755); err != nil {
		return "", fmt.Errorf("artifacts dir: %w", err)
	}
	path := filepath.Join(d.artifactsDir, sanitizeFileName(name)+".json")
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode state dump: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write state dump: %w", err)
	}
	return path, nil
}

// Reset is the simulated equivalent of clearing browser cookies: the driver
// forgets its cart and any in-flight checkout. Store state is owned by the
// runner.
func (d *SimDriver) Reset(context.Context) error {
	d.cartID = ""
	d.checkout = nil
	d.fields = make(map[string]string)
	d.current = nil
	return nil
}

func (d *SimDriver) Close() error { return nil }

func (d *SimDriver) setField(name, value string) {
	d.fields[name] = value
}

// simNode is one synthetic element of the current virtual page.
type simNode struct {
	testID   string
	name     string // form field name, when the node is an input
	role     string // "button" or "link"
	text     string
	value    string // rendered input value before any typing
	attrs    map[string]string
	disabled bool
	click    func(ctx context.Context) error
}

func (n *simNode) matches(l Locator) bool {
	switch {
	case l.TestID != "":
		return n.testID == l.TestID
	case l.Name != "":
		return n.name == l.Name
	case l.Role != "":
		return n.role == l.Role && (l.Text == "" || strings.Contains(n.text, l.Text))
	default:
		return false
	}
}

type simElement struct {
	d    *SimDriver
	node *simNode
}

func (e *simElement) Text(context.Context) (string, error) {
	return e.node.text, nil
}

func (e *simElement) Attr(_ context.Context, name string) (string, error) {
	if name == "value" {
		if e.node.name != "" {
			if v, ok := e.d.fields[e.node.name]; ok {
				return v, nil
			}
		}
		return e.node.value, nil
	}
	return e.node.attrs[name], nil
}

func (e *simElement) Click(ctx context.Context) error {
	if e.node.disabled {
		return nil // clicking a disabled control is a no-op, as in a browser
	}
	if e.node.click == nil {
		return nil
	}
	return e.node.click(ctx)
}

func (e *simElement) Type(_ context.Context, value string) error {
	if e.node.name == "" {
		return fmt.Errorf("type into non-input %s: %w", e.node.testID, ErrUnsupported)
	}
	e.d.setField(e.node.name, value)
	return nil
}

func (e *simElement) Select(ctx context.Context, value string) error {
	return e.Type(ctx, value)
}
