package driver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/storage"
	"github.com/chromedp/chromedp"

	"github.com/dannydang64/snowboard-store-sub000/internal/check"
)

type ChromeConfig struct {
	Headed            bool
	NavigationTimeout time.Duration
	WaitTimeout       time.Duration
	PollInterval      time.Duration
	ArtifactsDir      string
	Logger            *log.Logger
}

func (c *ChromeConfig) applyDefaults() {
	if c.NavigationTimeout <= 0 {
		c.NavigationTimeout = 30 * time.Second
	}
	if c.WaitTimeout <= 0 {
		c.WaitTimeout = 5 * time.Second
	}
	if c.PollInterval <= 0 {
		c.PollInterval = check.DefaultPollInterval
	}
	if c.Logger == nil {
		c.Logger = log.New(os.Stdout, "", log.LstdFlags|log.Lmicroseconds)
	}
}

var _ Driver = (*ChromeDriver)(nil)

// ChromeDriver drives a real Chrome instance over the DevTools protocol.
// One driver owns one browser tab; operations are sequential, never
// overlapping, matching the one-in-flight-operation execution model.
type ChromeDriver struct {
	cfg ChromeConfig

	browserCtx  context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
}

func NewChrome(cfg ChromeConfig) (*ChromeDriver, error) {
	cfg.applyDefaults()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", !cfg.Headed),
		chromedp.Flag("disable-gpu", true),
		chromedp.WindowSize(1280, 900),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so a missing Chrome binary fails fast.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("start chrome: %w", err)
	}

	return &ChromeDriver{
		cfg:         cfg,
		browserCtx:  tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
	}, nil
}

func (d *ChromeDriver) Navigate(ctx context.Context, url string) error {
	tctx, cancel := context.WithTimeout(d.browserCtx, d.cfg.NavigationTimeout)
	defer cancel()

	start := time.Now()
	err := chromedp.Run(tctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return &check.TimeoutError{
				Condition: fmt.Sprintf("navigation to %s", url),
				Elapsed:   time.Since(start),
			}
		}
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

func (d *ChromeDriver) CurrentURL() string {
	var loc string
	tctx, cancel := context.WithTimeout(d.browserCtx, d.cfg.WaitTimeout)
	defer cancel()
	if err := chromedp.Run(tctx, chromedp.Location(&loc)); err != nil {
		d.cfg.Logger.Printf("current url: %v", err)
		return ""
	}
	return loc
}

// matchesJS builds a JavaScript expression evaluating to the array of
// elements the locator describes. Text matching runs in the page, replacing
// any non-standard :contains() style selector.
func matchesJS(l Locator) string {
	var base string
	switch {
	case l.TestID != "":
		base = fmt.Sprintf(`document.querySelectorAll('[data-testid=%q]')`, l.TestID)
	case l.Name != "":
		base = fmt.Sprintf(`document.querySelectorAll('[name=%q]')`, l.Name)
	case l.Role != "":
		sel := map[string]string{
			"button": `button, input[type="submit"], [role="button"]`,
			"link":   `a, [role="link"]`,
		}[l.Role]
		if sel == "" {
			sel = l.Role
		}
		base = fmt.Sprintf(`document.querySelectorAll(%q)`, sel)
	default:
		base = fmt.Sprintf(`document.querySelectorAll(%q)`, l.CSS)
	}
	expr := fmt.Sprintf(`Array.from(%s)`, base)
	if l.Text != "" {
		expr = fmt.Sprintf(`%s.filter(function(e){return e.textContent.trim().indexOf(%q) !== -1})`, expr, l.Text)
	}
	return expr
}

func (d *ChromeDriver) count(ctx context.Context, l Locator) (int, error) {
	var n int
	if err := d.Evaluate(ctx, matchesJS(l)+".length", &n); err != nil {
		return 0, err
	}
	return n, nil
}

func (d *ChromeDriver) Find(ctx context.Context, l Locator) (Element, error) {
	n, err := d.count(ctx, l)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("%s: %w", l, ErrNoSuchElement)
	}
	return &chromeElement{d: d, loc: l, index: 0}, nil
}

func (d *ChromeDriver) FindAll(ctx context.Context, l Locator) ([]Element, error) {
	n, err := d.count(ctx, l)
	if err != nil {
		return nil, err
	}
	out := make([]Element, n)
	for i := range out {
		out[i] = &chromeElement{d: d, loc: l, index: i}
	}
	return out, nil
}

func (d *ChromeDriver) Click(ctx context.Context, l Locator) error {
	el, err := d.Find(ctx, l)
	if err != nil {
		return err
	}
	return el.Click(ctx)
}

func (d *ChromeDriver) Type(ctx context.Context, l Locator, value string) error {
	el, err := d.Find(ctx, l)
	if err != nil {
		return err
	}
	return el.Type(ctx, value)
}

func (d *ChromeDriver) Select(ctx context.Context, l Locator, value string) error {
	el, err := d.Find(ctx, l)
	if err != nil {
		return err
	}
	return el.Select(ctx, value)
}

func (d *ChromeDriver) Evaluate(ctx context.Context, expression string, out any) error {
	tctx, cancel := context.WithTimeout(d.browserCtx, d.cfg.WaitTimeout)
	defer cancel()
	if err := chromedp.Run(tctx, chromedp.Evaluate(expression, out)); err != nil {
		return fmt.Errorf("evaluate: %w", err)
	}
	return nil
}

func (d *ChromeDriver) WaitFor(ctx context.Context, l Locator, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = d.cfg.WaitTimeout
	}
	return check.WaitUntil(ctx, timeout, d.cfg.PollInterval, l.String(), func(ctx context.Context) (bool, error) {
		n, err := d.count(ctx, l)
		if err != nil {
			// The page may be mid-navigation; keep polling.
			return false, nil
		}
		return n > 0, nil
	})
}

func (d *ChromeDriver) Screenshot(ctx context.Context, name string) (string, error) {
	var buf []byte
	tctx, cancel := context.WithTimeout(d.browserCtx, d.cfg.NavigationTimeout)
	defer cancel()
	if err := chromedp.Run(tctx, chromedp.CaptureScreenshot(&buf)); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	path := filepath.Join(d.cfg.ArtifactsDir, sanitizeFileName(name)+".png")
	if err := os.MkdirAll(d.cfg.ArtifactsDir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot dir: %w", err)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	return path, nil
}

// Reset clears cookies so the next test starts with a fresh cart.
func (d *ChromeDriver) Reset(ctx context.Context) error {
	tctx, cancel := context.WithTimeout(d.browserCtx, d.cfg.WaitTimeout)
	defer cancel()
	if err := chromedp.Run(tctx, storage.ClearCookies()); err != nil {
		return fmt.Errorf("clear cookies: %w", err)
	}
	return nil
}

func (d *ChromeDriver) Close() error {
	d.cancelTab()
	d.cancelAlloc()
	return nil
}

type chromeElement struct {
	d     *ChromeDriver
	loc   Locator
	index int
}

func (e *chromeElement) ref() string {
	return fmt.Sprintf("%s[%d]", matchesJS(e.loc), e.index)
}

func (e *chromeElement) Text(ctx context.Context) (string, error) {
	var s string
	err := e.d.Evaluate(ctx, fmt.Sprintf(`(%s||{textContent:""}).textContent.trim()`, e.ref()), &s)
	return s, err
}

func (e *chromeElement) Attr(ctx context.Context, name string) (string, error) {
	var s string
	var expr string
	if name == "value" {
		expr = fmt.Sprintf(`(function(el){return el ? String(el.value) : ""})(%s)`, e.ref())
	} else {
		expr = fmt.Sprintf(`(function(el){return el ? (el.getAttribute(%q) || "") : ""})(%s)`, name, e.ref())
	}
	err := e.d.Evaluate(ctx, expr, &s)
	return s, err
}

func (e *chromeElement) Click(ctx context.Context) error {
	return e.d.Evaluate(ctx, fmt.Sprintf(`(function(el){if(el){el.click()}})(%s)`, e.ref()), nil)
}

func (e *chromeElement) Type(ctx context.Context, value string) error {
	js := fmt.Sprintf(
		`(function(el){if(el){el.value=%q;el.dispatchEvent(new Event("input",{bubbles:true}))}})(%s)`,
		value, e.ref())
	return e.d.Evaluate(ctx, js, nil)
}

func (e *chromeElement) Select(ctx context.Context, value string) error {
	js := fmt.Sprintf(
		`(function(el){if(el){el.value=%q;el.dispatchEvent(new Event("change",{bubbles:true}))}})(%s)`,
		value, e.ref())
	return e.d.Evaluate(ctx, js, nil)
}

func sanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-' || r == '_' || r == '.':
			return r
		default:
			return '_'
		}
	}, name)
}
