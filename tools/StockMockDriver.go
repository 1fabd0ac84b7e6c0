package tools

/*
Drives the StockMock basket page through chromedp: login, basket selection,
strategy edits, runs and metric capture. Every step waits on an observable
page condition bounded by a timeout instead of sleeping.
*/

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"stocksweep/config"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	ErrValueNotApplied   = errors.New("page did not accept value")
	errResultsNotSettled = errors.New("result view still changing")
)

// Credentials for the StockMock account. A session cookie takes precedence.
type Credentials struct {
	Phone         string
	Password      string
	SessionCookie string
}

// Leg identifies one of the strategy's two stop-loss legs
type Leg string

const (
	LegL1 Leg = "L1"
	LegL2 Leg = "L2"
)

// DriverOptions holds step bounds; zero values take the config defaults
type DriverOptions struct {
	StepTimeout    time.Duration
	RunTimeout     time.Duration
	ModalTimeout   time.Duration
	PollInterval   time.Duration
	UnchangedPolls int
}

// StockMockDriver is the chromedp page driver for one browser session
type StockMockDriver struct {
	browser *Browser
	opts    DriverOptions
	logger  zerolog.Logger
}

// Constructor
func NewStockMockDriver(browser *Browser, opts DriverOptions) *StockMockDriver {
	if opts.StepTimeout == 0 {
		opts.StepTimeout = config.StepTimeout
	}
	if opts.RunTimeout == 0 {
		opts.RunTimeout = config.RunTimeout
	}
	if opts.ModalTimeout == 0 {
		opts.ModalTimeout = config.ModalTimeout
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = config.ResultPoll
	}
	if opts.UnchangedPolls == 0 {
		opts.UnchangedPolls = config.UnchangedPolls
	}

	return &StockMockDriver{
		browser: browser,
		opts:    opts,
		logger:  log.With().Str("component", "stockmock_driver").Logger(),
	}
}

// run executes actions in the browser tab, bounded by timeout
func (d *StockMockDriver) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	stepCtx, cancel := d.browser.GetContextWithTimeout(ctx, timeout)
	defer cancel()

	err := chromedp.Run(stepCtx, actions...)
	if err != nil && errors.Is(stepCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("timed out after %s: %w", timeout, err)
	}
	return err
}

// clickIfPresent clicks an optional element (modals) and reports whether it was there
func (d *StockMockDriver) clickIfPresent(ctx context.Context, sel string) bool {
	err := d.run(ctx, d.opts.ModalTimeout,
		chromedp.WaitVisible(sel, chromedp.BySearch),
		chromedp.Click(sel, chromedp.NodeVisible, chromedp.BySearch),
	)
	return err == nil
}

// Login signs in with phone/password, or by injecting a session cookie
func (d *StockMockDriver) Login(ctx context.Context, creds Credentials) error {
	var err error
	switch {
	case creds.SessionCookie != "":
		d.logger.Info().Msg("Logging into StockMock with session cookie...")
		err = d.cookieLogin(ctx, creds.SessionCookie)
	case creds.Phone != "" && creds.Password != "":
		d.logger.Info().Str("phone", maskPhone(creds.Phone)).Msg("Logging into StockMock...")
		err = d.passwordLogin(ctx, creds)
	default:
		return errors.New("login: no credentials (set STOCKMOCK_PHONE and STOCKMOCK_PASSWORD, or STOCKMOCK_SESSION_COOKIE)")
	}
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	if d.clickIfPresent(ctx, config.CloseModalSelector) {
		d.logger.Debug().Msg("Closed post-login modal")
	}

	// Logged-in state: the basket link is reachable
	if err := d.run(ctx, d.opts.StepTimeout, chromedp.WaitVisible(config.BasketNavSelector, chromedp.BySearch)); err != nil {
		return fmt.Errorf("login: basket navigation not visible: %w", err)
	}
	d.logger.Info().Msg("Logged in")
	return nil
}

func (d *StockMockDriver) passwordLogin(ctx context.Context, creds Credentials) error {
	return d.run(ctx, d.opts.StepTimeout,
		chromedp.Navigate(config.BaseURL),
		chromedp.WaitVisible(config.PhoneInputSelector, chromedp.BySearch),
		chromedp.Clear(config.PhoneInputSelector, chromedp.BySearch),
		chromedp.SendKeys(config.PhoneInputSelector, creds.Phone, chromedp.BySearch),
		chromedp.WaitVisible(config.PasswordInputSelector, chromedp.BySearch),
		chromedp.Clear(config.PasswordInputSelector, chromedp.BySearch),
		chromedp.SendKeys(config.PasswordInputSelector, creds.Password, chromedp.BySearch),
		chromedp.Click(config.LoginButtonSelector, chromedp.NodeVisible, chromedp.BySearch),
		chromedp.WaitNotPresent(config.PasswordInputSelector, chromedp.BySearch),
	)
}

func (d *StockMockDriver) cookieLogin(ctx context.Context, cookie string) error {
	return d.run(ctx, d.opts.StepTimeout,
		chromedp.Navigate(config.BaseURL),

		// Set the authentication cookie
		chromedp.ActionFunc(func(ctx context.Context) error {
			return network.SetCookies([]*network.CookieParam{
				{
					Name:   config.SessionCookieName,
					Value:  cookie,
					Domain: config.SessionCookieDomain,
					Path:   "/",
					Secure: true,
				},
			}).Do(ctx)
		}),

		// Reload to apply the cookie
		chromedp.Reload(),
	)
}

// OpenBasket selects the saved basket and applies the day filter
func (d *StockMockDriver) OpenBasket(ctx context.Context, basketID string) error {
	if basketID == "" || strings.ContainsAny(basketID, `'"`) {
		return fmt.Errorf("open basket: invalid basket id %q", basketID)
	}
	d.logger.Info().Str("basket", basketID).Msg("Opening basket...")

	basketSel := fmt.Sprintf(config.BasketItemSelector, basketID)
	err := d.run(ctx, d.opts.StepTimeout,
		chromedp.Click(config.BasketNavSelector, chromedp.NodeVisible, chromedp.BySearch),
		chromedp.Click(basketSel, chromedp.NodeVisible, chromedp.BySearch),
		chromedp.WaitVisible(config.EditStrategySelector, chromedp.BySearch),
	)
	if err != nil {
		return fmt.Errorf("open basket %s: %w", basketID, err)
	}

	// Not fatal: the basket still runs with whatever filter it was saved with
	if _, err := d.selectOption(ctx, config.DayFilterSelector, true, config.DayFilterOption); err != nil {
		d.logger.Warn().Err(err).Str("option", config.DayFilterOption).Msg("Could not set day filter")
	} else {
		d.logger.Info().Str("option", config.DayFilterOption).Msg("Day filter set")
	}
	return nil
}

// EditStrategy opens the edit form of the basket's first strategy
func (d *StockMockDriver) EditStrategy(ctx context.Context) error {
	err := d.run(ctx, d.opts.StepTimeout,
		chromedp.Click(config.EditStrategySelector, chromedp.NodeVisible, chromedp.BySearch),
		chromedp.WaitVisible(config.L1StopLossSelector, chromedp.BySearch),
	)
	if err != nil {
		return fmt.Errorf("edit strategy: %w", err)
	}
	return nil
}

// SetStrategyParameter writes the SL % of one leg
func (d *StockMockDriver) SetStrategyParameter(ctx context.Context, leg Leg, percent int) error {
	var sel string
	switch leg {
	case LegL1:
		sel = config.L1StopLossSelector
	case LegL2:
		sel = config.L2StopLossSelector
	default:
		return fmt.Errorf("set SL %%: unknown leg %q", leg)
	}

	want := strconv.Itoa(percent)
	var got string
	err := d.run(ctx, d.opts.StepTimeout,
		chromedp.WaitVisible(sel, chromedp.BySearch),
		chromedp.Evaluate(setInputScript(sel, want), &got),
	)
	if err != nil {
		return fmt.Errorf("set %s SL %%: %w", leg, err)
	}
	if got != want {
		return fmt.Errorf("set %s SL %% to %s (field shows %q): %w", leg, want, got, ErrValueNotApplied)
	}
	d.logger.Debug().Str("leg", string(leg)).Int("sl_percent", percent).Msg("SL % set")
	return nil
}

// SetEntryTime picks hour and minute in the entry time dropdowns
func (d *StockMockDriver) SetEntryTime(ctx context.Context, hour, minute int) error {
	if err := d.selectExact(ctx, config.EntryHourSelector, strconv.Itoa(hour), fmt.Sprintf("%02d", hour)); err != nil {
		return fmt.Errorf("set entry hour: %w", err)
	}
	if err := d.selectExact(ctx, config.EntryMinuteSelector, strconv.Itoa(minute), fmt.Sprintf("%02d", minute)); err != nil {
		return fmt.Errorf("set entry minute: %w", err)
	}
	d.logger.Debug().Str("entry_time", Clock{hour, minute}.String()).Msg("Entry time set")
	return nil
}

// SaveStrategy saves the edit form and confirms the update modal when shown
func (d *StockMockDriver) SaveStrategy(ctx context.Context) error {
	err := d.run(ctx, d.opts.StepTimeout,
		chromedp.Click(config.SaveStrategySelector, chromedp.NodeVisible, chromedp.BySearch),
	)
	if err != nil {
		return fmt.Errorf("save strategy: %w", err)
	}

	if d.clickIfPresent(ctx, config.ConfirmUpdateSelector) {
		d.logger.Debug().Msg("Confirmed strategy update")
	}

	if err := d.run(ctx, d.opts.StepTimeout, chromedp.WaitVisible(config.RunStrategySelector, chromedp.BySearch)); err != nil {
		return fmt.Errorf("save strategy: basket view did not return: %w", err)
	}
	return nil
}

// RunStrategy starts a run and waits until the result view settles
func (d *StockMockDriver) RunStrategy(ctx context.Context) error {
	// Without the pre-run view the previous run's cards would pass as new ones
	before, err := d.readResultView(ctx)
	if err != nil {
		return fmt.Errorf("run strategy: snapshot: %w", err)
	}

	err = d.run(ctx, d.opts.StepTimeout,
		chromedp.Click(config.RunStrategySelector, chromedp.NodeVisible, chromedp.BySearch),
	)
	if err != nil {
		return fmt.Errorf("run strategy: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, d.opts.RunTimeout)
	defer cancel()

	watcher := NewResultWatcher(before, d.opts.UnchangedPolls)
	polls, err := awaitSettled(runCtx, watcher, d.opts.PollInterval, d.readResultView)
	if err != nil {
		return fmt.Errorf("run strategy: results not ready within %s: %w", d.opts.RunTimeout, err)
	}
	d.logger.Debug().Int("polls", polls).Msg("Result view settled")
	return nil
}

// awaitSettled polls read every interval until watcher reports the view
// settled or ctx ends. Returns the number of polls taken.
func awaitSettled(ctx context.Context, watcher *ResultWatcher, interval time.Duration, read func(context.Context) (string, error)) (int, error) {
	polls := 0
	operation := func() error {
		polls++
		view, err := read(ctx)
		if err != nil {
			return err
		}
		if !watcher.Observe(view) {
			return errResultsNotSettled
		}
		return nil
	}

	poll := backoff.WithContext(backoff.NewConstantBackOff(interval), ctx)
	err := backoff.Retry(operation, poll)
	return polls, err
}

// CaptureMetric reads one metric card from the current result view
func (d *StockMockDriver) CaptureMetric(ctx context.Context, name string) (string, error) {
	view, err := d.readResultView(ctx)
	if err != nil {
		return "", fmt.Errorf("capture %s: %w", name, err)
	}
	cards, err := ParseResultCards(view)
	if err != nil {
		return "", fmt.Errorf("capture %s: %w", name, err)
	}
	return FindMetric(cards, name)
}

// readResultView returns the markup of all result cards, or "" when none are rendered
func (d *StockMockDriver) readResultView(ctx context.Context) (string, error) {
	var view string
	script := fmt.Sprintf(`Array.from(document.querySelectorAll(%s)).map(c => c.outerHTML).join("")`,
		jsString(config.ResultCardQuery))
	err := d.run(ctx, d.opts.StepTimeout, chromedp.Evaluate(script, &view))
	return view, err
}

// selectOption picks the first option of a <select> matching one of wants,
// by value, then by exact text. A loose match also accepts text containing
// the first want. Returns the value the select ended up with.
func (d *StockMockDriver) selectOption(ctx context.Context, sel string, loose bool, wants ...string) (string, error) {
	var got string
	err := d.run(ctx, d.opts.StepTimeout,
		chromedp.WaitVisible(sel, chromedp.BySearch),
		chromedp.Evaluate(selectOptionScript(sel, wants, loose), &got),
	)
	if err != nil {
		return "", err
	}
	if got == "" {
		return "", fmt.Errorf("option %v: %w", wants, ErrValueNotApplied)
	}
	return got, nil
}

// selectExact selects one of wants and fails unless the select reads back one of them
func (d *StockMockDriver) selectExact(ctx context.Context, sel string, wants ...string) error {
	got, err := d.selectOption(ctx, sel, false, wants...)
	if err != nil {
		return err
	}
	if !slices.Contains(wants, got) {
		return fmt.Errorf("option %v (select shows %q): %w", wants, got, ErrValueNotApplied)
	}
	return nil
}

func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func jsStrings(ss []string) string {
	b, _ := json.Marshal(ss)
	return string(b)
}

// Sets a (framework-controlled) input through the native setter so the
// page's own listeners see input/change events. Returns the field's value.
func setInputScript(xpath, value string) string {
	return fmt.Sprintf(`(() => {
	const el = document.evaluate(%s, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
	if (!el) return "";
	el.scrollIntoView({block: "center"});
	el.focus();
	const setter = Object.getOwnPropertyDescriptor(Object.getPrototypeOf(el), "value").set;
	setter.call(el, "");
	el.dispatchEvent(new Event("input", {bubbles: true}));
	setter.call(el, %s);
	el.dispatchEvent(new Event("input", {bubbles: true}));
	el.dispatchEvent(new Event("change", {bubbles: true}));
	el.blur();
	return String(el.value);
})()`, jsString(xpath), jsString(value))
}

// Picks a <select> option and fires change. Returns the selected option's
// value, or its text when the value is not one of wants; "" if nothing matched.
func selectOptionScript(xpath string, wants []string, loose bool) string {
	return fmt.Sprintf(`(() => {
	const el = document.evaluate(%s, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
	if (!el || !el.options) return "";
	const wants = %s;
	const loose = %t;
	const opts = Array.from(el.options);
	const opt = opts.find(o => wants.includes(o.value))
		|| opts.find(o => wants.includes(o.text.trim()))
		|| (loose && opts.find(o => o.text.includes(wants[0])));
	if (!opt) return "";
	el.scrollIntoView({block: "center"});
	const setter = Object.getOwnPropertyDescriptor(Object.getPrototypeOf(el), "value").set;
	setter.call(el, opt.value);
	el.dispatchEvent(new Event("input", {bubbles: true}));
	el.dispatchEvent(new Event("change", {bubbles: true}));
	const cur = el.options[el.selectedIndex];
	if (!cur) return "";
	return wants.includes(cur.value) ? cur.value : cur.text.trim();
})()`, jsString(xpath), jsStrings(wants), loose)
}

func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}
