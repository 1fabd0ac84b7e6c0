package tools

/*
Stores list of ChromeDP flags for the StockMock browser window
*/

import (
	"stocksweep/config"

	"github.com/chromedp/chromedp"
)

// Flag list for a long-running sweep session. Headful by default so the
// run can be watched; the site renders results with JS, so keep it on.
func SweepFlags(headless bool) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		// Core flags
		chromedp.Flag("headless", headless),
		chromedp.Flag("disable-gpu", headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("start-maximized", true),
		chromedp.WindowSize(1920, 1080),

		// Keep the tab responsive when it is not focused
		chromedp.Flag("disable-background-timer-throttling", true),
		chromedp.Flag("disable-renderer-backgrounding", true),
		chromedp.Flag("disable-backgrounding-occluded-windows", true),

		// Disable unnecessary features
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-plugins", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-audio-output", true),
		chromedp.Flag("disable-client-side-phishing-detection", true),

		// Automation fingerprint
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("exclude-switches", "enable-automation"),

		// User agent
		chromedp.UserAgent(config.UserAgent),
	)

	return opts
}
