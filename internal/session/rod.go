package session

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

const navigateTimeout = 45 * time.Second

const highlightScript = `(xp, css) => {
	function byXPath(x) {
		try {
			return document.evaluate(x, document, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
		} catch (e) { return null; }
	}
	function mark(el) {
		if (!el) return false;
		try { el.scrollIntoView({block: 'center', inline: 'center'}); } catch (e) {}
		el.style.outline = '3px solid #6c8cff';
		el.style.background = 'rgba(108,140,255,.15)';
		return true;
	}
	var el = null;
	if (xp) { el = byXPath(xp); }
	if (!el && css) {
		try { el = document.querySelector(css); } catch (e) {}
	}
	return mark(el);
}`

const hasSelectorScript = `(sel) => document.querySelector(sel) != null`

type RodParam struct {
	// RemoteURL connects to a running Chrome instead of launching one.
	RemoteURL string
	Headless  bool
}

// RodLauncher launches (or connects to) Chrome through go-rod and opens a
// blank tab.
func RodLauncher(param RodParam) Launcher {
	return func(ctx context.Context) (Page, error) {
		var lnch *launcher.Launcher
		controlURL := param.RemoteURL
		if controlURL == "" {
			lnch = launcher.New().
				Headless(param.Headless).
				Set("disable-blink-features", "AutomationControlled")
			if !param.Headless {
				lnch = lnch.Set("start-maximized")
			}
			u, err := lnch.Launch()
			if err != nil {
				return nil, fmt.Errorf("launch: %w", err)
			}
			controlURL = u
		}

		browser := rod.New().ControlURL(controlURL)
		if err := browser.Connect(); err != nil {
			cleanup(lnch)
			return nil, fmt.Errorf("connect: %w", err)
		}

		page, err := browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
		if err != nil {
			browser.Close()
			cleanup(lnch)
			return nil, fmt.Errorf("open tab: %w", err)
		}

		return &rodPage{browser: browser, page: page, launcher: lnch}, nil
	}
}

func cleanup(lnch *launcher.Launcher) {
	if lnch != nil {
		lnch.Cleanup()
	}
}

type rodPage struct {
	browser  *rod.Browser
	page     *rod.Page
	launcher *launcher.Launcher
}

func (p *rodPage) Navigate(ctx context.Context, url string) error {
	navCtx, cancel := context.WithTimeout(ctx, navigateTimeout)
	defer cancel()

	page := p.page.Context(navCtx)
	if err := page.Navigate(url); err != nil {
		return err
	}
	// a page that never fires load is still usable
	_ = page.WaitLoad()
	return nil
}

func (p *rodPage) CurrentURL(ctx context.Context) (string, error) {
	info, err := p.page.Context(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

func (p *rodPage) HasSelector(ctx context.Context, selector string) (bool, error) {
	res, err := p.page.Context(ctx).Eval(hasSelectorScript, selector)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

func (p *rodPage) HTML(ctx context.Context) (string, error) {
	return p.page.Context(ctx).HTML()
}

func (p *rodPage) Highlight(ctx context.Context, xpath, css string) (bool, error) {
	res, err := p.page.Context(ctx).Eval(highlightScript, xpath, css)
	if err != nil {
		return false, err
	}
	return res.Value.Bool(), nil
}

func (p *rodPage) Close() error {
	err := p.browser.Close()
	cleanup(p.launcher)
	return err
}
