package rod

import (
	"errors"
	"fmt"
	"sync"

	"github.com/fwojciec/linkid"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is the default number of pages a browser serves before it
// is replaced.
const DefaultMaxPages = 75

// instance is one launched browser process.
type instance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher

	pages   int
	open    int
	retired bool
	closed  bool
}

func (i *instance) close() error {
	if i.closed {
		return nil
	}
	i.closed = true
	var err error
	if i.browser != nil {
		err = i.browser.Close()
	}
	if i.launcher != nil {
		i.launcher.Kill()
	}
	return err
}

// browserPool keeps one live browser per proxy. A browser that has served
// maxPages pages is retired on the next acquire: new pages go to a fresh
// browser while the retired one closes once its open pages are released.
type browserPool struct {
	maxPages int
	launch   func(proxy string) (*instance, error)

	mu      sync.Mutex
	current map[string]*instance
	closed  bool
}

func newBrowserPool(maxPages int) *browserPool {
	return &browserPool{
		maxPages: maxPages,
		launch:   launchBrowser,
		current:  make(map[string]*instance),
	}
}

// acquire returns the browser for proxy, launching or replacing it as
// needed. release must be called once the page opened on it is closed.
func (p *browserPool) acquire(proxy string) (browser *rod.Browser, release func(), err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil, nil, linkid.Errorf(linkid.EINVALID, "requester is closed")
	}

	inst := p.current[proxy]
	if inst != nil && p.maxPages > 0 && inst.pages >= p.maxPages {
		// A failed relaunch keeps the worn browser in service.
		if next, err := p.launch(proxy); err == nil {
			p.retire(inst)
			p.current[proxy] = next
			inst = next
		}
	}
	if inst == nil {
		inst, err = p.launch(proxy)
		if err != nil {
			return nil, nil, linkid.Errorf(linkid.EUNAVAILABLE, "%v", err)
		}
		p.current[proxy] = inst
	}

	inst.pages++
	inst.open++
	return inst.browser, func() { p.release(inst) }, nil
}

func (p *browserPool) release(inst *instance) {
	p.mu.Lock()
	defer p.mu.Unlock()

	inst.open--
	if inst.retired && inst.open == 0 {
		_ = inst.close()
	}
}

// retire must be called with mu held.
func (p *browserPool) retire(inst *instance) error {
	inst.retired = true
	if inst.open > 0 {
		return nil
	}
	return inst.close()
}

// close retires every browser. Browsers with open pages close when the
// last page is released.
func (p *browserPool) close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true
	var errs []error
	for proxy, inst := range p.current {
		if err := p.retire(inst); err != nil {
			errs = append(errs, err)
		}
		delete(p.current, proxy)
	}
	return errors.Join(errs...)
}

// launchBrowser starts headless Chrome routed through proxy. An empty proxy
// means a direct connection.
func launchBrowser(proxy string) (*instance, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)
	if proxy != "" {
		l = l.Proxy(proxy)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return &instance{browser: browser, launcher: l}, nil
}
