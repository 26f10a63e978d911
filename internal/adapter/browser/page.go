// Package browser drives the live BOJ status page over the DevTools protocol.
package browser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"boj-notion/internal/domain/model"
	"boj-notion/internal/domain/ports"
)

// DefaultStatusURL is the judge's status listing.
const DefaultStatusURL = "https://www.acmicpc.net/status"

const eventBuffer = 32

// ErrNotOpen is returned when the page is used before Open.
var ErrNotOpen = errors.New("status page is not open")

// Config selects the browser to drive and the page to watch.
type Config struct {
	// ControlURL attaches to a running Chrome; empty launches one.
	ControlURL string
	Headless   bool
	StatusURL  string
}

// StatusPage is the watched status page. It streams first-row snapshots,
// shows toasts and can be reloaded.
type StatusPage struct {
	cfg    Config
	logger ports.Logger

	mu       sync.Mutex
	browser  *rod.Browser
	page     *rod.Page
	launched bool
}

var (
	_ ports.RowSource = (*StatusPage)(nil)
	_ ports.Notifier  = (*StatusPage)(nil)
)

// New creates a StatusPage; call Open before use.
func New(cfg Config, logger ports.Logger) *StatusPage {
	if cfg.StatusURL == "" {
		cfg.StatusURL = DefaultStatusURL
	}
	return &StatusPage{cfg: cfg, logger: logger}
}

// Open connects to Chrome and navigates to the status page.
func (p *StatusPage) Open(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.page != nil {
		return nil
	}

	controlURL := p.cfg.ControlURL
	launched := false
	if controlURL == "" {
		u, err := launcher.New().Headless(p.cfg.Headless).Launch()
		if err != nil {
			return fmt.Errorf("launch chrome: %w", err)
		}
		controlURL = u
		launched = true
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connect to chrome: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: p.cfg.StatusURL})
	if err != nil {
		_ = browser.Close()
		return fmt.Errorf("open status page: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		_ = browser.Close()
		return fmt.Errorf("wait for status page: %w", err)
	}

	p.browser = browser
	p.page = page
	p.launched = launched
	p.logger.Info(ctx, "status page opened", "url", p.cfg.StatusURL, "launched", launched)
	return nil
}

// Subscribe exposes the row binding and installs the table observer on the
// current and every future document of the page. Snapshots are dropped when
// the consumer falls behind by more than the buffer.
func (p *StatusPage) Subscribe(ctx context.Context) (<-chan model.RowSnapshot, error) {
	page, err := p.current()
	if err != nil {
		return nil, err
	}

	stream := newRowStream(eventBuffer)

	stopBinding, err := page.Expose(bindingName, func(v gson.JSON) (interface{}, error) {
		row, err := decodeRow(v)
		if err != nil {
			p.logger.Error(ctx, "undecodable status row", "error", err)
			return nil, nil
		}
		if !stream.push(row) {
			p.logger.Error(ctx, "status row dropped", "row", row.RowID)
		}
		return nil, nil
	})
	if err != nil {
		return nil, fmt.Errorf("expose row binding: %w", err)
	}

	removeScript, err := page.EvalOnNewDocument("(" + observerJS + ")()")
	if err != nil {
		_ = stopBinding()
		return nil, fmt.Errorf("install observer script: %w", err)
	}
	if _, err := page.Eval(observerJS); err != nil {
		_ = removeScript()
		_ = stopBinding()
		return nil, fmt.Errorf("install observer: %w", err)
	}

	go func() {
		<-ctx.Done()
		_ = removeScript()
		_ = stopBinding()
		stream.close()
	}()

	p.logger.Info(ctx, "status table observer installed")
	return stream.ch, nil
}

// Reload reloads the status page and waits for it to load. A fresh document
// gets the observer through the new-document script.
func (p *StatusPage) Reload(ctx context.Context) error {
	page, err := p.current()
	if err != nil {
		return err
	}
	page = page.Context(ctx)
	if err := page.Reload(); err != nil {
		return fmt.Errorf("reload status page: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("wait for status page: %w", err)
	}
	p.logger.Info(ctx, "status page reloaded")
	return nil
}

// Notify shows n as a toast on the page. It does nothing while the page is
// not open, as happens for one-shot CLI runs.
func (p *StatusPage) Notify(ctx context.Context, n model.Notification) error {
	page, err := p.current()
	if errors.Is(err, ErrNotOpen) {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := page.Context(ctx).Eval(toastJS, n.Message, string(n.Level)); err != nil {
		return fmt.Errorf("show toast: %w", err)
	}
	return nil
}

// Close closes the tab and, when it was launched here, the browser.
func (p *StatusPage) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.page == nil {
		return nil
	}
	var err error
	if p.launched {
		err = p.browser.Close()
	} else {
		err = p.page.Close()
	}
	p.page = nil
	p.browser = nil
	return err
}

func (p *StatusPage) current() (*rod.Page, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.page == nil {
		return nil, ErrNotOpen
	}
	return p.page, nil
}

func decodeRow(v gson.JSON) (model.RowSnapshot, error) {
	var row model.RowSnapshot
	data, err := v.MarshalJSON()
	if err != nil {
		return row, fmt.Errorf("encode row: %w", err)
	}
	if err := json.Unmarshal(data, &row); err != nil {
		return row, fmt.Errorf("decode row: %w", err)
	}
	return row, nil
}

// rowStream is a channel that can be pushed to after it is closed.
type rowStream struct {
	mu     sync.Mutex
	ch     chan model.RowSnapshot
	closed bool
}

func newRowStream(size int) *rowStream {
	return &rowStream{ch: make(chan model.RowSnapshot, size)}
}

// push reports false when the row was not delivered.
func (s *rowStream) push(row model.RowSnapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	select {
	case s.ch <- row:
		return true
	default:
		return false
	}
}

func (s *rowStream) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.ch)
	}
}
