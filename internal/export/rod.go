package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-manualpdf/internal/process"
)

// RodOpener opens pages in a headless Chrome launched on first use.
// Rod downloads Chromium when no browser is found.
type RodOpener struct {
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewRodOpener creates an opener; the browser starts on the first Open.
func NewRodOpener() *RodOpener {
	return &RodOpener{}
}

func (o *RodOpener) ensureBrowser() error {
	if o.browser != nil {
		return nil
	}

	l := launcher.New()

	// Pre-installed browser (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	if os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		o.kill(l)
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	o.launcher = l
	o.browser = browser
	return nil
}

// Open returns a blank page wrapped as a Surface.
func (o *RodOpener) Open(ctx context.Context) (Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if err := o.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := o.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	return &rodSurface{page: page}, nil
}

// Close shuts the browser down and kills its process tree.
func (o *RodOpener) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.browser == nil {
		return nil
	}
	err := o.browser.Close()
	o.kill(o.launcher)
	o.browser = nil
	o.launcher = nil
	return err
}

func (o *RodOpener) kill(l *launcher.Launcher) {
	if l == nil {
		return
	}
	if pid := l.PID(); pid > 0 {
		process.KillProcessGroup(pid)
	}
	l.Kill()
	l.Cleanup()
}

// rodSurface is one browser page.
type rodSurface struct {
	page   *rod.Page
	images rod.Elements
}

func (s *rodSurface) SetContent(ctx context.Context, doc string) error {
	return s.page.Context(ctx).SetDocumentContent(doc)
}

func (s *rodSurface) ImageIDs(ctx context.Context) ([]string, error) {
	images, err := s.page.Context(ctx).Elements("img")
	if err != nil {
		return nil, err
	}
	s.images = images

	ids := make([]string, len(images))
	for i := range images {
		ids[i] = strconv.Itoa(i)
	}
	return ids, nil
}

// WaitImage resolves on the image's load or error event.
func (s *rodSurface) WaitImage(ctx context.Context, id string) error {
	i, err := strconv.Atoi(id)
	if err != nil || i < 0 || i >= len(s.images) {
		return fmt.Errorf("unknown image %q", id)
	}
	return s.images[i].Context(ctx).WaitLoad()
}

func (s *rodSurface) Print(ctx context.Context) ([]byte, error) {
	reader, err := s.page.Context(ctx).PDF(&proto.PagePrintToPDF{
		PreferCSSPageSize: true,
		PrintBackground:   true,
	})
	if err != nil {
		return nil, err
	}
	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading PDF stream: %w", err)
	}
	return pdf, nil
}

func (s *rodSurface) Close() error {
	return s.page.Close()
}

var (
	_ Opener  = (*RodOpener)(nil)
	_ Surface = (*rodSurface)(nil)
)
