package export

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Default timings.
const (
	DefaultSettleDelay  = 250 * time.Millisecond
	DefaultImageTimeout = 60 * time.Second
)

// Surface is a rendering target able to print its content.
type Surface interface {
	SetContent(ctx context.Context, doc string) error
	ImageIDs(ctx context.Context) ([]string, error)
	// WaitImage returns once the image has loaded or failed.
	WaitImage(ctx context.Context, id string) error
	Print(ctx context.Context) ([]byte, error)
	Close() error
}

// Opener provides fresh surfaces.
type Opener interface {
	Open(ctx context.Context) (Surface, error)
}

// Option configures a Trigger.
type Option func(*Trigger)

// WithSettleDelay sets the pause between image settlement and printing.
func WithSettleDelay(d time.Duration) Option {
	return func(t *Trigger) {
		if d >= 0 {
			t.settleDelay = d
		}
	}
}

// WithImageTimeout bounds the wait for images to settle.
func WithImageTimeout(d time.Duration) Option {
	return func(t *Trigger) {
		if d > 0 {
			t.imageTimeout = d
		}
	}
}

// WithLogger sets the logger for state transitions.
func WithLogger(l *zap.Logger) Option {
	return func(t *Trigger) {
		if l != nil {
			t.logger = l
		}
	}
}

// Trigger runs exports one at a time.
type Trigger struct {
	opener       Opener
	logger       *zap.Logger
	settleDelay  time.Duration
	imageTimeout time.Duration
	state        atomic.Int32
}

// NewTrigger creates an idle Trigger printing through opener.
func NewTrigger(opener Opener, opts ...Option) *Trigger {
	t := &Trigger{
		opener:       opener,
		logger:       zap.NewNop(),
		settleDelay:  DefaultSettleDelay,
		imageTimeout: DefaultImageTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// State returns the current lifecycle state.
func (t *Trigger) State() State {
	return State(t.state.Load())
}

func (t *Trigger) enter(s State) {
	t.state.Store(int32(s))
	t.logger.Debug("export state", zap.Stringer("state", s))
}

// Run writes doc into a new surface, waits for its images and prints it.
// It returns ErrExportInProgress when another Run is active. The trigger is
// back in Idle when Run returns.
func (t *Trigger) Run(ctx context.Context, doc string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !t.state.CompareAndSwap(int32(Idle), int32(Preparing)) {
		return nil, ErrExportInProgress
	}
	t.logger.Debug("export state", zap.Stringer("state", Preparing))
	defer t.enter(Idle)

	surface, err := t.opener.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}
	defer func() {
		if cerr := surface.Close(); cerr != nil {
			t.logger.Debug("closing surface", zap.Error(cerr))
		}
	}()

	if err := surface.SetContent(ctx, doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentLoad, err)
	}

	t.enter(AwaitingImages)
	if err := t.awaitImages(ctx, surface); err != nil {
		return nil, err
	}

	t.enter(Printing)
	if err := sleep(ctx, t.settleDelay); err != nil {
		return nil, err
	}
	pdf, err := surface.Print(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPrint, err)
	}
	return pdf, nil
}

func (t *Trigger) awaitImages(ctx context.Context, surface Surface) error {
	ids, err := surface.ImageIDs(ctx)
	if err != nil {
		return fmt.Errorf("%w: listing images: %w", ErrContentLoad, err)
	}
	if len(ids) == 0 {
		return nil
	}

	barrier := NewBarrier()
	barrier.Register(ids...)

	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	for _, id := range ids {
		go func() {
			if err := surface.WaitImage(waitCtx, id); err != nil {
				t.logger.Debug("image failed to load", zap.String("id", id), zap.Error(err))
			}
			barrier.Settle(id)
		}()
	}

	t.logger.Debug("waiting for images", zap.Int("count", len(ids)))
	return barrier.Wait(ctx, t.imageTimeout)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
