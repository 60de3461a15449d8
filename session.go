package qrcode

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"
)

// TriggerCooldown is how long the generate trigger stays disabled after use.
const TriggerCooldown = 2 * time.Second

// Options are the user-adjustable generation settings.
type Options struct {
	Size       int
	Level      RecoveryLevel
	Foreground color.Color
	Background color.Color
	Style      Style
	Frame      Frame
	Pitch      PitchMode
	Base64     bool
}

// DefaultOptions mirrors the initial state of the generator form.
func DefaultOptions() Options {
	return Options{
		Size:       256,
		Level:      Medium,
		Foreground: color.Black,
		Background: color.White,
		Style:      StyleRounded,
		Frame:      FrameNone,
		Pitch:      PitchAligned,
	}
}

func (o Options) validate() error {
	if o.Size <= 0 {
		return fmt.Errorf("%w: size must be positive, got %d", ErrEncoding, o.Size)
	}

	if o.Level < Low || o.Level > Highest {
		return fmt.Errorf("%w: %v", ErrUnknownLevel, o.Level)
	}

	if _, err := ParseStyle(string(o.Style)); err != nil {
		return err
	}

	if _, err := ParseFrame(string(o.Frame)); err != nil {
		return err
	}

	if _, err := ParsePitchMode(string(o.Pitch)); err != nil {
		return err
	}

	return nil
}

// Session owns the generator state: selected kind and options, the last
// submitted record and the last successful result.
type Session struct {
	ID uuid.UUID

	mu       sync.Mutex
	encoder  Encoder
	notifier Notifier
	locator  Locator
	gate     *rate.Limiter
	log      *slog.Logger
	now      func() time.Time

	kind    Kind
	options Options
	record  Record
	result  *Result
}

type SessionOption func(*Session)

func WithNotifier(n Notifier) SessionOption {
	return func(s *Session) { s.notifier = n }
}

func WithLocator(l Locator) SessionOption {
	return func(s *Session) { s.locator = l }
}

func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) { s.log = l }
}

func WithOptions(o Options) SessionOption {
	return func(s *Session) { s.options = o }
}

// WithCooldown sets the trigger cooldown. Zero disables it.
func WithCooldown(d time.Duration) SessionOption {
	return func(s *Session) {
		if d <= 0 {
			s.gate = rate.NewLimiter(rate.Inf, 1)
			return
		}

		s.gate = rate.NewLimiter(rate.Every(d), 1)
	}
}

func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

func NewSession(encoder Encoder, opts ...SessionOption) *Session {
	s := &Session{
		ID:       uuid.New(),
		encoder:  encoder,
		notifier: discardNotifier{},
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
		kind:     KindURL,
		options:  DefaultOptions(),
	}

	WithCooldown(TriggerCooldown)(s)

	for _, opt := range opts {
		opt(s)
	}

	s.log = s.log.With(slog.String("session", s.ID.String()))

	return s
}

// SelectKind changes the active input kind. The current result stays.
func (s *Session) SelectKind(k Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.kind = k
}

func (s *Session) Kind() Kind {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.kind
}

func (s *Session) Options() Options {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.options
}

// Result returns the last successful generation, or nil.
func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.result
}

// Generate is the user trigger: it runs the full pipeline for r and, on
// success, replaces the displayed result. While the trigger cooldown is
// active it returns ErrTriggerDisabled without doing anything.
func (s *Session) Generate(r Record) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.gate.Limit() != rate.Inf && s.gate.Tokens() < 1 {
		return nil, ErrTriggerDisabled
	}

	if r == nil {
		return nil, errors.New("qrcode: nil record")
	}

	s.kind = r.Kind()

	res, err := s.run(r, true)
	if err != nil {
		return nil, err
	}

	return res, nil
}

// SetStyle changes the style and regenerates when a result exists.
func (s *Session) SetStyle(style Style) error {
	return s.update(func(o *Options) { o.Style = style })
}

// SetFrame changes the frame and regenerates when a result exists.
func (s *Session) SetFrame(frame Frame) error {
	return s.update(func(o *Options) { o.Frame = frame })
}

// SetColors changes both colors and regenerates when a result exists.
func (s *Session) SetColors(fg, bg color.Color) error {
	return s.update(func(o *Options) {
		o.Foreground = fg
		o.Background = bg
	})
}

// SetOptions replaces all options and regenerates when a result exists.
// Invalid options are rejected and the previous ones stay in effect.
func (s *Session) SetOptions(opts Options) error {
	return s.update(func(o *Options) { *o = opts })
}

func (s *Session) update(change func(*Options)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.options
	change(&next)

	if err := next.validate(); err != nil {
		return err
	}

	prev := s.options
	s.options = next

	if s.result == nil || s.record == nil {
		return nil
	}

	if _, err := s.run(s.record, false); err != nil {
		s.options = prev
		return err
	}

	return nil
}

// run executes payload → encode → style → frame. Callers hold s.mu.
func (s *Session) run(r Record, triggered bool) (*Result, error) {
	log := s.log.With(slog.String("kind", string(r.Kind())))

	payload, err := Build(r)
	if err != nil {
		log.Warn("invalid input", slog.String("error", err.Error()))
		s.notifier.Notify("Please fill in the required fields: " + err.Error())

		return nil, err
	}

	if advice := Advise(r); advice != "" {
		log.Warn("suspicious input", slog.String("advice", advice))
	}

	if triggered {
		s.gate.Allow()
	}

	opts := s.options

	req := Request{
		Payload:    payload,
		Size:       opts.Size,
		Level:      opts.Level,
		Foreground: opts.Foreground,
		Background: opts.Background,
	}

	grid, err := s.encoder.Encode(req)
	if err != nil {
		return nil, s.fail(log, err)
	}

	img, err := Render(grid, RenderOptions{
		Style:      opts.Style,
		Pitch:      opts.Pitch,
		Foreground: opts.Foreground,
		Background: opts.Background,
	})
	if err != nil {
		return nil, s.fail(log, err)
	}

	res := &Result{
		Kind:      r.Kind(),
		Payload:   payload,
		Request:   req,
		Style:     opts.Style,
		Image:     img,
		Framed:    Compose(img, opts.Frame, opts.Foreground),
		Base64:    opts.Base64,
		CreatedAt: s.now(),
	}

	s.record = r
	s.result = res

	log.Debug("generated",
		slog.String("encoder", s.encoder.Name()),
		slog.String("style", string(opts.Style)),
		slog.String("frame", string(opts.Frame)),
		slog.Int("size", grid.Size()),
	)

	return res, nil
}

func (s *Session) fail(log *slog.Logger, err error) error {
	if !errors.Is(err, ErrEncoding) {
		err = fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	log.Error("generation failed", slog.String("error", err.Error()))
	s.notifier.Notify("Failed to generate the QR code. Please try again.")

	return err
}

// Export serializes the current result. SVG re-encodes the original payload.
func (s *Session) Export(f Format) (*Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result == nil {
		s.notifier.Notify("Generate a QR code before downloading it.")

		return nil, ErrNoResult
	}

	a, err := s.result.Export(f, s.encoder, s.now())
	if err != nil {
		s.log.Error("export failed", slog.String("format", string(f)), slog.String("error", err.Error()))
		s.notifier.Notify("Failed to download the QR code. Please try again.")

		return nil, err
	}

	return a, nil
}

// RequestLocation acquires the current position asynchronously. The
// returned channel receives exactly one value and is then closed.
func (s *Session) RequestLocation(ctx context.Context) <-chan LocationResult {
	out := make(chan LocationResult, 1)

	s.mu.Lock()
	locator := s.locator
	s.mu.Unlock()

	if locator == nil {
		s.notifier.Notify("Geolocation is not supported here.")
		out <- LocationResult{Err: ErrGeolocationUnavailable}
		close(out)

		return out
	}

	go func() {
		defer close(out)

		c, err := locator.Locate(ctx)
		if err != nil {
			s.log.Warn("location failed", slog.String("error", err.Error()))
			s.notifier.Notify("Could not get your location. Please enter the coordinates manually.")
			out <- LocationResult{Err: fmt.Errorf("%w: %w", ErrGeolocationUnavailable, err)}

			return
		}

		out <- LocationResult{Location: c.ToLocation()}
	}()

	return out
}
