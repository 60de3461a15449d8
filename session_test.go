package qrcode

import (
	"context"
	"errors"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *recorder) Notify(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, message)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.messages...)
}

type flakyEncoder struct {
	Encoder
	fail bool
}

func (f *flakyEncoder) Encode(req Request) (*Grid, error) {
	if f.fail {
		return nil, errors.New("boom")
	}

	return f.Encoder.Encode(req)
}

type brokenLocator struct{}

func (brokenLocator) Locate(context.Context) (Coordinates, error) {
	return Coordinates{}, errors.New("permission denied")
}

func newTestSession(t *testing.T, opts ...SessionOption) (*Session, *recorder, *flakyEncoder) {
	t.Helper()

	enc, err := NewEncoder("skip2")
	require.NoError(t, err)

	flaky := &flakyEncoder{Encoder: enc}
	rec := &recorder{}

	opts = append([]SessionOption{WithNotifier(rec), WithCooldown(0)}, opts...)

	return NewSession(flaky, opts...), rec, flaky
}

func TestSessionDefaults(t *testing.T) {
	s, _, _ := newTestSession(t)

	assert.Equal(t, KindURL, s.Kind())
	assert.Nil(t, s.Result())

	opts := s.Options()
	assert.Equal(t, 256, opts.Size)
	assert.Equal(t, Medium, opts.Level)
	assert.Equal(t, StyleRounded, opts.Style)
	assert.Equal(t, FrameNone, opts.Frame)
	assert.NotEqual(t, [16]byte{}, [16]byte(s.ID))
}

func TestSessionGenerate(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	s, rec, _ := newTestSession(t, WithClock(func() time.Time { return now }))

	res, err := s.Generate(Email{Address: "a@b.com", Subject: "Hi there"})
	require.NoError(t, err)

	assert.Equal(t, KindEmail, res.Kind)
	assert.Equal(t, "mailto:a@b.com?subject=Hi%20there", res.Payload)
	assert.Equal(t, StyleRounded, res.Style)
	assert.Equal(t, "qr-wrapper", res.Framed.Class())
	assert.Equal(t, now, res.CreatedAt)
	assert.Equal(t, KindEmail, s.Kind())
	assert.Same(t, res, s.Result())
	assert.Empty(t, rec.all())
}

func TestSessionMissingFieldKeepsResult(t *testing.T) {
	s, rec, _ := newTestSession(t)

	first, err := s.Generate(Text{Content: "hello"})
	require.NoError(t, err)

	_, err = s.Generate(WiFi{Password: "secret"})
	require.ErrorIs(t, err, ErrMissingField)

	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, KindWiFi, fe.Kind)

	assert.Same(t, first, s.Result())
	require.Len(t, rec.all(), 1)
	assert.Contains(t, rec.all()[0], "Please fill in the required fields")
}

func TestSessionEncodingFailureKeepsResult(t *testing.T) {
	s, rec, enc := newTestSession(t)

	first, err := s.Generate(Text{Content: "hello"})
	require.NoError(t, err)

	enc.fail = true

	_, err = s.Generate(Text{Content: "again"})
	require.ErrorIs(t, err, ErrEncoding)

	assert.Same(t, first, s.Result())
	assert.Equal(t, []string{"Failed to generate the QR code. Please try again."}, rec.all())
}

func TestSessionRestyleRegenerates(t *testing.T) {
	s, _, _ := newTestSession(t)

	first, err := s.Generate(Phone{Number: "+15550100"})
	require.NoError(t, err)

	require.NoError(t, s.SetStyle(StyleDotted))

	second := s.Result()
	require.NotSame(t, first, second)
	assert.Equal(t, StyleDotted, second.Style)
	assert.Equal(t, first.Payload, second.Payload)

	require.NoError(t, s.SetFrame(FrameRounded))
	assert.Equal(t, "qr-wrapper frame-rounded", s.Result().Framed.Class())

	red := color.RGBA{R: 0x80, A: 0xff}
	require.NoError(t, s.SetColors(red, color.White))
	assert.Equal(t, HexColor(red), HexColor(s.Result().Request.Foreground))

	assert.ErrorIs(t, s.SetStyle("wavy"), ErrUnknownStyle)
	assert.ErrorIs(t, s.SetFrame("fancy"), ErrUnknownFrame)
}

func TestSessionRestyleWithoutResult(t *testing.T) {
	s, rec, _ := newTestSession(t)

	require.NoError(t, s.SetStyle(StyleGradient))
	require.NoError(t, s.SetFrame(FrameSimple))

	assert.Nil(t, s.Result())
	assert.Equal(t, StyleGradient, s.Options().Style)
	assert.Empty(t, rec.all())
}

func TestSessionSelectKindKeepsResult(t *testing.T) {
	s, _, _ := newTestSession(t)

	res, err := s.Generate(URL{Address: "example.com"})
	require.NoError(t, err)

	s.SelectKind(KindVCard)

	assert.Equal(t, KindVCard, s.Kind())
	assert.Same(t, res, s.Result())
}

func TestSessionExport(t *testing.T) {
	now := time.UnixMilli(1234)
	s, rec, _ := newTestSession(t, WithClock(func() time.Time { return now }))

	_, err := s.Export(FormatPNG)
	require.ErrorIs(t, err, ErrNoResult)
	require.Len(t, rec.all(), 1)

	_, err = s.Generate(SMS{Number: "+15550100", Message: "hi"})
	require.NoError(t, err)

	a, err := s.Export(FormatSVG)
	require.NoError(t, err)
	assert.Equal(t, "qrcode-sms-1234.svg", a.Name)

	_, err = s.Export("gif")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSessionCooldown(t *testing.T) {
	s, _, _ := newTestSession(t, WithCooldown(time.Hour))

	_, err := s.Generate(Text{})
	require.ErrorIs(t, err, ErrMissingField)

	_, err = s.Generate(Text{Content: "first"})
	require.NoError(t, err)

	_, err = s.Generate(Text{Content: "second"})
	require.ErrorIs(t, err, ErrTriggerDisabled)
	assert.Equal(t, "first", s.Result().Payload)

	require.NoError(t, s.SetStyle(StyleClassic))
	assert.Equal(t, StyleClassic, s.Result().Style)
	assert.Equal(t, "first", s.Result().Payload)
}

func TestSessionRequestLocation(t *testing.T) {
	t.Run("unsupported", func(t *testing.T) {
		s, rec, _ := newTestSession(t)

		res := <-s.RequestLocation(context.Background())
		assert.ErrorIs(t, res.Err, ErrGeolocationUnavailable)
		assert.Len(t, rec.all(), 1)
	})

	t.Run("static", func(t *testing.T) {
		s, _, _ := newTestSession(t, WithLocator(StaticLocator{Latitude: 35.689, Longitude: 139.6917}))

		res := <-s.RequestLocation(context.Background())
		require.NoError(t, res.Err)
		assert.Equal(t, Location{Latitude: "35.689000", Longitude: "139.691700"}, res.Location)

		payload, err := Build(res.Location)
		require.NoError(t, err)
		assert.Equal(t, "geo:35.689000,139.691700", payload)
	})

	t.Run("denied", func(t *testing.T) {
		s, rec, _ := newTestSession(t, WithLocator(brokenLocator{}))

		res := <-s.RequestLocation(context.Background())
		assert.ErrorIs(t, res.Err, ErrGeolocationUnavailable)
		assert.Len(t, rec.all(), 1)
	})

	t.Run("cancelled", func(t *testing.T) {
		s, _, _ := newTestSession(t, WithLocator(StaticLocator{}))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		res, ok := <-s.RequestLocation(ctx)
		require.True(t, ok)
		assert.ErrorIs(t, res.Err, context.Canceled)
		assert.ErrorIs(t, res.Err, ErrGeolocationUnavailable)
	})
}

func TestSessionRejectsInvalidOptions(t *testing.T) {
	s, _, _ := newTestSession(t)

	_, err := s.Generate(Text{Content: "options"})
	require.NoError(t, err)

	before := s.Options()

	bad := before
	bad.Frame = "fancy"
	assert.ErrorIs(t, s.SetOptions(bad), ErrUnknownFrame)

	bad = before
	bad.Size = 0
	assert.ErrorIs(t, s.SetOptions(bad), ErrEncoding)

	bad = before
	bad.Style = "wavy"
	assert.ErrorIs(t, s.SetOptions(bad), ErrUnknownStyle)

	assert.Equal(t, before, s.Options())

	require.NoError(t, s.SetStyle(StyleDotted))
	require.NoError(t, s.SetColors(color.Black, color.White))
	assert.Equal(t, StyleDotted, s.Result().Style)
}

func TestSessionFailedRegenerationRestoresOptions(t *testing.T) {
	s, _, enc := newTestSession(t)

	first, err := s.Generate(Text{Content: "restore"})
	require.NoError(t, err)

	enc.fail = true
	require.ErrorIs(t, s.SetFrame(FrameDouble), ErrEncoding)

	assert.Equal(t, FrameNone, s.Options().Frame)
	assert.Same(t, first, s.Result())

	enc.fail = false
	require.NoError(t, s.SetStyle(StyleGradient))
	assert.Equal(t, "qr-wrapper", s.Result().Framed.Class())
}
