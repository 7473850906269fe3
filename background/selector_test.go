package background

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"thumbnailer/fetcher"
	"thumbnailer/models"
	"thumbnailer/parser"
	"thumbnailer/validation"
)

// scriptedRand replays a fixed sequence of values.
type scriptedRand struct {
	vals []int
	pos  int
}

func (s *scriptedRand) IntN(n int) int {
	v := s.vals[s.pos%len(s.vals)]
	s.pos++
	return v % n
}

// hexIndices returns the alphabet positions that spell the given hex digits.
func hexIndices(digits string) []int {
	out := make([]int, 0, len(digits))
	for _, c := range digits {
		out = append(out, strings.IndexRune(hexAlphabet, c))
	}
	return out
}

type fakeFetcher struct {
	result  fetcher.Result
	err     error
	release chan struct{}
}

func (f *fakeFetcher) ResolveRandomImage(ctx context.Context) (fetcher.Result, error) {
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return fetcher.Result{}, ctx.Err()
		}
	}
	return f.result, f.err
}

func (f *fakeFetcher) Endpoint() string { return "https://random.example.com/?all" }

func pngBytes(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 10, 10))))
	return buf.Bytes()
}

func waitTask(t *testing.T, task *Task) (models.Background, error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return task.Wait(ctx)
}

func TestNewStartsWithDefaultBackground(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	require.Equal(t, models.DefaultBackground, s.Active())
}

func TestPickRandomColorScenario(t *testing.T) {
	t.Parallel()

	s := New(Options{Rand: &scriptedRand{vals: hexIndices("3a7fd1")}})

	var notified []models.Background
	s.Subscribe(func(bg models.Background) { notified = append(notified, bg) })

	bg := s.PickRandomColor()
	require.Equal(t, models.SolidColor{Color: "#3a7fd1"}, bg)
	require.Equal(t, bg, s.Active())
	require.Equal(t, []models.Background{bg}, notified)
}

func TestPickRandomColorAlwaysHex(t *testing.T) {
	t.Parallel()

	s := New(Options{Rand: rand.New(rand.NewPCG(1, 2))})
	for i := 0; i < 2000; i++ {
		bg := s.PickRandomColor().(models.SolidColor)
		require.True(t, validation.IsHexColor6(bg.Color), bg.Color)
	}
}

func TestPickRandomGradientRanges(t *testing.T) {
	t.Parallel()

	s := New(Options{Rand: rand.New(rand.NewPCG(7, 9))})
	for i := 0; i < 2000; i++ {
		g := s.PickRandomGradient().(models.Gradient)
		require.GreaterOrEqual(t, g.Angle, 0)
		require.Less(t, g.Angle, 360)
		require.True(t, validation.IsHexColor6(g.ColorA), g.ColorA)
		require.True(t, validation.IsHexColor6(g.ColorB), g.ColorB)
	}
}

func TestPickRandomGradientDrawOrder(t *testing.T) {
	t.Parallel()

	vals := append(hexIndices("abcdef"), hexIndices("012345")...)
	vals = append(vals, 123)

	s := New(Options{Rand: &scriptedRand{vals: vals}})
	g := s.PickRandomGradient()

	require.Equal(t, models.Gradient{Angle: 123, ColorA: "#abcdef", ColorB: "#012345"}, g)
	require.Equal(t, "linear-gradient(123deg, #abcdef, #012345)", g.CSS())
}

func TestSubscribeUnsubscribe(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	calls := 0
	unsubscribe := s.Subscribe(func(models.Background) { calls++ })

	s.PickRandomColor()
	unsubscribe()
	s.PickRandomGradient()

	require.Equal(t, 1, calls)
}

func TestPickRandomRemoteImageSuccess(t *testing.T) {
	t.Parallel()

	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	f := &fakeFetcher{result: fetcher.Result{URL: "https://images.example.com/photo-1.jpg", Image: img}}
	s := New(Options{Fetcher: f})

	bg, err := waitTask(t, s.PickRandomRemoteImage(context.Background()))
	require.NoError(t, err)

	remote, ok := bg.(models.RemoteImage)
	require.True(t, ok)
	require.Equal(t, "https://images.example.com/photo-1.jpg", remote.URL)
	require.Equal(t, bg, s.Active())
}

func TestPickRandomRemoteImageFailureKeepsPrevious(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{err: errors.New("dial tcp: connection refused")}
	s := New(Options{Fetcher: f, Rand: &scriptedRand{vals: hexIndices("3a7fd1")}})
	previous := s.PickRandomColor()

	changed := false
	s.Subscribe(func(models.Background) { changed = true })

	bg, err := waitTask(t, s.PickRandomRemoteImage(context.Background()))
	require.Nil(t, bg)

	netErr, ok := IsNetworkError(err)
	require.True(t, ok)
	require.Equal(t, f.Endpoint(), netErr.URL)
	require.False(t, changed)
	require.Equal(t, previous, s.Active())
}

func TestPickRandomRemoteImageWithoutFetcher(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	_, err := waitTask(t, s.PickRandomRemoteImage(context.Background()))
	require.ErrorIs(t, err, ErrNoFetcher)
	_, ok := IsNetworkError(err)
	require.True(t, ok)
}

func TestStaleRemoteResultIsDiscarded(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{
		result:  fetcher.Result{URL: "https://images.example.com/late.jpg", Image: image.NewNRGBA(image.Rect(0, 0, 1, 1))},
		release: make(chan struct{}),
	}
	s := New(Options{Fetcher: f})

	task := s.PickRandomRemoteImage(context.Background())
	color := s.PickRandomColor()
	close(f.release)

	_, err := waitTask(t, task)
	require.ErrorIs(t, err, ErrSuperseded)
	require.Equal(t, color, s.Active())
}

func TestCancelRemoteImage(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{release: make(chan struct{})}
	s := New(Options{Fetcher: f})
	before := s.Active()

	task := s.PickRandomRemoteImage(context.Background())
	require.False(t, task.Resolved())
	task.Cancel()

	_, err := waitTask(t, task)
	require.ErrorIs(t, err, context.Canceled)
	require.True(t, task.Resolved())
	require.Equal(t, before, s.Active())
}

func TestPickUploadedImageRoundTrip(t *testing.T) {
	t.Parallel()

	data := pngBytes(t)
	s := New(Options{})

	bg, err := waitTask(t, s.PickUploadedImage(context.Background(), "tiny.png", bytes.NewReader(data)))
	require.NoError(t, err)

	uploaded, ok := bg.(models.UploadedImage)
	require.True(t, ok)
	require.Equal(t, 10, uploaded.Image.Bounds().Dx())

	mediaType, decoded, err := parser.DecodeDataURI(uploaded.DataURI)
	require.NoError(t, err)
	require.Equal(t, "image/png", mediaType)
	require.Equal(t, data, decoded)
	require.Equal(t, bg, s.Active())
	require.NoError(t, validation.ValidateBackground(bg))
}

func TestPickUploadedImageCorruptFile(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	before := s.Active()

	corrupt := pngBytes(t)[:30]
	bg, err := waitTask(t, s.PickUploadedImage(context.Background(), "broken.png", bytes.NewReader(corrupt)))
	require.Nil(t, bg)

	decodeErr, ok := IsDecodeError(err)
	require.True(t, ok)
	require.Equal(t, "broken.png", decodeErr.Source)
	require.Equal(t, before, s.Active())
}

func TestPickUploadedImageSingleInFlight(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	data := pngBytes(t)
	pr, pw := io.Pipe()

	first := s.PickUploadedImage(context.Background(), "slow.png", pr)

	_, err := waitTask(t, s.PickUploadedImage(context.Background(), "second.png", bytes.NewReader(data)))
	require.ErrorIs(t, err, ErrUploadInFlight)

	go func() {
		pw.Write(data)
		pw.Close()
	}()

	bg, err := waitTask(t, first)
	require.NoError(t, err)
	require.Equal(t, models.KindUploadedImage, bg.Kind())

	_, err = waitTask(t, s.PickUploadedImage(context.Background(), "third.png", bytes.NewReader(data)))
	require.NoError(t, err)
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	require.Equal(t, "decode error: a.png: boom", NewDecodeError("a.png", errors.New("boom")).Error())
	require.Equal(t, "network error: boom", NewNetworkError("", errors.New("boom")).Error())

	_, ok := IsDecodeError(errors.New("plain"))
	require.False(t, ok)
}

func TestFailedRemotePickKeepsPendingUpload(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{err: errors.New("dial tcp: connection refused")}
	s := New(Options{Fetcher: f})
	data := pngBytes(t)
	pr, pw := io.Pipe()

	upload := s.PickUploadedImage(context.Background(), "slow.png", pr)

	_, err := waitTask(t, s.PickRandomRemoteImage(context.Background()))
	_, ok := IsNetworkError(err)
	require.True(t, ok)

	go func() {
		pw.Write(data)
		pw.Close()
	}()

	bg, err := waitTask(t, upload)
	require.NoError(t, err)
	require.Equal(t, models.KindUploadedImage, bg.Kind())
	require.Equal(t, bg, s.Active())
}

func TestCancelledRemotePickKeepsPendingUpload(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{release: make(chan struct{})}
	s := New(Options{Fetcher: f})
	data := pngBytes(t)
	pr, pw := io.Pipe()

	upload := s.PickUploadedImage(context.Background(), "slow.png", pr)

	remote := s.PickRandomRemoteImage(context.Background())
	remote.Cancel()
	_, err := waitTask(t, remote)
	require.ErrorIs(t, err, context.Canceled)

	go func() {
		pw.Write(data)
		pw.Close()
	}()

	bg, err := waitTask(t, upload)
	require.NoError(t, err)
	require.Equal(t, bg, s.Active())
}

func TestUploadSupersededByPendingRemotePick(t *testing.T) {
	t.Parallel()

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	f := &fakeFetcher{
		result:  fetcher.Result{URL: "https://images.example.com/newer.jpg", Image: img},
		release: make(chan struct{}),
	}
	s := New(Options{Fetcher: f})

	data := pngBytes(t)
	pr, pw := io.Pipe()
	upload := s.PickUploadedImage(context.Background(), "slow.png", pr)
	remote := s.PickRandomRemoteImage(context.Background())

	go func() {
		pw.Write(data)
		pw.Close()
	}()

	_, err := waitTask(t, upload)
	require.ErrorIs(t, err, ErrSuperseded)

	close(f.release)
	bg, err := waitTask(t, remote)
	require.NoError(t, err)
	require.Equal(t, bg, s.Active())
}

// trackingReader records when it is closed and whether a read happened afterwards.
type trackingReader struct {
	mu        sync.Mutex
	r         io.Reader
	closed    bool
	readAfter bool
}

func (t *trackingReader) Read(p []byte) (int, error) {
	t.mu.Lock()
	if t.closed {
		t.readAfter = true
		t.mu.Unlock()
		return 0, io.ErrClosedPipe
	}
	t.mu.Unlock()
	return t.r.Read(p)
}

func (t *trackingReader) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

func (t *trackingReader) state() (closed, readAfterClose bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed, t.readAfter
}

func TestPickUploadedImageClosesSourceAfterRead(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	src := &trackingReader{r: bytes.NewReader(pngBytes(t))}

	_, err := waitTask(t, s.PickUploadedImage(context.Background(), "tiny.png", src))
	require.NoError(t, err)

	closed, readAfterClose := src.state()
	require.True(t, closed)
	require.False(t, readAfterClose)
}

func TestCancelledUploadClosesSourceOnlyAfterRead(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	pr, pw := io.Pipe()
	src := &trackingReader{r: pr}

	task := s.PickUploadedImage(context.Background(), "slow.png", src)
	task.Cancel()
	_, err := waitTask(t, task)
	require.ErrorIs(t, err, context.Canceled)

	closed, _ := src.state()
	require.False(t, closed)

	pw.Write(pngBytes(t))
	pw.Close()

	require.Eventually(t, func() bool {
		closed, _ := src.state()
		return closed
	}, 5*time.Second, 10*time.Millisecond)
	_, readAfterClose := src.state()
	require.False(t, readAfterClose)
}

func TestRejectedUploadClosesSource(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	pr, pw := io.Pipe()
	first := s.PickUploadedImage(context.Background(), "slow.png", pr)

	second := &trackingReader{r: bytes.NewReader(pngBytes(t))}
	_, err := waitTask(t, s.PickUploadedImage(context.Background(), "second.png", second))
	require.ErrorIs(t, err, ErrUploadInFlight)
	closed, _ := second.state()
	require.True(t, closed)

	pw.Write(pngBytes(t))
	pw.Close()
	_, err = waitTask(t, first)
	require.NoError(t, err)
}
