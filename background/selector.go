package background

import (
	"context"
	"image"
	"io"
	"sync"

	"thumbnailer/fetcher"
	"thumbnailer/logger"
	"thumbnailer/models"
	"thumbnailer/parser"
	"thumbnailer/validation"
)

// ImageFetcher resolves a random remote image. *fetcher.Client satisfies it.
type ImageFetcher interface {
	ResolveRandomImage(ctx context.Context) (fetcher.Result, error)
	Endpoint() string
}

// Options configures a Selector.
type Options struct {
	Rand    Rand              // Randomness for colours and angles, seeded randomly when nil
	Fetcher ImageFetcher      // Random image source; remote picks fail with ErrNoFetcher when nil
	Initial models.Background // Starting descriptor, models.DefaultBackground when nil
	Logger  *logger.Logger
}

// Selector owns the single active background slot and produces new descriptors
// from one of four sources. Every pick takes a generation from a counter.
// An asynchronous result is discarded when a newer pick has already been applied
// or is still pending. Picks that fail or are cancelled select nothing and
// never supersede older ones.
type Selector struct {
	rand    Rand
	fetcher ImageFetcher
	log     *logger.Logger

	mu         sync.Mutex
	active     models.Background
	generation uint64
	applied    uint64              // Generation of the active descriptor
	pending    map[uint64]struct{} // Asynchronous picks still running
	uploading  bool
	listeners  map[int]func(models.Background)
	nextID     int
}

// New creates a Selector with the given options.
func New(opts Options) *Selector {
	r := opts.Rand
	if r == nil {
		r = defaultRand()
	}

	initial := opts.Initial
	if initial == nil {
		initial = models.DefaultBackground
	}

	return &Selector{
		rand:      r,
		fetcher:   opts.Fetcher,
		log:       opts.Logger.Component("background"),
		active:    initial,
		pending:   make(map[uint64]struct{}),
		listeners: make(map[int]func(models.Background)),
	}
}

// Active returns the descriptor currently painted behind the preview.
func (s *Selector) Active() models.Background {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Subscribe registers fn to be called after every applied background change.
// Callbacks run on the goroutine that applied the change, in registration order.
func (s *Selector) Subscribe(fn func(models.Background)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// PickRandomGradient draws two colours and an angle and makes the gradient active.
func (s *Selector) PickRandomGradient() models.Background {
	gen := s.nextGeneration()

	bg := models.Gradient{
		ColorA: randomHexColor(s.rand),
		ColorB: randomHexColor(s.rand),
		Angle:  randomAngle(s.rand),
	}
	s.mustApply(gen, bg)
	return bg
}

// PickRandomColor draws one colour and makes it the active flat fill.
func (s *Selector) PickRandomColor() models.Background {
	gen := s.nextGeneration()

	bg := models.SolidColor{Color: randomHexColor(s.rand)}
	s.mustApply(gen, bg)
	return bg
}

// PickRandomRemoteImage requests a random image in the background.
// On failure the task resolves with a *NetworkError and the active background is kept.
func (s *Selector) PickRandomRemoteImage(ctx context.Context) *Task {
	if s.fetcher == nil {
		return completedTask(nil, NewNetworkError("", ErrNoFetcher))
	}

	gen := s.beginPending()

	task := newTask(ctx)
	go func() {
		res, err := s.fetcher.ResolveRandomImage(task.ctx)
		if ctxErr := task.ctx.Err(); ctxErr != nil {
			s.log.Debug("random image request cancelled")
			s.abandon(gen)
			task.finish(nil, ctxErr)
			return
		}
		if err != nil {
			s.log.Error(err, "random image request failed, keeping previous background")
			s.abandon(gen)
			task.finish(nil, NewNetworkError(s.fetcher.Endpoint(), err))
			return
		}

		bg := models.RemoteImage{URL: res.URL, Image: res.Image}
		if err := validation.ValidateBackground(bg); err != nil {
			s.abandon(gen)
			task.finish(nil, NewNetworkError(res.URL, err))
			return
		}

		if err := s.apply(gen, bg); err != nil {
			task.finish(nil, err)
			return
		}
		task.finish(bg, nil)
	}()

	return task
}

// PickUploadedImage decodes r into a data URI background.
// Only one decode may run at a time; a second call while one is pending resolves
// immediately with ErrUploadInFlight. Decode failures resolve with a *DecodeError.
// When r is an io.Closer the selector closes it once it has been read, or right
// away if the upload is rejected.
//
// Parameters:
//   - ctx: Cancels the wait for the decode result
//   - source: Name shown in errors and logs (usually the file name)
//   - r: The file contents
func (s *Selector) PickUploadedImage(ctx context.Context, source string, r io.Reader) *Task {
	s.mu.Lock()
	if s.uploading {
		s.mu.Unlock()
		s.log.Warn("upload ignored, another image is still being decoded")
		s.closeSource(source, r)
		return completedTask(nil, ErrUploadInFlight)
	}
	s.uploading = true
	s.generation++
	gen := s.generation
	s.pending[gen] = struct{}{}
	s.mu.Unlock()

	// The flag is cleared before the result is published so a caller that saw
	// the task resolve can start the next upload straight away.
	results := make(chan decodedUpload, 1)
	go func() {
		d := decodeUpload(r)
		s.closeSource(source, r)
		s.mu.Lock()
		s.uploading = false
		s.mu.Unlock()
		results <- d
	}()

	task := newTask(ctx)
	go func() {
		var d decodedUpload
		select {
		case <-task.ctx.Done():
			s.log.Debugf("upload of %s cancelled", source)
			s.abandon(gen)
			task.finish(nil, task.ctx.Err())
			return
		case d = <-results:
		}

		if d.err != nil {
			s.log.Error(d.err, "uploaded image could not be decoded, keeping previous background")
			s.abandon(gen)
			task.finish(nil, NewDecodeError(source, d.err))
			return
		}

		bg := models.UploadedImage{DataURI: d.dataURI, Image: d.img}
		if err := s.apply(gen, bg); err != nil {
			task.finish(nil, err)
			return
		}
		s.log.Infof("uploaded image %s applied (%dx%d)", source, d.img.Bounds().Dx(), d.img.Bounds().Dy())
		task.finish(bg, nil)
	}()

	return task
}

type decodedUpload struct {
	dataURI string
	img     image.Image
	err     error
}

func decodeUpload(r io.Reader) decodedUpload {
	data, img, _, err := parser.ReadImage(r)
	if err != nil {
		return decodedUpload{err: err}
	}
	uri, err := parser.EncodeDataURI(data)
	return decodedUpload{dataURI: uri, img: img, err: err}
}

// closeSource closes r if it is an io.Closer.
func (s *Selector) closeSource(source string, r io.Reader) {
	c, ok := r.(io.Closer)
	if !ok {
		return
	}
	if err := c.Close(); err != nil {
		s.log.Error(err, "closing upload source "+source)
	}
}

func (s *Selector) nextGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

// beginPending takes a generation for an asynchronous pick and marks it running.
func (s *Selector) beginPending() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.pending[s.generation] = struct{}{}
	return s.generation
}

// abandon forgets a pick that ended without producing a descriptor.
func (s *Selector) abandon(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, gen)
}

// superseded reports whether a pick newer than gen was applied or is still running.
// Must be called with s.mu held.
func (s *Selector) superseded(gen uint64) bool {
	if gen < s.applied {
		return true
	}
	for p := range s.pending {
		if p > gen {
			return true
		}
	}
	return false
}

// apply makes bg active unless a newer pick supersedes it, then notifies listeners.
func (s *Selector) apply(gen uint64, bg models.Background) error {
	s.mu.Lock()
	delete(s.pending, gen)
	if s.superseded(gen) {
		s.mu.Unlock()
		s.log.Debugf("discarding stale %s result (generation %d)", bg.Kind(), gen)
		return ErrSuperseded
	}
	s.applied = gen
	s.active = bg

	listeners := make([]func(models.Background), 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	s.mu.Unlock()

	s.log.Debugf("background changed to %s", bg.CSS())
	for _, fn := range listeners {
		fn(bg)
	}
	return nil
}

// mustApply is used by the synchronous picks, which hold the newest generation
// and always produce valid colours.
func (s *Selector) mustApply(gen uint64, bg models.Background) {
	if err := validation.ValidateBackground(bg); err != nil {
		// Only reachable with a Rand that ignores its bound
		s.log.Error(err, "generated background failed validation")
		return
	}
	if err := s.apply(gen, bg); err != nil {
		s.log.Debug(err.Error())
	}
}
