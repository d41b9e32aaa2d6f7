package audio

import (
	"log"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"golang.org/x/time/rate"
)

const (
	sampleRate = beep.SampleRate(48000)

	// ChimeInterval is the minimum spacing between chimes
	ChimeInterval = 250 * time.Millisecond
)

// Chime plays a short cue on focus selection
// Without an initialized speaker every call is a silent no-op
type Chime struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	limiter     *rate.Limiter
	sink        func(beep.Streamer)
	initialized bool
}

// NewChime creates an uninitialized chime
func NewChime() *Chime {
	return &Chime{
		mixer:   &beep.Mixer{},
		limiter: rate.NewLimiter(rate.Every(ChimeInterval), 1),
	}
}

// Initialize opens the audio device
// A failure leaves the chime silent; callers log it and carry on
func (c *Chime) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}

	speaker.Play(c.mixer)
	c.sink = func(s beep.Streamer) {
		speaker.Lock()
		c.mixer.Add(s)
		speaker.Unlock()
	}
	c.initialized = true
	return nil
}

// Play queues the chime unless one started within ChimeInterval
func (c *Chime) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized || !c.limiter.Allow() {
		return
	}

	s, err := focusChime(sampleRate)
	if err != nil {
		log.Printf("audio: chime: %v", err)
		return
	}
	c.sink(s)
}

// Cleanup stops queued sounds
func (c *Chime) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	c.initialized = false
}
