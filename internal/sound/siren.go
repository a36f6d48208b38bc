package sound

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultSirenInterval is how often the siren sweep repeats.
const DefaultSirenInterval = time.Second

// Siren is the handle of a looping siren. It owns one goroutine and one
// ticker; Stop releases both.
type Siren struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

func startSiren(out Output, every time.Duration, log zerolog.Logger) *Siren {
	s := &Siren{stop: make(chan struct{}), done: make(chan struct{})}
	go s.loop(out, every, log)
	return s
}

func (s *Siren) loop(out Output, every time.Duration, log zerolog.Logger) {
	defer close(s.done)
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		if err := out.Play(NewEvent(CueSiren)); err != nil {
			log.Debug().Err(err).Msg("siren sweep")
		}
		select {
		case <-s.stop:
			return
		case <-t.C:
		}
	}
}

// Stop cancels the loop and waits for its goroutine to exit.
// Safe to call more than once.
func (s *Siren) Stop() {
	s.once.Do(func() { close(s.stop) })
	<-s.done
}
