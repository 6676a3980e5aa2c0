// Service to synchronize with the remote monitoring service: pushes a state
// snapshot every cycle and pulls threshold changes back into the local
// store. The connection lifecycle is a small state machine:
//
//	Disconnected -> Authenticating -> Synced
//
// with any auth-classified error dropping back to Disconnected. Handshakes
// are attempted at most once per retry interval - a flat 30s, not
// exponential: the link to a greenhouse either works or it doesn't, and the
// controller must keep trying indefinitely.
package cloudsync

import (
	"log"
	"time"

	"github.com/barnybug/gofsm"
	"github.com/cenkalti/backoff/v4"

	"github.com/barnybug/greenhouse/lib/health"
	"github.com/barnybug/greenhouse/remote"
	"github.com/barnybug/greenhouse/services"
	"github.com/barnybug/greenhouse/util"
)

const (
	Period        = 5 * time.Second
	RetryInterval = 30 * time.Second
)

const (
	Disconnected   = "Disconnected"
	Authenticating = "Authenticating"
	Synced         = "Synced"
)

var automatonYaml = `
sync:
  start: Disconnected
  states:
    Disconnected: {}
    Authenticating: {}
    Synced: {}
  transitions:
    Disconnected->Authenticating:
      - when: handshake
    Authenticating->Synced:
      - when: authenticated
    Authenticating->Disconnected:
      - when: autherror
    Synced->Disconnected:
      - when: autherror
`

var Clock = func() time.Time {
	return time.Now()
}

type syncEvent string

func (self syncEvent) Match(s string) bool {
	return string(self) == s
}

// Service cloudsync
type Service struct {
	Remote remote.Client

	automata    *gofsm.Automata
	retry       *backoff.ConstantBackOff
	lastAttempt time.Time
}

func (self *Service) ID() string {
	return "cloudsync"
}

func (self *Service) Init() error {
	if self.Remote == nil {
		self.Remote = services.Remote
	}
	automata, err := gofsm.Load([]byte(automatonYaml))
	if err != nil {
		return err
	}
	self.automata = automata
	self.retry = backoff.NewConstantBackOff(RetryInterval)
	return nil
}

func (self *Service) state() string {
	return self.automata.Automaton["sync"].State.Name
}

func (self *Service) process(event string) {
	self.automata.Process(syncEvent(event))
}

// connect performs the handshake, rate limited to one attempt per retry
// interval. Attempts inside the window are skipped.
func (self *Service) connect() {
	now := Clock()
	if !self.lastAttempt.IsZero() && now.Sub(self.lastAttempt) < self.retry.NextBackOff() {
		log.Println("Handshake rate limited, retrying later")
		return
	}
	self.lastAttempt = now
	self.process("handshake")
	if err := self.Remote.Authenticate(); err != nil {
		log.Println("Handshake failed:", err)
		self.process("autherror")
		return
	}
	log.Println("Authenticated with remote service")
	self.process("authenticated")
}

// push sends the snapshot - the system's only outward telemetry. An
// auth-classified failure forces a fresh handshake; anything else waits for
// the next cycle.
func (self *Service) push() {
	sensors, actuators := services.State.Snapshot()
	snapshot := remote.Snapshot{
		Sensors:   sensors,
		Actuators: actuators,
		System:    health.Read(),
	}
	if err := self.Remote.PushState(snapshot); err != nil {
		log.Println("Pushing state:", err)
		if remote.IsAuthError(err) {
			self.process("autherror")
		}
	}
}

// pull applies remote threshold changes. Pull failures are always transient:
// the stored config is authoritative until the remote is readable again.
func (self *Service) pull() {
	delta, err := self.Remote.PullConfig()
	if err != nil {
		log.Println("Pulling config:", err)
		return
	}
	if delta == nil || delta.Empty() {
		return
	}
	if services.Store.ApplyRemote(*delta) {
		log.Println("Applied remote threshold change")
	}
}

func (self *Service) tick() {
	switch self.state() {
	case Disconnected:
		self.connect()
	}
	// connect may have brought us up; a push failure may drop us back
	if self.state() == Synced {
		self.push()
	}
	if self.state() == Synced {
		self.pull()
	}
}

func (self *Service) watch() {
	for {
		select {
		case change := <-self.automata.Changes:
			log.Printf("sync: %s -> %s (after %s)", change.Old, change.New, util.ShortDuration(change.Duration))
		case <-self.automata.Actions:
		}
	}
}

// Run the service
func (self *Service) Run() error {
	go self.watch()
	ticker := util.NewScheduler(0, Period)
	for range ticker.C {
		self.tick()
	}
	return nil
}
