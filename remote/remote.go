// Package remote is the client for the cloud sync service. The remote side
// is an opaque key-value tree: we push state snapshots under
// greenhouse/state/ and pull threshold changes from greenhouse/config/.
package remote

import (
	"strings"

	"github.com/barnybug/greenhouse/config"
	"github.com/barnybug/greenhouse/lib/health"
	"github.com/barnybug/greenhouse/state"
)

// Snapshot is everything pushed each sync cycle - the system's sole
// externally observable telemetry. Faulted sensor channels surface as -999 so
// a remote observer can spot hardware issues.
type Snapshot struct {
	Sensors   state.SensorReading
	Actuators state.ActuatorState
	System    health.Stats
}

type Client interface {
	// Authenticate performs the handshake. Must be called before push/pull
	// and again after an auth-classified error.
	Authenticate() error
	PushState(Snapshot) error
	PullConfig() (*config.Delta, error)
	Close()
}

var authIndicators = []string{
	"auth",
	"token",
	"credential",
	"identifier rejected",
	"bad user name or password",
}

// IsAuthError classifies an error by its text: the remote protocol does not
// expose structured causes, so auth failures are recognised by substring.
// These force a re-handshake; anything else is transient.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, ind := range authIndicators {
		if strings.Contains(msg, ind) {
			return true
		}
	}
	return false
}
