package cloudsync

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barnybug/greenhouse/config"
	"github.com/barnybug/greenhouse/remote/dummy"
	"github.com/barnybug/greenhouse/services"
	"github.com/barnybug/greenhouse/state"
)

var base = time.Date(2023, 5, 14, 7, 0, 0, 0, time.UTC)

func at(sec int) {
	now := base.Add(time.Duration(sec) * time.Second)
	Clock = func() time.Time { return now }
}

func setup(t *testing.T, client *dummy.Client) *Service {
	t.Helper()
	services.State = state.New()
	services.Store = config.NewStore(t.TempDir() + "/thresholds.yml")
	at(0)
	t.Cleanup(func() { Clock = time.Now })
	service := &Service{Remote: client}
	require.NoError(t, service.Init())
	return service
}

func TestConnectAndSync(t *testing.T) {
	client := &dummy.Client{}
	service := setup(t, client)
	assert.Equal(t, Disconnected, service.state())

	service.tick()
	assert.Equal(t, Synced, service.state())
	assert.Equal(t, 1, client.AuthCalls)
	assert.Len(t, client.Pushed, 1)
	assert.Equal(t, 1, client.Pulls)

	// steady state: no further handshakes
	service.tick()
	assert.Equal(t, 1, client.AuthCalls)
	assert.Len(t, client.Pushed, 2)
}

func TestSnapshotCarriesReadings(t *testing.T) {
	client := &dummy.Client{}
	service := setup(t, client)
	services.State.UpdateReading(state.SensorReading{Temperature: 21.5, Humidity: 48, Moisture: 55})

	service.tick()
	require.Len(t, client.Pushed, 1)
	assert.Equal(t, 21.5, client.Pushed[0].Sensors.Temperature)
}

func TestHandshakeRateLimited(t *testing.T) {
	client := &dummy.Client{AuthErr: errors.New("connection refused")}
	service := setup(t, client)

	service.tick()
	assert.Equal(t, Disconnected, service.state())
	assert.Equal(t, 1, client.AuthCalls)

	// 20s in: inside the retry window, no attempt made
	at(20)
	service.tick()
	assert.Equal(t, 1, client.AuthCalls)

	// 31s in: window elapsed, handshake retried
	at(31)
	client.AuthErr = nil
	service.tick()
	assert.Equal(t, 2, client.AuthCalls)
	assert.Equal(t, Synced, service.state())
}

func TestPushAuthErrorForcesReauth(t *testing.T) {
	client := &dummy.Client{}
	service := setup(t, client)
	service.tick()
	require.Equal(t, Synced, service.state())

	client.PushErr = errors.New("identifier rejected")
	service.tick()
	assert.Equal(t, Disconnected, service.state())
	// the failed cycle must not go on to pull
	assert.Equal(t, 1, client.Pulls)

	// next cycle is still inside the handshake window
	at(5)
	service.tick()
	assert.Equal(t, 1, client.AuthCalls)
	assert.Equal(t, Disconnected, service.state())
}

func TestPushTransientErrorKeepsSession(t *testing.T) {
	client := &dummy.Client{}
	service := setup(t, client)
	service.tick()

	client.PushErr = errors.New("i/o timeout")
	service.tick()
	assert.Equal(t, Synced, service.state())
	assert.Equal(t, 2, client.Pulls)
}

func TestPullTransientError(t *testing.T) {
	client := &dummy.Client{PullErr: errors.New("i/o timeout")}
	service := setup(t, client)

	service.tick()
	assert.Equal(t, Synced, service.state())

	client.PullErr = nil
	service.tick()
	assert.Equal(t, Synced, service.state())
	assert.Equal(t, 2, client.Pulls)
}

func TestRemoteDeltaApplied(t *testing.T) {
	high := 25.0
	client := &dummy.Client{Delta: &config.Delta{TempHigh: &high}}
	service := setup(t, client)

	service.tick()
	assert.Equal(t, 25.0, services.Store.Thresholds().TempHigh)

	// reapplying the same delta changes nothing
	before := services.Store.Thresholds()
	service.tick()
	assert.Equal(t, before, services.Store.Thresholds())
}
