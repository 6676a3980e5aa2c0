// Package dummy is an in-memory remote client for testing.
package dummy

import (
	"github.com/barnybug/greenhouse/config"
	"github.com/barnybug/greenhouse/remote"
)

type Client struct {
	AuthErr error
	PushErr error
	PullErr error
	Delta   *config.Delta

	AuthCalls int
	Pushed    []remote.Snapshot
	Pulls     int
}

func (self *Client) Authenticate() error {
	self.AuthCalls++
	return self.AuthErr
}

func (self *Client) PushState(s remote.Snapshot) error {
	if self.PushErr != nil {
		return self.PushErr
	}
	self.Pushed = append(self.Pushed, s)
	return nil
}

func (self *Client) PullConfig() (*config.Delta, error) {
	self.Pulls++
	if self.PullErr != nil {
		return nil, self.PullErr
	}
	if self.Delta == nil {
		return &config.Delta{}, nil
	}
	return self.Delta, nil
}

func (self *Client) Close() {
}
