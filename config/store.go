package config

import (
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v2"
)

// Store keeps the thresholds on disk so they survive a reboot. Reads hand out
// copies; the only writer is the cloudsync service, applying remote changes.
type Store struct {
	path string

	mu      sync.RWMutex
	current Thresholds
	saves   int
}

func NewStore(path string) *Store {
	return &Store{path: path, current: DefaultThresholds}
}

// Load reads the stored thresholds. A missing, corrupt or invalid file falls
// back to the defaults, which are immediately written back so the next boot
// finds a good file.
func (s *Store) Load() Thresholds {
	data, err := ioutil.ReadFile(s.path)
	if err == nil {
		var t Thresholds
		err = yaml.Unmarshal(data, &t)
		if err == nil {
			err = t.Validate()
		}
		if err == nil {
			s.mu.Lock()
			s.current = t
			s.mu.Unlock()
			return t
		}
	}
	log.Printf("Thresholds unreadable (%s), using defaults", err)
	if err := s.Save(DefaultThresholds); err != nil {
		log.Println("Writing default thresholds:", err)
	}
	return DefaultThresholds
}

// Thresholds returns a copy of the current values.
func (s *Store) Thresholds() Thresholds {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Save persists thresholds, replacing the file atomically. A failed save is
// logged by the caller and retried on the next change, never in a loop.
func (s *Store) Save(t Thresholds) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(t)
}

func (s *Store) saveLocked(t Thresholds) error {
	data, err := yaml.Marshal(&t)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := ioutil.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return err
	}
	s.current = t
	s.saves++
	return nil
}

// ApplyRemote merges a partial remote update. Fields equal to the current
// value are ignored, so an unchanged remote config costs zero writes; one
// save covers any number of changed fields. Returns whether anything changed.
func (s *Store) ApplyRemote(d Delta) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current
	apply := func(dst *float64, src *float64) bool {
		if src != nil && *src != *dst {
			*dst = *src
			return true
		}
		return false
	}
	changed := apply(&next.TempHigh, d.TempHigh)
	changed = apply(&next.TempLow, d.TempLow) || changed
	changed = apply(&next.HumLow, d.HumLow) || changed
	changed = apply(&next.HumHigh, d.HumHigh) || changed
	changed = apply(&next.MoistureDry, d.MoistureDry) || changed
	changed = apply(&next.MoistureTarget, d.MoistureTarget) || changed
	if !changed {
		return false
	}
	if err := next.Validate(); err != nil {
		log.Println("Ignoring invalid remote thresholds:", err)
		return false
	}
	if err := s.saveLocked(next); err != nil {
		log.Println("Saving thresholds:", err)
	}
	return true
}
