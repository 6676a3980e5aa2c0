package sensors

import (
	"bufio"
	"io"
	"log"
	"math"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/tarm/serial"
)

var (
	reTemp = regexp.MustCompile(`T=(-?[0-9.]+|nan)`)
	reHum  = regexp.MustCompile(`H=([0-9.]+|nan)`)
	reRaw  = regexp.MustCompile(`M=(\d+)`)
)

// Bridge reads the sensor microcontroller over a serial line. The firmware
// emits lines like:
//
//	T=21.3 H=45.2 M=1833
//
// with nan for a channel it could not read. Values are cached; a channel not
// refreshed within maxAge counts as faulted.
type Bridge struct {
	mu     sync.Mutex
	temp   float64
	hum    float64
	raw    int
	tempAt time.Time
	humAt  time.Time
	rawAt  time.Time

	maxAge time.Duration
}

var Clock = func() time.Time {
	return time.Now()
}

// NewBridge opens the serial device and starts the background reader.
func NewBridge(device string, baud int, maxAge time.Duration) (*Bridge, error) {
	c := &serial.Config{Name: device, Baud: baud}
	s, err := serial.OpenPort(c)
	if err != nil {
		return nil, errors.Wrap(err, "opening serial port")
	}
	b := &Bridge{maxAge: maxAge}
	go b.watch(s)
	return b, nil
}

func (self *Bridge) watch(r io.Reader) {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			log.Println("Error reading serial line:", err)
			return
		}
		if line == "" {
			// empty read, wait a bit
			time.Sleep(time.Millisecond * 500)
			continue
		}
		self.parse(line)
	}
}

func (self *Bridge) parse(line string) {
	now := Clock()
	self.mu.Lock()
	defer self.mu.Unlock()
	if m := reTemp.FindStringSubmatch(line); m != nil && m[1] != "nan" {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			self.temp = v
			self.tempAt = now
		}
	}
	if m := reHum.FindStringSubmatch(line); m != nil && m[1] != "nan" {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			self.hum = v
			self.humAt = now
		}
	}
	if m := reRaw.FindStringSubmatch(line); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			self.raw = v
			self.rawAt = now
		}
	}
}

func (self *Bridge) fresh(at time.Time) bool {
	return !at.IsZero() && Clock().Sub(at) < self.maxAge
}

// TempHumidity returns the cached channels, NaN for any that have gone stale.
func (self *Bridge) TempHumidity() (float64, float64, error) {
	self.mu.Lock()
	defer self.mu.Unlock()
	temp, hum := self.temp, self.hum
	if !self.fresh(self.tempAt) {
		temp = math.NaN()
	}
	if !self.fresh(self.humAt) {
		hum = math.NaN()
	}
	return temp, hum, nil
}

// ReadRaw returns the latest raw moisture count.
func (self *Bridge) ReadRaw() (int, error) {
	self.mu.Lock()
	defer self.mu.Unlock()
	if !self.fresh(self.rawAt) {
		return 0, errors.New("no recent moisture sample")
	}
	return self.raw, nil
}
