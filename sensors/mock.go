package sensors

// Mock sensor for testing and for running without hardware attached.
type Mock struct {
	Temp     float64
	Hum      float64
	Raw      int
	TempErr  error
	RawErr   error
	RawReads int
}

func (self *Mock) TempHumidity() (float64, float64, error) {
	if self.TempErr != nil {
		return 0, 0, self.TempErr
	}
	return self.Temp, self.Hum, nil
}

func (self *Mock) ReadRaw() (int, error) {
	self.RawReads++
	if self.RawErr != nil {
		return 0, self.RawErr
	}
	return self.Raw, nil
}
