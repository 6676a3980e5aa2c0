package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/barnybug/greenhouse/config"
	"github.com/barnybug/greenhouse/services"
	"github.com/barnybug/greenhouse/state"
)

func Example_interfaces() {
	var _ services.Service = (*Service)(nil)
	// Output:
}

func Example_index() {
	rec := httptest.NewRecorder()
	r := http.Request{}
	apiIndex(rec, &r)
	fmt.Println(rec.Body)
	// Output:
	// <html>Greenhouse is listening</html>
}

func ExampleState() {
	services.State = state.New()
	services.State.UpdateReading(state.SensorReading{Temperature: 21.5, Humidity: 48, Moisture: 55})
	services.State.UpdateActuators(state.ActuatorState{Pump: true})
	rec := httptest.NewRecorder()
	r := http.Request{}
	apiState(rec, &r)
	fmt.Println(rec.Body)
	// Output:
	// {"sensors":{"temperature":21.5,"humidity":48,"moisture":55},"actuators":{"pump":true,"fan":false,"lights":false,"humidifier":false}}
}

func Example_stateFaulted() {
	services.State = state.New()
	rec := httptest.NewRecorder()
	r := http.Request{}
	apiState(rec, &r)
	fmt.Println(rec.Body)
	// Output:
	// {"sensors":{"temperature":-999,"humidity":-999,"moisture":-999},"actuators":{"pump":false,"fan":false,"lights":false,"humidifier":false}}
}

func ExampleConfig() {
	services.Store = config.NewStore("")
	rec := httptest.NewRecorder()
	r := http.Request{}
	apiConfig(rec, &r)
	fmt.Println(rec.Body)
	// Output:
	// {"temp_high":22,"temp_low":20,"hum_low":45,"hum_high":50,"moisture_dry":45,"moisture_target":60,"adc_wet":1500,"adc_dry":4095}
}
