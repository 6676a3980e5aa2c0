// The greenhouse environment controller
//
// Features
//
// - Climate control with hysteresis (no actuator chatter around thresholds)
//
// - Soil moisture driven irrigation
//
// - Fault tolerant sensing (a dead sensor never waters the floor)
//
// - Durable threshold configuration, remotely adjustable
//
// - Cloud synchronization over MQTT (state out, config in)
//
// - Lightweight, small memory footprint (runs on the Raspberry Pi)
//
// - Read-only HTTP status API
//
// Services
//
// - sampler: polls the sensors every 2s, oversampling the soil probe
//
// - control: drives fan, heat lamps, humidifier and pump every 1s
//
// - cloudsync: pushes state and pulls threshold changes every 5s
//
// - api: local HTTP status endpoint
//
// Hardware supported
//
// - Serial-attached temperature/humidity/soil sensor bridges
//
// - Xiaomi Miflora bluetooth plant sensors
//
// - Relay boards on GPIO (active low)
package greenhouse
