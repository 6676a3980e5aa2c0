// Package api is a service providing a read-only HTTP status API.
//
// The endpoints supported are:
//
// http://localhost:8723/state - current sensor readings and actuator states
//
// http://localhost:8723/config - active control thresholds
//
// http://localhost:8723/health - host telemetry (load, free memory, uptime)
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/barnybug/greenhouse/lib/health"
	"github.com/barnybug/greenhouse/services"
	"github.com/barnybug/greenhouse/state"
)

// Service api
type Service struct {
}

// ID of the service
func (service *Service) ID() string {
	return "api"
}

func errorResponse(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), 500)
}

func apiIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Content-Type", "text/html")
	fmt.Fprintf(w, "<html>Greenhouse is listening</html>")
}

func jsonResponse(w http.ResponseWriter, obj interface{}) {
	w.Header().Add("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	err := enc.Encode(obj)
	if err != nil {
		errorResponse(w, err)
	}
}

func apiState(w http.ResponseWriter, r *http.Request) {
	sensors, actuators := services.State.Snapshot()
	jsonResponse(w, struct {
		Sensors   state.SensorReading `json:"sensors"`
		Actuators state.ActuatorState `json:"actuators"`
	}{sensors, actuators})
}

func apiConfig(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, services.Store.Thresholds())
}

func apiHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, health.Read())
}

func router() *mux.Router {
	router := mux.NewRouter()
	router.Path("/").HandlerFunc(apiIndex)
	router.Path("/state").HandlerFunc(apiState)
	router.Path("/config").HandlerFunc(apiConfig)
	router.Path("/health").HandlerFunc(apiHealth)
	return router
}

type loggingHandler struct {
	Handler http.Handler
}

func (service loggingHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	log.Printf("%s %s\n", req.Method, req.RequestURI)
	service.Handler.ServeHTTP(w, req)
}

// Run the service
func (service *Service) Run() error {
	var handler http.Handler = router()
	handler = loggingHandler{Handler: handler}
	addr := services.Config.Endpoints.Api
	if addr == "" {
		addr = ":8723"
	}
	log.Println("Listening on " + addr)
	return http.ListenAndServe(addr, handler)
}
