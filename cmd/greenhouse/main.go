package main

import (
	"flag"
	"fmt"
	"log"
	"sort"

	"github.com/barnybug/greenhouse/config"
	"github.com/barnybug/greenhouse/services"
	"github.com/barnybug/greenhouse/services/api"
	"github.com/barnybug/greenhouse/services/cloudsync"
	"github.com/barnybug/greenhouse/services/control"
	"github.com/barnybug/greenhouse/services/sampler"
)

func registerServices() {
	// register available services
	services.Register(&api.Service{})
	services.Register(&cloudsync.Service{})
	services.Register(&control.Service{})
	services.Register(&sampler.Service{})
}

func usage() {
	fmt.Println("Usage: greenhouse COMMAND [SERVICE...]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("   run [service...]   Run services (default: all)")
	fmt.Println("   config             Print an example configuration")
	fmt.Println()
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
		return
	}

	ps := []string{}
	if flag.NArg() > 1 {
		ps = flag.Args()[1:]
	}

	services.SetupLogging()

	command := flag.Args()[0]
	switch command {
	default:
		usage()
	case "config":
		fmt.Print(config.ExampleYaml)
	case "run":
		run(ps)
	}
}

// Start builtin services
func run(ss []string) {
	conf, err := config.Open()
	if err != nil {
		log.Printf("Configuration unreadable (%s), using example config", err)
		conf = config.ExampleConfig
	}
	if err := services.Setup(conf); err != nil {
		log.Fatalln("Setup failed:", err)
	}
	defer services.Shutdown()
	registerServices()
	if len(ss) == 0 {
		ss = services.Registered()
		sort.Strings(ss)
	}
	services.Launch(ss)
}
