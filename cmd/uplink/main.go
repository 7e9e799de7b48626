package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/temoto/uplink/cmd/uplink/decode"
	"github.com/temoto/uplink/cmd/uplink/run"
	"github.com/temoto/uplink/cmd/uplink/subcmd"
	"github.com/temoto/uplink/internal/state"
	"github.com/temoto/uplink/log2"
)

var log = log2.NewStderr(log2.LDebug)

var modules = []subcmd.Mod{
	run.Mod,
	decode.Mod,
}

// go build -ldflags "-X main.BuildVersion=$(git describe --always --dirty)"
var BuildVersion string = "unknown"

func main() {
	log.SetFlags(0)

	flags := flag.NewFlagSet("uplink", flag.ContinueOnError)
	configPath := flags.String("config", "uplink.hcl", "")
	onlyVersion := flags.Bool("version", false, "print build version and exit")
	flags.Usage = func() {
		usage := "Commands:\n"
		for _, m := range modules {
			usage += fmt.Sprintf("  %-8s %s\n", m.Name, m.Usage)
		}
		fmt.Fprintf(flags.Output(), "Usage: %s [option...] [command]\n\nOptions:\n", os.Args[0])
		flags.PrintDefaults()
		fmt.Fprint(flags.Output(), usage)
	}
	err := flags.Parse(os.Args[1:])
	if err != nil {
		if err == flag.ErrHelp { // usage already printed
			os.Exit(0)
		}
		log.Fatal(err)
	}
	if *onlyVersion {
		fmt.Printf("uplink %s\n", BuildVersion)
		return
	}

	command := strings.TrimSpace(flags.Arg(0))
	if command == "" {
		command = run.Mod.Name
	}
	mod, err := subcmd.Parse(command, modules)
	if err != nil {
		log.Fatal(err)
	}

	if subcmd.SdNotify("start") {
		// under systemd assume journal logging, remove timestamp
		log.SetFlags(log2.LServiceFlags)
	} else {
		log.SetFlags(log2.LInteractiveFlags)
	}

	log.Debugf("starting command %s", mod.Name)

	ctx, g := state.NewContext(log)
	g.BuildVersion = BuildVersion
	config := state.MustReadConfig(log, state.NewOsFullReader(), *configPath)
	if err := mod.Main(ctx, config); err != nil {
		g.Fatal(err)
	}
}
