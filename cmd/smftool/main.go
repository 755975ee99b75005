// Command smftool reads, writes, and checks Standard MIDI Files and
// monitors live MIDI input.
package main

import (
	"errors"
	"fmt"
	"os"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-smf/config"
	"go-smf/debug"
	"go-smf/midi"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}
	if cfg.Debug.Enabled {
		if err := debug.Enable(cfg.Debug.Path); err != nil {
			fmt.Fprintf(os.Stderr, "debug: %v\n", err)
		}
		defer debug.Disable()
	}

	cmd, args := os.Args[1], os.Args[2:]
	debug.Log("cli", "%s %v", cmd, args)

	switch cmd {
	case "list":
		err = listPorts()
	case "dump":
		err = dump(cfg, args)
	case "roundtrip":
		err = roundtrip(cfg, args)
	case "verify":
		err = verifyCmd(cfg, args)
	case "demo":
		err = demo(cfg, args)
	case "listen":
		err = listen(cfg, args)
	case "raw":
		err = raw(cfg, args)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, midi.ErrPathNotFound) {
			os.Exit(3)
		}
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("smftool - Standard MIDI File and live MIDI tool")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list                      - List MIDI ports")
	fmt.Println("  dump <file>               - Print every event in a file")
	fmt.Println("  roundtrip <in> <out>      - Decode and rewrite a file")
	fmt.Println("  verify <file>             - Check a file survives a rewrite and other readers")
	fmt.Println("  demo <out>                - Write a short example file")
	fmt.Println("  listen [-thru p] [ports]  - Monitor live input")
	fmt.Println("  raw <card> <dev>          - Read an ALSA rawmidi device")
}
