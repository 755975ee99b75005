package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go-smf/config"
	"go-smf/device"
	"go-smf/midi"
	"go-smf/theme"
	"go-smf/tui"
)

func listPorts() error {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	type result struct {
		ins  []string
		outs []string
	}
	ch := make(chan result, 1)
	go func() {
		ch <- result{ins: device.InPortNames(), outs: device.OutPortNames()}
	}()

	select {
	case r := <-ch:
		for i, name := range r.ins {
			fmt.Printf("  %d: %s\n", i, name)
		}
		fmt.Println("\n=== MIDI Output Ports ===")
		for i, name := range r.outs {
			fmt.Printf("  %d: %s\n", i, name)
		}
		return nil
	case <-time.After(3 * time.Second):
		return fmt.Errorf("port enumeration timed out")
	}
}

func listen(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("listen", flag.ExitOnError)
	thru := fs.String("thru", cfg.Live.ThruPort, "echo input to the output port matching this name")
	fs.Parse(args)

	for _, name := range fs.Args() {
		cfg.AddInput(config.InputConfig{PortName: name, AutoConnect: true})
	}

	var out *device.Output
	if *thru != "" {
		var err error
		if out, err = device.OpenOutput(*thru); err != nil {
			return err
		}
		defer out.Close()
	}

	mgr := device.NewManager(cfg.ManagerOptions()...)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go mgr.Run(ctx)

	m := tui.NewModel(mgr, theme.New(theme.Default()), out)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	if out != nil {
		out.Panic()
	}
	return err
}

func raw(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("raw", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: smftool raw <card> <dev>")
	}
	card, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("card: %w", err)
	}
	dev, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		return fmt.Errorf("dev: %w", err)
	}

	src, err := device.OpenRaw(card, dev)
	if err != nil {
		return err
	}
	fmt.Printf("Listening on %s. Ctrl+C to exit.\n", device.RawPath(card, dev))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	l := device.NewListener(src, cfg.ListenerOptions()...)
	err = l.Listen(ctx, func(ev midi.Event) {
		fmt.Printf("[%s] %-22s %s\n", time.Now().Format("15:04:05.000"), ev.Kind(), midi.Describe(ev))
	})
	if errors.Is(err, midi.ErrKilled) {
		return nil
	}
	return err
}
