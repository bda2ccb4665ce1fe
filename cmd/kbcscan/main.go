// cmd/kbcscan/main.go

//go:build linux

package main

import (
	"log"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"github.com/tamzrod/matrix-kbc/internal/config"
	"github.com/tamzrod/matrix-kbc/internal/kbc"
	"github.com/tamzrod/matrix-kbc/internal/uinput"
	"github.com/tamzrod/matrix-kbc/internal/uio"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: kbcscan <config.yaml>")
	}

	cfgPath := os.Args[1]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	k := &cfg.KBC

	// --------------------
	// Hardware backends
	// --------------------

	regs, err := uio.Open(k.UIODevice, uio.DefaultMapSize)
	if err != nil {
		log.Fatalf("uio open failed: %v", err)
	}
	defer regs.Close()

	sink, err := uinput.Open(uinput.Config{
		Path:            k.UinputDevice,
		Name:            k.DeviceName,
		Keycodes:        reportableKeycodes(k),
		EnableKeyRepeat: !k.DisableKeyRepeat,
	})
	if err != nil {
		log.Fatalf("uinput open failed: %v", err)
	}
	defer sink.Close()

	// --------------------
	// Engine
	// --------------------

	eng, err := kbc.Build(k, kbc.Deps{
		Regs: regs,
		Sink: sink,
		Irq:  regs,
	})
	if err != nil {
		log.Fatalf("engine build failed: %v", err)
	}

	if err := eng.Start(); err != nil {
		log.Fatalf("engine start failed: %v", err)
	}
	defer eng.Stop()

	go func() {
		if err := regs.ServeInterrupts(eng.HandleInterrupt); err != nil {
			log.Printf("interrupt pump exited: %v", err)
		}
	}()

	// --------------------
	// Run until signalled.
	// SIGUSR1/SIGUSR2 drive the suspend/resume path for bring-up.
	// --------------------

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGINT, unix.SIGTERM, unix.SIGUSR1, unix.SIGUSR2)

	for sig := range sigs {
		switch sig {
		case unix.SIGUSR1:
			if err := eng.Suspend(); err != nil {
				log.Printf("suspend failed: %v", err)
			} else {
				log.Printf("suspended (state=%s)", eng.State())
			}
		case unix.SIGUSR2:
			if err := eng.Resume(); err != nil {
				log.Printf("resume failed: %v", err)
			} else {
				log.Printf("resumed (state=%s)", eng.State())
			}
		default:
			log.Printf("shutting down on %v", sig)
			return
		}
	}
}

// reportableKeycodes collects every keycode the device may emit:
// both keymap planes plus the synthetic wakeup key.
func reportableKeycodes(k *config.KBCConfig) []uint16 {
	seen := make(map[uint16]bool)
	var out []uint16
	add := func(code uint16) {
		if code != 0 && !seen[code] {
			seen[code] = true
			out = append(out, code)
		}
	}
	for _, e := range k.Keymap {
		add(e.Code)
	}
	for _, e := range k.FnKeymap {
		add(e.Code)
	}
	add(k.WakeupKey)
	return out
}
