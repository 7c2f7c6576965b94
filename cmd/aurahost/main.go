// Author:  Niels A.D.
// Project: gowarcraft3 (https://github.com/nielsAD/gowarcraft3)
// License: Mozilla Public License, v2.0

// aurahost is the command-line entry point for the lobby-and-relay engine:
// it loads configuration from flags, builds the map descriptor, and runs
// the host orchestrator until SIGINT.
package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aura-project/w3ghost/game"
	"github.com/aura-project/w3ghost/internal/clock"
	"github.com/aura-project/w3ghost/internal/config"
	"github.com/aura-project/w3ghost/internal/observer"
	"github.com/aura-project/w3ghost/network"
)

var logOut = log.New(os.Stdout, "", log.LstdFlags)
var logErr = log.New(os.Stderr, "", log.LstdFlags)

func buildFlags(cmd *cobra.Command, cfg *config.Config, observerAddr *string) {
	var f = cmd.Flags()
	f.Uint16Var(&cfg.BotHostPort, "hostport", cfg.BotHostPort, "TCP port to listen for game connections on")
	f.StringVar(&cfg.BotVirtualHostName, "virtual-host-name", cfg.BotVirtualHostName, "name shown for the virtual host player")
	f.Uint32Var(&cfg.LanWar3Version, "war3-version", cfg.LanWar3Version, "Warcraft III version advertised on LAN")
	f.Uint32Var(&cfg.BotLatencyMs, "latency", cfg.BotLatencyMs, "action relay interval in milliseconds")
	f.StringVar(&cfg.BotDefaultGameName, "game-name", cfg.BotDefaultGameName, "lobby name advertised on LAN")
	f.Uint32Var(&cfg.MaxPingMs, "max-ping", cfg.MaxPingMs, "ping threshold in milliseconds before a player is soft-kicked from the lobby")

	var autostart int
	f.IntVar(&autostart, "autostart", int(cfg.BotAutoStart), "0=off, 1=on-any-join, 2=on-full")
	cmd.PreRun = func(*cobra.Command, []string) {
		if autostart >= 0 && autostart <= 2 {
			cfg.BotAutoStart = config.AutoStart(autostart)
		}
	}

	f.Uint32Var(&cfg.MapSize, "map-size", cfg.MapSize, "map file size in bytes")
	f.Uint32Var(&cfg.MapInfo, "map-info", cfg.MapInfo, "map real CRC32")
	f.Uint32Var(&cfg.MapCRC, "map-crc", cfg.MapCRC, "map xoro weak hash")
	f.Uint16Var(&cfg.MapWidth, "map-width", cfg.MapWidth, "map width")
	f.Uint16Var(&cfg.MapHeight, "map-height", cfg.MapHeight, "map height")
	f.Uint32Var(&cfg.MapOptions, "map-options", cfg.MapOptions, "map option bitmask (melee/fixed-player-settings/custom-forces)")

	f.StringVar(observerAddr, "observer-addr", "", "if set, serve the read-only dashboard WebSocket on this address (e.g. :8080)")
}

func run(cfg config.Config, observerAddr string) error {
	var m = game.NewMapFromConfig(cfg)
	var clk clock.Clock = clock.System{}

	var newGame = func(hostCounter, entryKey uint32) *game.Game {
		return game.New(m, cfg, clk, logOut, logErr, nil, hostCounter, entryKey)
	}

	var orch, err = network.NewOrchestrator(cfg, clk, logOut, logErr, newGame)
	if err != nil {
		return err
	}

	if observerAddr != "" {
		var hub = observer.NewHub(logErr)
		orch.Observer = hub
		go func() {
			var mux = http.NewServeMux()
			mux.Handle("/ws", hub)
			if err := http.ListenAndServe(observerAddr, mux); err != nil {
				logErr.Printf("observer server: %v", err)
			}
		}()
	}

	var sig = make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		logOut.Println("shutting down...")
		orch.Stop()
	}()

	return orch.Run()
}

func main() {
	var cfg = config.Default()
	var observerAddr string

	var root = &cobra.Command{
		Use:   "aurahost",
		Short: "Warcraft III LAN lobby host and relay engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfg, observerAddr)
		},
	}
	buildFlags(root, &cfg, &observerAddr)

	if err := root.Execute(); err != nil {
		logErr.Fatal(err)
	}
}
