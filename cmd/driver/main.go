// Command driver runs the APC Smart-UPS MODBUS-over-HID poll loop and
// exposes its variable store over HTTP, grounded on guiperry-HASHER's
// cmd/driver/hasher-host/main.go flag-parsing and signal-handling shape.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/gousb"

	"apc-modbus-hid-driver/internal/api"
	"apc-modbus-hid-driver/internal/config"
	"apc-modbus-hid-driver/internal/driver"
	"apc-modbus-hid-driver/internal/modbus"
	"apc-modbus-hid-driver/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to driver YAML config (optional, defaults apply)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("driver: config: %v", err)
	}

	transport, err := modbus.OpenUSBTransport(gousb.ID(cfg.USB.VendorID), gousb.ID(cfg.USB.ProductID))
	if err != nil {
		log.Fatalf("driver: open usb transport: %v", err)
	}
	defer transport.Close()

	claim := driver.Claim(cfg.USB.VendorID, cfg.USB.ProductID)
	if !claim.Matched {
		log.Fatalf("driver: usb device %04x:%04x is not a supported APC MODBUS-over-HID UPS", cfg.USB.VendorID, cfg.USB.ProductID)
	}

	engine := modbus.NewEngine(transport, cfg.Modbus.SlaveAddr)

	if err := driver.Probe(engine); err != nil {
		log.Fatalf("driver: probe: %v", err)
	}
	log.Printf("driver: %s: claimed usb device %04x:%04x, slave addr %d", driver.Version, cfg.USB.VendorID, cfg.USB.ProductID, cfg.Modbus.SlaveAddr)

	st := store.New()
	poller := driver.NewPoller(engine, st)

	stop := make(chan struct{})
	go poller.Run(cfg.PollInterval, stop)

	srv := &http.Server{
		Addr:    cfg.API.Bind,
		Handler: api.New(poller, st).Handler(),
	}

	go func() {
		log.Printf("driver: api listening on %s", cfg.API.Bind)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("driver: api server: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Print("driver: shutting down")
	close(stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("driver: api shutdown: %v", err)
	}
}
