package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"innkeep/internal/blob"
	"innkeep/internal/config"
	"innkeep/internal/core"
	"innkeep/internal/logging"
	"innkeep/pkg/domain"
)

// app wires the reservation service to an interactive console session.
type app struct {
	service *core.Service
	archive blob.Store
	in      *bufio.Scanner
	out     io.Writer
	log     zerolog.Logger
}

func run() error {
	// Optional .env for local development; absence is fine.
	_ = godotenv.Load()

	configPath := flag.String("config", "", "path to innkeep.toml (optional)")
	flag.Parse()

	log := logging.ConfigureRuntime()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	store, err := core.OpenPersistentStore(cfg.StorageOptions(), core.NewDefaultRulesEngine())
	if err != nil {
		return fmt.Errorf("open reservation store: %w", err)
	}

	ctx := context.Background()
	archive, err := blob.Open(ctx, cfg.Blob.Driver, cfg.Blob.FSRoot)
	if err != nil {
		return fmt.Errorf("open ledger archive: %w", err)
	}

	a := &app{
		archive: archive,
		in:      bufio.NewScanner(os.Stdin),
		out:     os.Stdout,
		log:     log,
	}
	a.service = core.NewService(store, core.PaymentConfirmerFunc(a.confirmPayment),
		core.WithLogger(logging.ForService(log)),
		core.WithMetrics(core.NewExpvarMetricsRecorder("")),
	)
	if warn := store.LoadWarning(); warn != nil {
		fmt.Fprintf(a.out, "Note: previous reservations could not be read, starting with an empty ledger (%v)\n", warn)
	}
	return a.loop(ctx)
}

func (a *app) loop(ctx context.Context) error {
	for {
		fmt.Fprint(a.out, `
1. Show all rooms
2. Search rooms by category
3. Book a room
4. Cancel a reservation
5. View bookings
6. Export ledger
7. Exit
Choose an option: `)
		choice, ok := a.readLine()
		if !ok {
			return nil
		}
		switch strings.TrimSpace(choice) {
		case "1":
			a.showRooms(ctx)
		case "2":
			a.searchRooms(ctx)
		case "3":
			a.bookRoom(ctx)
		case "4":
			a.cancelReservation(ctx)
		case "5":
			a.viewBookings(ctx)
		case "6":
			a.exportLedger(ctx)
		case "7":
			fmt.Fprintln(a.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(a.out, "Unknown option.")
		}
	}
}

func (a *app) showRooms(ctx context.Context) {
	for _, room := range a.service.ListRooms(ctx) {
		fmt.Fprintln(a.out, room.String())
	}
}

func (a *app) searchRooms(ctx context.Context) {
	raw, ok := a.prompt("Category (Standard/Deluxe/Suite): ")
	if !ok {
		return
	}
	category, err := domain.ParseCategory(raw)
	if err != nil {
		fmt.Fprintf(a.out, "Unknown category %q.\n", strings.TrimSpace(raw))
		return
	}
	rooms := a.service.SearchByCategory(ctx, category)
	if len(rooms) == 0 {
		fmt.Fprintf(a.out, "No %s rooms available.\n", category)
		return
	}
	for _, room := range rooms {
		fmt.Fprintln(a.out, room.String())
	}
}

func (a *app) bookRoom(ctx context.Context) {
	guest, ok := a.prompt("Guest name: ")
	if !ok {
		return
	}
	number, ok := a.promptRoomNumber()
	if !ok {
		return
	}
	created, _, err := a.service.BookRoom(ctx, guest, number)
	if err != nil {
		var pErr core.PersistenceError
		if errors.As(err, &pErr) {
			fmt.Fprintf(a.out, "Warning: booking saved in memory but could not be persisted: %v\n", pErr.Err)
			fmt.Fprintf(a.out, "Booked: %s\n", created.String())
			return
		}
		fmt.Fprintf(a.out, "Booking failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Booked: %s\n", created.String())
}

func (a *app) cancelReservation(ctx context.Context) {
	guest, ok := a.prompt("Guest name: ")
	if !ok {
		return
	}
	number, ok := a.promptRoomNumber()
	if !ok {
		return
	}
	if _, err := a.service.CancelReservation(ctx, guest, number); err != nil {
		var pErr core.PersistenceError
		if errors.As(err, &pErr) {
			fmt.Fprintf(a.out, "Warning: cancellation applied in memory but could not be persisted: %v\n", pErr.Err)
			return
		}
		fmt.Fprintf(a.out, "Cancellation failed: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Reservation cancelled.")
}

func (a *app) viewBookings(ctx context.Context) {
	bookings := a.service.ListBookings(ctx)
	if len(bookings) == 0 {
		fmt.Fprintln(a.out, "No bookings yet.")
		return
	}
	for _, res := range bookings {
		fmt.Fprintln(a.out, res.String())
	}
}

func (a *app) exportLedger(ctx context.Context) {
	info, err := a.service.ExportLedger(ctx, a.archive)
	if err != nil {
		a.log.Error().Err(err).Msg("ledger export failed")
		fmt.Fprintf(a.out, "Export failed: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Ledger exported to %s (%d bytes)\n", info.Key, info.Size)
}

// confirmPayment is the interactive stand-in for a payment gateway.
func (a *app) confirmPayment(context.Context) (bool, error) {
	answer, ok := a.prompt("Simulate payment (enter 'yes' to confirm): ")
	if !ok {
		return false, nil
	}
	return strings.EqualFold(strings.TrimSpace(answer), "yes"), nil
}

func (a *app) promptRoomNumber() (int, bool) {
	raw, ok := a.prompt("Room number: ")
	if !ok {
		return 0, false
	}
	number, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		fmt.Fprintf(a.out, "Invalid room number %q.\n", strings.TrimSpace(raw))
		return 0, false
	}
	return number, true
}

func (a *app) prompt(label string) (string, bool) {
	fmt.Fprint(a.out, label)
	return a.readLine()
}

func (a *app) readLine() (string, bool) {
	if !a.in.Scan() {
		return "", false
	}
	return a.in.Text(), true
}
