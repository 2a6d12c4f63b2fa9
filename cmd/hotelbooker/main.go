package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"hotelbooker/internal/analytics"
	"hotelbooker/internal/backup"
	"hotelbooker/internal/bookings/availability"
	"hotelbooker/internal/bookings/repository"
	"hotelbooker/internal/bookings/service"
	"hotelbooker/internal/bookings/validator"
	"hotelbooker/internal/export"
	"hotelbooker/internal/favorites"
	"hotelbooker/internal/payments"
	"hotelbooker/internal/pricing"
	"hotelbooker/internal/promos"
	"hotelbooker/internal/receipts"
	"hotelbooker/internal/reviews"
	"hotelbooker/internal/rooms"
	"hotelbooker/internal/settings"
	"hotelbooker/internal/users"
	"hotelbooker/pkg/config"
	apperrors "hotelbooker/pkg/errors"
)

const ServiceName = "hotelbooker"

const dateLayout = "2006-01-02"

// services bundles every wired component behind the command handlers.
type services struct {
	cfg       *config.Config
	rooms     *rooms.Catalog
	bookings  service.BookingService
	avail     *availability.Engine
	promos    *promos.Registry
	users     *users.Service
	reviews   *reviews.Service
	favorites *favorites.Service
	analytics *analytics.Service
	receipts  *receipts.Generator
	exporter  *export.Exporter
	backups   *backup.Service
	settings  *settings.Store
}

func main() {
	cfg := config.Load(ServiceName)
	svcs := initServices(cfg)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	if err := dispatch(ctx, svcs, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", apperrors.Message(err))
		cfg.Log.Error("Command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func initServices(cfg *config.Config) *services {
	catalog := rooms.NewCatalog(cfg)
	repo := repository.NewFileBookingRepository(cfg)
	ledger := payments.NewLedger(cfg)
	registry := promos.NewRegistry(cfg)
	engine := availability.NewEngine(catalog, repo)
	pricer := pricing.NewCalculator(registry)
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingService := service.NewBookingService(repo, catalog, ledger, engine, pricer, bookingValidator, cfg)
	userService := users.NewService(cfg)
	settingsStore := settings.NewStore(cfg)

	return &services{
		cfg:       cfg,
		rooms:     catalog,
		bookings:  bookingService,
		avail:     engine,
		promos:    registry,
		users:     userService,
		reviews:   reviews.NewService(cfg),
		favorites: favorites.NewService(cfg),
		analytics: analytics.NewService(catalog, bookingService, ledger, userService),
		receipts:  receipts.NewGenerator(cfg.ReceiptsDir, settingsStore, cfg.Log),
		exporter:  export.NewExporter(cfg.ExportsDir, cfg.Log),
		backups:   backup.NewService(cfg),
		settings:  settingsStore,
	}
}

func dispatch(ctx context.Context, svcs *services, command string, args []string) error {
	switch command {
	case "rooms":
		return cmdRooms(ctx, svcs, args)
	case "book":
		return cmdBook(ctx, svcs, args)
	case "reschedule":
		return cmdReschedule(ctx, svcs, args)
	case "cancel":
		return cmdCancel(ctx, svcs, args)
	case "bookings":
		return cmdBookings(ctx, svcs, args)
	case "availability":
		return cmdAvailability(ctx, svcs, args)
	case "promos":
		return cmdPromos(ctx, svcs, args)
	case "register":
		return cmdRegister(ctx, svcs, args)
	case "login":
		return cmdLogin(ctx, svcs, args)
	case "review":
		return cmdReview(ctx, svcs, args)
	case "reviews":
		return cmdReviews(ctx, svcs, args)
	case "favorite":
		return cmdFavorite(ctx, svcs, args)
	case "favorites":
		return cmdFavorites(ctx, svcs, args)
	case "stats":
		return cmdStats(ctx, svcs, args)
	case "receipt":
		return cmdReceipt(ctx, svcs, args)
	case "export":
		return cmdExport(ctx, svcs, args)
	case "backup":
		return cmdBackup(ctx, svcs, args)
	case "restore":
		return cmdRestore(ctx, svcs, args)
	case "settings":
		return cmdSettings(ctx, svcs, args)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return apperrors.InvalidInput(fmt.Sprintf("Unknown command: %s", command))
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: hotelbooker <command> [flags]

Guest commands:
  rooms         List rooms (filter by city, price, rating)
  availability  Show remaining units of a room for a date range
  book          Create a booking
  reschedule    Move a booking to new dates
  cancel        Cancel a booking
  bookings      List bookings (filter by guest)
  register      Create a guest account
  login         Verify account credentials
  review        Add or update a room review
  reviews       List reviews of a room
  favorite      Toggle a room on a guest's shortlist
  favorites     List a guest's shortlisted rooms
  receipt       Write a receipt (text or PDF) for a booking

Admin commands:
  promos        List or manage promo codes
  stats         Show revenue, occupancy and booking reports
  export        Export bookings or guests as CSV
  backup        Create a zip backup of the data directory
  restore       Restore the data directory from a backup zip
  settings      Read or change display settings
`)
}

func parseDate(name, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput(fmt.Sprintf("Invalid %s date %q, want YYYY-MM-DD.", name, value))
	}
	return t, nil
}
