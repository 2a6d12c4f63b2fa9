package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"hotelbooker/internal/bookings/service"
	apperrors "hotelbooker/pkg/errors"
	"hotelbooker/pkg/model"
)

func cmdRooms(ctx context.Context, svcs *services, args []string) error {
	fs := flag.NewFlagSet("rooms", flag.ExitOnError)
	city := fs.String("city", "", "filter by destination city")
	minPrice := fs.Float64("min-price", 0, "minimum nightly price")
	maxPrice := fs.Float64("max-price", 0, "maximum nightly price")
	minRating := fs.Float64("min-rating", 0, "minimum rating")
	all := fs.Bool("all", false, "include delisted rooms")
	fs.Parse(args)

	var list []*model.Room
	switch {
	case *city != "":
		list = svcs.rooms.Search(ctx, *city)
	case *maxPrice > 0:
		list = svcs.rooms.SearchByPrice(ctx, *minPrice, *maxPrice)
	case *minRating > 0:
		list = svcs.rooms.SearchByRating(ctx, *minRating)
	case *all:
		list = svcs.rooms.All(ctx)
	default:
		list = svcs.rooms.Available(ctx)
	}

	for _, r := range list {
		stats := svcs.reviews.StatsForRoom(ctx, r.ID)
		fmt.Printf("%-6s %-24s %-14s %-12s %s/night  units=%d  capacity=%d  rating=%s\n",
			r.ID, r.HotelName, r.RoomType, r.Location,
			svcs.settings.FormatAmount(r.PricePerNight), r.Units, r.Capacity, stats.Tag())
	}
	if len(list) == 0 {
		fmt.Println("No rooms found.")
	}
	return nil
}

func cmdAvailability(ctx context.Context, svcs *services, args []string) error {
	fs := flag.NewFlagSet("availability", flag.ExitOnError)
	roomID := fs.String("room", "", "room id")
	checkIn := fs.String("check-in", "", "check-in date (YYYY-MM-DD)")
	checkOut := fs.String("check-out", "", "check-out date (YYYY-MM-DD)")
	fs.Parse(args)

	start, err := parseDate("check-in", *checkIn)
	if err != nil {
		return err
	}
	end, err := parseDate("check-out", *checkOut)
	if err != nil {
		return err
	}
	if _, err := svcs.rooms.ByID(ctx, *roomID); err != nil {
		return apperrors.NotFoundWithID("Room", *roomID)
	}

	units := svcs.avail.RemainingUnits(ctx, *roomID, start, end, "")
	fmt.Printf("Room %s has %d unit(s) free for %s to %s\n", *roomID, units, *checkIn, *checkOut)
	return nil
}

func cmdBook(ctx context.Context, svcs *services, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	guest := fs.String("guest", "", "guest name")
	roomID := fs.String("room", "", "room id")
	checkIn := fs.String("check-in", "", "check-in date (YYYY-MM-DD)")
	checkOut := fs.String("check-out", "", "check-out date (YYYY-MM-DD)")
	guests := fs.Int("guests", 1, "number of guests")
	method := fs.String("method", "CREDIT_CARD", "payment method")
	promo := fs.String("promo", "", "promo code")
	fs.Parse(args)

	start, err := parseDate("check-in", *checkIn)
	if err != nil {
		return err
	}
	end, err := parseDate("check-out", *checkOut)
	if err != nil {
		return err
	}

	booking, err := svcs.bookings.Create(ctx, service.CreateRequest{
		GuestName:     *guest,
		RoomID:        *roomID,
		CheckIn:       start,
		CheckOut:      end,
		Guests:        *guests,
		PaymentMethod: *method,
		PromoCode:     *promo,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Booking %s confirmed: %s nights=%d total=%s\n",
		booking.BookingID, booking.RoomID, booking.Nights(), svcs.settings.FormatAmount(booking.TotalPrice))
	return nil
}

func cmdReschedule(ctx context.Context, svcs *services, args []string) error {
	fs := flag.NewFlagSet("reschedule", flag.ExitOnError)
	bookingID := fs.String("booking", "", "booking id")
	checkIn := fs.String("check-in", "", "new check-in date (YYYY-MM-DD)")
	checkOut := fs.String("check-out", "", "new check-out date (YYYY-MM-DD)")
	guests := fs.Int("guests", 0, "new number of guests (0 keeps current)")
	fs.Parse(args)

	start, err := parseDate("check-in", *checkIn)
	if err != nil {
		return err
	}
	end, err := parseDate("check-out", *checkOut)
	if err != nil {
		return err
	}

	newGuests := *guests
	if newGuests == 0 {
		current, err := svcs.bookings.GetByID(ctx, *bookingID)
		if err != nil {
			return err
		}
		newGuests = current.Guests
	}

	booking, err := svcs.bookings.Reschedule(ctx, *bookingID, start, end, newGuests)
	if err != nil {
		return err
	}
	fmt.Printf("Booking %s moved to %s - %s, new total %s\n",
		booking.BookingID, *checkIn, *checkOut, svcs.settings.FormatAmount(booking.TotalPrice))
	return nil
}

func cmdCancel(ctx context.Context, svcs *services, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	bookingID := fs.String("booking", "", "booking id")
	fs.Parse(args)

	if err := svcs.bookings.Cancel(ctx, *bookingID); err != nil {
		return err
	}
	fmt.Printf("Booking %s cancelled.\n", *bookingID)
	return nil
}

func cmdBookings(ctx context.Context, svcs *services, args []string) error {
	fs := flag.NewFlagSet("bookings", flag.ExitOnError)
	guest := fs.String("guest", "", "filter by guest name (substring)")
	fs.Parse(args)

	var list []*model.Booking
	if *guest != "" {
		list = svcs.bookings.FindByGuest(ctx, *guest)
	} else {
		list = svcs.bookings.GetAll(ctx)
	}

	for _, b := range list {
		fmt.Printf("%-10s %-20s %-6s %s -> %s  guests=%d  %-10s %s\n",
			b.BookingID, b.GuestName, b.RoomID,
			b.CheckIn.Format(dateLayout), b.CheckOut.Format(dateLayout),
			b.Guests, b.Status, svcs.settings.FormatAmount(b.TotalPrice))
	}
	if len(list) == 0 {
		fmt.Println("No bookings found.")
	}
	return nil
}

func cmdPromos(ctx context.Context, svcs *services, args []string) error {
	fs := flag.NewFlagSet("promos", flag.ExitOnError)
	set := fs.String("set", "", "promo code to create or update")
	percent := fs.Float64("percent", 0, "discount percent (with --set)")
	inactive := fs.Bool("inactive", false, "mark the code inactive (with --set)")
	description := fs.String("description", "", "description (with --set)")
	remove := fs.String("delete", "", "promo code to delete")
	fs.Parse(args)

	switch {
	case *set != "":
		if err := svcs.promos.Upsert(ctx, *set, *percent, !*inactive, *description); err != nil {
			return err
		}
		fmt.Printf("Promo %s saved.\n", strings.ToUpper(*set))
		return nil
	case *remove != "":
		if err := svcs.promos.Delete(ctx, *remove); err != nil {
			return err
		}
		fmt.Printf("Promo %s deleted.\n", strings.ToUpper(*remove))
		return nil
	}

	for _, p := range svcs.promos.List(ctx) {
		state := "active"
		if !p.Active {
			state = "inactive"
		}
		fmt.Printf("%-12s %5.1f%%  %-8s %s\n", p.Code, p.Percent, state, p.Description)
	}
	return nil
}

func cmdRegister(ctx context.Context, svcs *services, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	user, err := svcs.users.Register(ctx, *name, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Account %s created for %s.\n", user.UserID, user.Email)
	return nil
}

func cmdLogin(ctx context.Context, svcs *services, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	user, err := svcs.users.Authenticate(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("Welcome back, %s.\n", user.FullName)
	return nil
}

func cmdReview(ctx context.Context, svcs *services, args []string) error {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	roomID := fs.String("room", "", "room id")
	email := fs.String("email", "", "reviewer email")
	rating := fs.Int("rating", 5, "rating 1-5")
	comment := fs.String("comment", "", "review text")
	remove := fs.Bool("delete", false, "delete the review instead")
	fs.Parse(args)

	if *remove {
		if err := svcs.reviews.Delete(ctx, *roomID, *email); err != nil {
			return err
		}
		fmt.Println("Review deleted.")
		return nil
	}
	if err := svcs.reviews.Upsert(ctx, *roomID, *email, *rating, *comment); err != nil {
		return err
	}
	fmt.Println("Review saved.")
	return nil
}

func cmdReviews(ctx context.Context, svcs *services, args []string) error {
	fs := flag.NewFlagSet("reviews", flag.ExitOnError)
	roomID := fs.String("room", "", "room id")
	fs.Parse(args)

	if *roomID == "" {
		return apperrors.InvalidInput("A room id is required.")
	}
	stats := svcs.reviews.StatsForRoom(ctx, *roomID)
	fmt.Printf("Room %s: %s (%d review(s))\n", *roomID, stats.Tag(), stats.Count)
	for _, r := range svcs.reviews.ForRoom(ctx, *roomID) {
		fmt.Printf("  %s  %d/5  %s  %s\n", r.Date.Format(dateLayout), r.Rating, r.UserEmail, r.Comment)
	}
	return nil
}

func cmdFavorite(ctx context.Context, svcs *services, args []string) error {
	fs := flag.NewFlagSet("favorite", flag.ExitOnError)
	email := fs.String("email", "", "guest email")
	roomID := fs.String("room", "", "room id")
	fs.Parse(args)

	added, err := svcs.favorites.Toggle(ctx, *email, *roomID)
	if err != nil {
		return err
	}
	if added {
		fmt.Printf("Room %s added to favorites.\n", *roomID)
	} else {
		fmt.Printf("Room %s removed from favorites.\n", *roomID)
	}
	return nil
}

func cmdFavorites(ctx context.Context, svcs *services, args []string) error {
	fs := flag.NewFlagSet("favorites", flag.ExitOnError)
	email := fs.String("email", "", "guest email")
	fs.Parse(args)

	ids := svcs.favorites.RoomIDs(ctx, *email)
	if len(ids) == 0 {
		fmt.Println("No favorites yet.")
		return nil
	}
	for _, id := range ids {
		if room, err := svcs.rooms.ByID(ctx, id); err == nil {
			fmt.Printf("%-6s %-24s %s\n", room.ID, room.HotelName, room.Location)
		} else {
			fmt.Printf("%-6s (listing removed)\n", id)
		}
	}
	return nil
}

func cmdStats(ctx context.Context, svcs *services, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	months := fs.Int("months", 6, "months of revenue history")
	fs.Parse(args)

	fmt.Printf("Total revenue:  %s\n", svcs.settings.FormatAmount(svcs.analytics.TotalRevenue(ctx)))
	fmt.Printf("Total bookings: %d\n", svcs.analytics.TotalBookings(ctx))
	fmt.Printf("Active guests:  %d\n", svcs.analytics.ActiveGuests(ctx))
	fmt.Printf("Hotels:         %d\n", svcs.analytics.HotelsCount(ctx))
	fmt.Printf("Occupancy:      %.0f%%\n", svcs.analytics.OccupancyRate(ctx)*100)

	fmt.Println("Bookings by status:")
	for status, count := range svcs.analytics.BookingsByStatus(ctx) {
		fmt.Printf("  %-10s %d\n", status, count)
	}

	fmt.Println("Revenue by month:")
	for _, m := range svcs.analytics.RevenueByMonth(ctx, *months) {
		fmt.Printf("  %s  %s\n", m.Month, svcs.settings.FormatAmount(m.Revenue))
	}
	return nil
}

func cmdReceipt(ctx context.Context, svcs *services, args []string) error {
	fs := flag.NewFlagSet("receipt", flag.ExitOnError)
	bookingID := fs.String("booking", "", "booking id")
	email := fs.String("email", "", "guest account email (optional)")
	pdf := fs.Bool("pdf", false, "write a PDF instead of text")
	fs.Parse(args)

	booking, err := svcs.bookings.GetByID(ctx, *bookingID)
	if err != nil {
		return err
	}
	room, _ := svcs.rooms.ByID(ctx, booking.RoomID)
	var user *model.User
	if *email != "" {
		user, _ = svcs.users.ByEmail(ctx, *email)
	}

	var path string
	if *pdf {
		path, err = svcs.receipts.WritePDF(booking, room, user)
	} else {
		path, err = svcs.receipts.WriteText(booking, room, user)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Receipt written to %s\n", path)
	return nil
}

func cmdExport(ctx context.Context, svcs *services, args []string) error {
	if len(args) < 1 {
		return apperrors.InvalidInput("Usage: export bookings|guests")
	}

	var (
		path string
		err  error
	)
	switch args[0] {
	case "bookings":
		path, err = svcs.exporter.ExportBookings(svcs.bookings.GetAll(ctx), svcs.rooms.All(ctx))
	case "guests":
		path, err = svcs.exporter.ExportGuests(svcs.users.All(ctx))
	default:
		return apperrors.InvalidInput(fmt.Sprintf("Unknown export target: %s", args[0]))
	}
	if err != nil {
		return err
	}
	fmt.Printf("Export written to %s\n", path)
	return nil
}

func cmdBackup(ctx context.Context, svcs *services, args []string) error {
	path, err := svcs.backups.CreateBackup()
	if err != nil {
		return err
	}
	fmt.Printf("Backup written to %s\n", path)
	return nil
}

func cmdRestore(ctx context.Context, svcs *services, args []string) error {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	file := fs.String("file", "", "backup zip to restore from")
	fs.Parse(args)

	if *file == "" {
		return apperrors.InvalidInput("A backup file is required.")
	}
	fmt.Fprintln(os.Stderr, "Restoring will overwrite the current data directory; a safety backup is taken first.")
	if err := svcs.backups.RestoreFrom(*file); err != nil {
		return err
	}
	fmt.Println("Restore complete.")
	return nil
}

func cmdSettings(ctx context.Context, svcs *services, args []string) error {
	fs := flag.NewFlagSet("settings", flag.ExitOnError)
	currency := fs.String("currency", "", "set display currency (USD or PHP)")
	key := fs.String("set", "", "setting key to change")
	value := fs.String("value", "", "new value (with --set)")
	fs.Parse(args)

	switch {
	case *currency != "":
		if err := svcs.settings.SetCurrency(*currency); err != nil {
			return err
		}
		fmt.Printf("Display currency set to %s.\n", svcs.settings.Currency())
	case *key != "":
		if err := svcs.settings.Set(*key, *value); err != nil {
			return err
		}
		fmt.Printf("Setting %s updated.\n", *key)
	default:
		fmt.Printf("currency=%s\n", svcs.settings.Currency())
	}
	return nil
}
