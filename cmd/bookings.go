package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/booking"
	"github.com/spigell/hr-screener/internal/logger"
	"github.com/spigell/hr-screener/internal/screening"
)

const PromptBack = "back"

var bookingsCmd = &cobra.Command{
	Use:   "bookings",
	Short: "Inspect and manage booked interview slots",
}

var bookingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List booked interview slots",
	Run: func(_ *cobra.Command, _ []string) {
		store, _ := newBookingStore()
		printBookings(store.LoadAll(context.Background()), store.Path())
	},
}

var bookingsCancelCmd = &cobra.Command{
	Use:   "cancel",
	Short: "Cancel one booking and free its slot",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()
		store, logger := newBookingStore()

		bookings := store.LoadAll(ctx)
		if len(bookings) == 0 {
			logger.Info("exiting", zap.String("reason", "no bookings found"))
			return
		}

		index, _ := cmd.Flags().GetInt("index")
		if index <= 0 {
			selected, err := selectBooking(bookings)
			if errors.Is(err, errBack) {
				return
			}
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
			index = selected
		}

		cancelled, err := store.Cancel(ctx, index-1)
		if err != nil {
			logger.Fatal("cancelling booking", zap.Error(err), zap.Int("index", index))
		}

		fmt.Printf("Cancelled: %s on %s at %s\n", cancelled.CandidateName, cancelled.Date, cancelled.Time)
	},
}

var bookingsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every booking",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()
		store, logger := newBookingStore()

		count := len(store.LoadAll(ctx))
		if count == 0 {
			logger.Info("exiting", zap.String("reason", "no bookings found"))
			return
		}

		if auto, _ := cmd.Flags().GetBool("auto-approve"); !auto {
			prompt := promptui.Select{
				Label: fmt.Sprintf("Delete all %d bookings?", count),
				Items: []string{PromptNo, PromptYes},
			}
			_, answer, err := prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
			if answer != PromptYes {
				logger.Info("exiting", zap.String("reason", "got no from prompt"))
				return
			}
		}

		if err := store.Clear(ctx); err != nil {
			logger.Fatal("clearing bookings", zap.Error(err))
		}

		logger.Info("bookings cleared", zap.Int("count", count), zap.String("file", store.Path()))
	},
}

var errBack = errors.New("back requested")

func init() {
	rootCmd.AddCommand(bookingsCmd)
	bookingsCmd.AddCommand(bookingsListCmd, bookingsCancelCmd, bookingsClearCmd)

	bookingsCancelCmd.Flags().IntP("index", "i", 0, "1-based number of the booking as shown by list (prompts when unset)")
	bookingsClearCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation")
}

func newBookingStore() (*booking.FileStore, *zap.Logger) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	return booking.NewFileStore(config.BookingsFile, logger), logger
}

// selectBooking returns the 1-based position of the chosen booking.
func selectBooking(bookings []screening.Booking) (int, error) {
	items := make([]string, 0, len(bookings)+1)
	for i, b := range bookings {
		items = append(items, bookingLabel(i+1, b))
	}

	prompt := promptui.Select{
		Label: "Choose a booking to cancel and press ENTER",
		Items: append(items, PromptBack),
		Size:  10,
	}

	i, selected, err := prompt.Run()
	if err != nil {
		return 0, err
	}
	if selected == PromptBack {
		return 0, errBack
	}
	return i + 1, nil
}

func printBookings(bookings []screening.Booking, path string) {
	if len(bookings) == 0 {
		fmt.Printf("No bookings in %s\n", path)
		return
	}

	fmt.Printf("%d booking(s) in %s\n\n", len(bookings), path)
	for i, b := range bookings {
		fmt.Println(bookingLabel(i+1, b))
	}
}

func bookingLabel(n int, b screening.Booking) string {
	booked := "unknown"
	if !b.BookedAt.IsZero() {
		booked = b.BookedAt.Local().Format("2006-01-02 15:04")
	}
	return fmt.Sprintf("%d. %s | %s at %s (%s) | booked %s", n, b.CandidateName, b.Date, b.Time, b.Timezone, booked)
}
