package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hr-screener/internal/logger"
	"github.com/spigell/hr-screener/internal/scheduling"
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Preview the next available interview slots without booking them",
	Run: func(cmd *cobra.Command, _ []string) {
		logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			log.Fatalf("creating a logger: %s", err)
		}

		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		count, _ := cmd.Flags().GetInt("count")

		_, allocator := newAllocator(config, logger)
		slots := allocator.GenerateSlots(context.Background(), count)

		if len(slots) == 0 {
			logger.Info("exiting", zap.String("reason", "no available slots"))
			return
		}

		for i, slot := range slots {
			fmt.Printf("%d. %s, %d minutes\n", i+1, slot, slot.DurationMinutes)
		}
	},
}

func init() {
	rootCmd.AddCommand(slotsCmd)

	slotsCmd.Flags().IntP("count", "n", scheduling.DefaultSlots, "number of slots to show")
}
