package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"runcoach/internal/store"
)

var analyzeWeekly bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [athlete-id]",
	Short: "Run one pass now",
	Long: `Run the daily pass immediately, for every athlete or for one.

With --weekly the pass also reviews the most recently completed
training week and adjusts the upcoming plan.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		db, err := store.Open()
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		engine := newEngine(cfg, db, log)
		ctx := cmd.Context()
		now := time.Now()

		if len(args) == 0 {
			return engine.RunAll(ctx, now, analyzeWeekly)
		}

		athleteID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid athlete id %q", args[0])
		}
		if analyzeWeekly {
			rec, err := engine.RunWeekly(ctx, athleteID, now)
			if err != nil {
				return err
			}
			fmt.Printf("Week %d/%d: %s (%s)\n%s\n", rec.ISOYear, rec.ISOWeek, rec.Classification, rec.Action, rec.Explanation)
			return nil
		}
		res, err := engine.RunDaily(ctx, athleteID, now)
		if err != nil {
			return err
		}
		fmt.Printf("State day %s: CTL %.1f, TSB %.1f, readiness %d\n",
			res.State.StateDay, res.State.CTL, res.State.TSB, res.State.ReadinessScore)
		fmt.Printf("Limiter: %s (%s, %s confidence)\n%s\n",
			res.Bottleneck.Primary.Type, res.Bottleneck.Primary.Strength,
			res.Bottleneck.Confidence, res.Bottleneck.Primary.Directive)
		if res.Transition {
			fmt.Printf("Philosophy: switched to %s, volume target %.1f km/week\n",
				res.Period.Mode, res.Period.VolumeTargetKm)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeWeekly, "weekly", false, "also run the weekly review")
}
