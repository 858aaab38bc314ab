package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	logsCmd := &cobra.Command{Use: "logs", Short: "Workout and meal log operations"}

	// list workouts
	workoutsCmd := &cobra.Command{
		Use:   "workouts",
		Short: "List workout logs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(apiFlag+"/api/workout-logs", "")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	logsCmd.AddCommand(workoutsCmd)

	// list meals
	mealsCmd := &cobra.Command{
		Use:   "meals",
		Short: "List meal logs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet(apiFlag+"/api/meal-logs", "")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	logsCmd.AddCommand(mealsCmd)

	// log a workout
	var workoutType, activityName, timestamp string
	var duration int
	logWorkoutCmd := &cobra.Command{
		Use:   "workout",
		Short: "Log a workout",
		RunE: func(cmd *cobra.Command, args []string) error {
			if activityName == "" {
				activityName = workoutType
			}
			if timestamp == "" {
				timestamp = time.Now().Format("2006-01-02")
			}
			payload := map[string]interface{}{
				"workoutType":  workoutType,
				"activityName": activityName,
				"duration":     duration,
				"timestamp":    timestamp,
				"source":       "web",
			}
			data, err := doPostJSON(apiFlag+"/api/log-workout", "", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	logWorkoutCmd.Flags().StringVarP(&workoutType, "type", "w", "cardio", "Workout type")
	logWorkoutCmd.Flags().StringVarP(&activityName, "activity", "n", "", "Activity name (defaults to the workout type)")
	logWorkoutCmd.Flags().IntVarP(&duration, "duration", "d", 30, "Duration in minutes")
	logWorkoutCmd.Flags().StringVar(&timestamp, "date", "", "Date (YYYY-MM-DD, defaults to today)")
	logsCmd.AddCommand(logWorkoutCmd)

	// log a meal
	var mealType, foodItems, mealDate string
	logMealCmd := &cobra.Command{
		Use:   "meal",
		Short: "Log a meal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if mealDate == "" {
				mealDate = time.Now().Format("2006-01-02")
			}
			items := []string{}
			if foodItems != "" {
				for _, it := range strings.Split(foodItems, ",") {
					items = append(items, strings.TrimSpace(it))
				}
			}
			payload := map[string]interface{}{
				"mealType":  mealType,
				"foodItems": items,
				"timestamp": mealDate,
				"source":    "web",
			}
			data, err := doPostJSON(apiFlag+"/api/log-meal", "", payload)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	logMealCmd.Flags().StringVarP(&mealType, "type", "m", "snack", "Meal type")
	logMealCmd.Flags().StringVarP(&foodItems, "items", "i", "", "Comma-separated food items")
	logMealCmd.Flags().StringVar(&mealDate, "date", "", "Date (YYYY-MM-DD, defaults to today)")
	logsCmd.AddCommand(logMealCmd)

	rootCmd.AddCommand(logsCmd)
}
