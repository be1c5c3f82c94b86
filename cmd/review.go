package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/SpynitterMina/DayWiseV2/internal/entity"
	"github.com/SpynitterMina/DayWiseV2/internal/usecase"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Manage spaced-repetition review items",
}

var reviewAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new review item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, _ := cmd.Flags().GetString("content")
		dateFlag, _ := cmd.Flags().GetString("date")

		firstReview := entity.DateOf(time.Now())
		if dateFlag != "" {
			parsed, err := entity.ParseDate(dateFlag)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", dateFlag, err)
			}
			firstReview = parsed
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		item, err := a.reviews.Add(cmd.Context(), args[0], content, firstReview)
		if err != nil {
			return err
		}
		cmd.Printf("added %s (%s), first review on %s\n", item.Title, item.ID, entity.FormatDate(item.NextReviewDate))
		return nil
	},
}

var reviewListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all review items ordered by next review date",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		items, err := a.reviews.List(cmd.Context())
		if err != nil {
			return err
		}
		printReviewItems(items)
		return nil
	},
}

var reviewDueCmd = &cobra.Command{
	Use:   "due",
	Short: "List items due on a date (default today)",
	RunE: func(cmd *cobra.Command, args []string) error {
		dateFlag, _ := cmd.Flags().GetString("date")

		date := entity.DateOf(time.Now())
		if dateFlag != "" {
			parsed, err := entity.ParseDate(dateFlag)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", dateFlag, err)
			}
			date = parsed
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		items, err := a.reviews.ListForDate(cmd.Context(), date)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			cmd.Printf("nothing due on %s\n", entity.FormatDate(date))
			return nil
		}
		printReviewItems(items)
		return nil
	},
}

var reviewMarkCmd = &cobra.Command{
	Use:   "mark <id> <easy|medium|hard>",
	Short: "Record a review outcome and reschedule the item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		difficulty, err := entity.ParseDifficulty(args[1])
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		item, err := a.reviews.MarkReviewed(cmd.Context(), args[0], difficulty)
		if err != nil {
			return err
		}
		if item == nil {
			cmd.Printf("no review item with id %s\n", args[0])
			return nil
		}
		cmd.Printf("%s reviewed (%s): next in %d day(s) on %s\n",
			item.Title, difficulty, item.CurrentIntervalDays, entity.FormatDate(item.NextReviewDate))
		return nil
	},
}

var reviewEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a review item without rescheduling it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var updates usecase.ReviewItemUpdate
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			updates.Title = &title
		}
		if cmd.Flags().Changed("content") {
			content, _ := cmd.Flags().GetString("content")
			updates.Content = &content
		}
		if cmd.Flags().Changed("next-date") {
			raw, _ := cmd.Flags().GetString("next-date")
			parsed, err := entity.ParseDate(raw)
			if err != nil {
				return fmt.Errorf("invalid --next-date %q: %w", raw, err)
			}
			updates.NextReviewDate = &parsed
		}
		if cmd.Flags().Changed("status") {
			raw, _ := cmd.Flags().GetString("status")
			status, err := entity.ParseReviewStatus(raw)
			if err != nil {
				return err
			}
			updates.Status = &status
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		item, err := a.reviews.Update(cmd.Context(), args[0], updates)
		if err != nil {
			return err
		}
		cmd.Printf("updated %s (%s)\n", item.Title, item.ID)
		return nil
	},
}

var reviewRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a review item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.reviews.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.Printf("deleted %s\n", args[0])
		return nil
	},
}

func printReviewItems(items []entity.ReviewItem) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tNEXT\tINTERVAL\tREVIEWS\tSTATUS")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dd\t%d\t%s\n",
			item.ID,
			item.Title,
			entity.FormatDate(item.NextReviewDate),
			item.CurrentIntervalDays,
			item.TimesReviewed,
			item.Status,
		)
	}
	w.Flush()
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.AddCommand(reviewAddCmd, reviewListCmd, reviewDueCmd, reviewMarkCmd, reviewEditCmd, reviewRmCmd)

	reviewAddCmd.Flags().String("content", "", "optional notes attached to the item")
	reviewAddCmd.Flags().String("date", "", "first review date, yyyy-mm-dd (default today)")

	reviewDueCmd.Flags().String("date", "", "date to check, yyyy-mm-dd (default today)")

	reviewEditCmd.Flags().String("title", "", "new title")
	reviewEditCmd.Flags().String("content", "", "new content")
	reviewEditCmd.Flags().String("next-date", "", "manually reschedule, yyyy-mm-dd")
	reviewEditCmd.Flags().String("status", "", "new status: new, learning or graduated")
}
