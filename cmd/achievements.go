package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/SpynitterMina/DayWiseV2/internal/entity"
)

var achievementsCmd = &cobra.Command{
	Use:   "achievements",
	Short: "Inspect and evaluate the achievement catalogue",
}

var achievementsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List achievements and their unlocked state",
	RunE: func(cmd *cobra.Command, args []string) error {
		showSecret, _ := cmd.Flags().GetBool("all")

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		unlocked, err := a.achievements.ListUnlocked(cmd.Context())
		if err != nil {
			return err
		}
		unlockedByID := lo.SliceToMap(unlocked, func(ua entity.UserAchievement) (string, entity.UserAchievement) {
			return ua.ID, ua
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPOINTS\tUNLOCKED")
		for _, def := range a.achievements.Definitions() {
			ua, ok := unlockedByID[string(def.ID)]
			if def.Secret && !ok && !showSecret {
				continue
			}
			state := "-"
			if ok {
				state = ua.UnlockedAt.Format("2006-01-02")
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", def.ID, def.Name, def.Points, state)
		}
		return w.Flush()
	},
}

var achievementsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate all rules and award points for new unlocks",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		newlyUnlocked, err := a.achievements.CheckAll(cmd.Context())
		if err != nil {
			return err
		}
		if len(newlyUnlocked) == 0 {
			cmd.Println("no new achievements")
			return nil
		}

		total := 0
		for _, ua := range newlyUnlocked {
			cmd.Printf("unlocked %s %s (+%d)\n", ua.Definition.Icon, ua.Definition.Name, ua.Definition.Points)
			total += ua.Definition.Points
		}
		balance, err := a.scores.Add(cmd.Context(), total)
		if err != nil {
			return err
		}
		cmd.Printf("earned %d points, score is now %d\n", total, balance)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(achievementsCmd)
	achievementsCmd.AddCommand(achievementsListCmd, achievementsCheckCmd)

	achievementsListCmd.Flags().Bool("all", false, "include locked secret achievements")
}
