package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var rewardsCmd = &cobra.Command{
	Use:   "rewards",
	Short: "Browse and spend score in the rewards store",
}

var rewardsCatalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List everything the store offers",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		balance, err := a.scores.Get(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCOST\tTYPE")
		for _, def := range a.rewards.Catalog() {
			fmt.Fprintf(w, "%s\t%s %s\t%d\t%s\n", def.ID, def.Icon, def.Name, def.Cost, def.Type)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		cmd.Printf("\ncurrent score: %d\n", balance)
		return nil
	},
}

var rewardsOwnedCmd = &cobra.Command{
	Use:   "owned",
	Short: "List owned rewards and equipped cosmetics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		owned, err := a.rewards.Owned(cmd.Context())
		if err != nil {
			return err
		}
		equipped, err := a.rewards.Equipped(cmd.Context())
		if err != nil {
			return err
		}

		if len(owned) == 0 {
			cmd.Println("nothing owned yet")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPURCHASED\tEXPIRES")
		for _, reward := range owned {
			expires := "-"
			if reward.ExpiresAt != nil {
				expires = reward.ExpiresAt.Format("2006-01-02")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", reward.ID, reward.PurchasedAt.Format("2006-01-02"), expires)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		for slot, id := range equipped {
			cmd.Printf("equipped %s: %s\n", slot, id)
		}
		return nil
	},
}

var rewardsBuyCmd = &cobra.Command{
	Use:   "buy <id>",
	Short: "Purchase a reward with the current score",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		balance, err := a.scores.Get(cmd.Context())
		if err != nil {
			return err
		}
		cost, err := a.rewards.Purchase(cmd.Context(), args[0], balance)
		if err != nil {
			return err
		}
		remaining, err := a.scores.Add(cmd.Context(), -cost)
		if err != nil {
			return err
		}
		cmd.Printf("bought %s for %d, score is now %d\n", args[0], cost, remaining)
		return nil
	},
}

var rewardsEquipCmd = &cobra.Command{
	Use:   "equip <id>",
	Short: "Equip an owned cosmetic reward",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.rewards.Equip(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.Printf("equipped %s\n", args[0])
		return nil
	},
}

var rewardsUnequipCmd = &cobra.Command{
	Use:   "unequip <slot>",
	Short: "Clear a cosmetic slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.rewards.Unequip(cmd.Context(), args[0]); err != nil {
			return err
		}
		cmd.Printf("cleared slot %s\n", args[0])
		return nil
	},
}

var rewardsScoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Show the current score balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		balance, err := a.scores.Get(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Printf("score: %d\n", balance)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rewardsCmd)
	rewardsCmd.AddCommand(rewardsCatalogCmd, rewardsOwnedCmd, rewardsBuyCmd, rewardsEquipCmd, rewardsUnequipCmd, rewardsScoreCmd)
}
