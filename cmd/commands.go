package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"fridjy/internal/gateway"
	"fridjy/internal/inventory"
	"fridjy/internal/models"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printInventory(w io.Writer, views []inventory.ItemView) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tCATEGORY\tEXPIRES\tDAYS\tSTATUS")
	for _, v := range views {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			v.ID, v.Name, v.Quantity, v.Category, v.ExpiryDate, v.DaysLeft, v.Status)
	}
	return tw.Flush()
}

func inventoryCmd(configPath func() string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "List and edit the fridge inventory",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List items, soonest expiry first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), configPath(), false)
			if err != nil {
				return err
			}
			defer a.Close()
			return printInventory(cmd.OutOrStdout(), a.inventory.Overview())
		},
	})

	var entry inventory.ManualEntry
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an item by hand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), configPath(), false)
			if err != nil {
				return err
			}
			defer a.Close()
			entry.Name = args[0]
			item, err := a.inventory.AddManual(cmd.Context(), entry)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), item)
		},
	}
	add.Flags().StringVarP(&entry.Quantity, "quantity", "q", "", "Quantity (default \"1\")")
	add.Flags().StringVarP(&entry.ExpiryDate, "expiry", "e", "", "Expiry date YYYY-MM-DD (default in 7 days)")
	add.Flags().StringVar(&entry.Category, "category", "", "Category: "+strings.Join(models.Categories, ", "))
	add.Flags().IntVarP(&entry.Fragility, "fragility", "f", 0, "Fragility 1-10 (default 5)")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "remove ID",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), configPath(), false)
			if err != nil {
				return err
			}
			defer a.Close()
			removed, err := a.inventory.Remove(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintf(cmd.OutOrStdout(), "no item %s\n", args[0])
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Remove every item",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), configPath(), false)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.inventory.Clear(cmd.Context())
		},
	})

	return cmd
}

func scanCmd(configPath func() string) *cobra.Command {
	var addAll bool
	cmd := &cobra.Command{
		Use:   "scan IMAGE",
		Short: "Identify items in a fridge photo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), configPath(), true)
			if err != nil {
				return err
			}
			defer a.Close()

			items, err := a.gateway.AnalyzeImage(cmd.Context(), image)
			if err != nil {
				return err
			}
			if addAll {
				if err := a.inventory.AddBatch(cmd.Context(), items); err != nil {
					return err
				}
			}
			return printJSON(cmd.OutOrStdout(), items)
		},
	}
	cmd.Flags().BoolVar(&addAll, "add", false, "Add every detected item to the inventory")
	return cmd
}

func insightsCmd(configPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "Get waste, meal and storage advice for the inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), configPath(), true)
			if err != nil {
				return err
			}
			defer a.Close()
			return printJSON(cmd.OutOrStdout(), a.gateway.ChefInsights(cmd.Context(), a.inventory.Items()))
		},
	}
}

func recipesCmd(configPath func() string) *cobra.Command {
	var (
		prefs string
		tags  []string
	)
	cmd := &cobra.Command{
		Use:   "recipes",
		Short: "Suggest recipes from the inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), configPath(), true)
			if err != nil {
				return err
			}
			defer a.Close()
			recipes, err := a.gateway.GenerateRecipes(cmd.Context(), a.inventory.Items(), gateway.CombinePreferences(prefs, tags))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), recipes)
		},
	}
	cmd.Flags().StringVarP(&prefs, "prefs", "p", "", "Cravings or constraints in free text")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Dietary tag: "+strings.Join(models.DietaryTags, ", "))
	return cmd
}

func planCmd(configPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "plan REQUEST",
		Short: "Write a meal plan for the saved profile",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), configPath(), true)
			if err != nil {
				return err
			}
			defer a.Close()
			plan, err := a.gateway.MealPlan(cmd.Context(), a.nutrition.Profile(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), plan)
			return err
		},
	}
}

func logCmd(configPath func() string) *cobra.Command {
	var entry models.DailyLog
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Add eaten macros to a day's totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), configPath(), false)
			if err != nil {
				return err
			}
			defer a.Close()
			if entry.Date == "" {
				entry.Date = models.FormatDate(time.Now())
			}
			if err := a.nutrition.AddLog(cmd.Context(), entry); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), a.nutrition.Logs())
		},
	}
	cmd.Flags().StringVarP(&entry.Date, "date", "d", "", "Date YYYY-MM-DD (default today, UTC)")
	cmd.Flags().Float64Var(&entry.Calories, "calories", 0, "Calories (kcal)")
	cmd.Flags().Float64Var(&entry.Protein, "protein", 0, "Protein (g)")
	cmd.Flags().Float64Var(&entry.Carbs, "carbs", 0, "Carbs (g)")
	cmd.Flags().Float64Var(&entry.Fats, "fats", 0, "Fats (g)")
	return cmd
}

var profileFlags = []string{"name", "age", "height", "weight", "gender", "activity", "goal", "allergies", "diet"}

func profileCmd(configPath func() string) *cobra.Command {
	var (
		p      models.HealthProfile
		gender string
		level  string
	)
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the health profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), configPath(), false)
			if err != nil {
				return err
			}
			defer a.Close()

			current := a.nutrition.Profile()
			flags := cmd.Flags()
			edited := false
			for _, name := range profileFlags {
				edited = edited || flags.Changed(name)
			}
			if !edited {
				return printJSON(cmd.OutOrStdout(), current)
			}

			// unset flags keep the saved values
			if flags.Changed("name") {
				current.Name = p.Name
			}
			if flags.Changed("age") {
				current.Age = p.Age
			}
			if flags.Changed("height") {
				current.Height = p.Height
			}
			if flags.Changed("weight") {
				current.Weight = p.Weight
			}
			if flags.Changed("gender") {
				current.Gender = models.Gender(gender)
			}
			if flags.Changed("activity") {
				current.ActivityLevel = models.ActivityLevel(level)
			}
			if flags.Changed("goal") {
				current.CalorieGoal = p.CalorieGoal
			}
			if flags.Changed("allergies") {
				current.Allergies = p.Allergies
			}
			if flags.Changed("diet") {
				current.DietaryPreferences = p.DietaryPreferences
			}
			if err := a.nutrition.SetProfile(cmd.Context(), current); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), current)
		},
	}
	f := cmd.Flags()
	f.StringVar(&p.Name, "name", "", "Name")
	f.IntVar(&p.Age, "age", 0, "Age in years")
	f.Float64Var(&p.Height, "height", 0, "Height in cm")
	f.Float64Var(&p.Weight, "weight", 0, "Weight in kg")
	f.StringVar(&gender, "gender", "", "male, female or other")
	f.StringVar(&level, "activity", "", "sedentary, light, moderate or active")
	f.IntVar(&p.CalorieGoal, "goal", 0, "Daily calorie goal")
	f.StringVar(&p.Allergies, "allergies", "", "Allergies")
	f.StringVar(&p.DietaryPreferences, "diet", "", "Dietary preference")
	return cmd
}

func summaryCmd(configPath func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show BMI, today's totals and the last seven days",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), configPath(), false)
			if err != nil {
				return err
			}
			defer a.Close()
			return printJSON(cmd.OutOrStdout(), a.nutrition.Summary())
		},
	}
}
