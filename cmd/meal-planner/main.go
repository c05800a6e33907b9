package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"family-meal-planner/internal/api"
	"family-meal-planner/internal/app"
	"family-meal-planner/internal/config"
	"family-meal-planner/internal/cutoff"
	"family-meal-planner/internal/planner"
	"family-meal-planner/internal/shared"

	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	switch os.Args[1] {
	case "seed":
		seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
		file := seedCmd.String("file", "seed.yaml", "YAML document with families, recipes, components and inventory")
		seedCmd.Parse(os.Args[2:])

		summary, err := application.ImportSeedFile(ctx, *file)
		if err != nil {
			log.Fatalf("Seed import failed: %v", err)
		}
		fmt.Printf("Imported %d families, %d recipes, %d components and %d inventory items.\n",
			summary.Families, summary.Recipes, summary.Components, summary.Inventory)

	case "generate", "express":
		genCmd := flag.NewFlagSet(os.Args[1], flag.ExitOnError)
		actor := actorFlags(genCmd)
		week := genCmd.String("week", "", "Monday of the week to plan (YYYY-MM-DD, default next Monday)")
		template := genCmd.String("template", "", "Schedule template id (default: the family's default)")
		portions := genCmd.Int("portions", 0, "Portions per meal")
		cutoffDate := genCmd.String("cutoff-date", "", "Date after which edits close (YYYY-MM-DD)")
		cutoffTime := genCmd.String("cutoff-time", "", "Time of day the cutoff applies (HH:MM)")
		genCmd.Parse(os.Args[2:])

		req := planner.GenerateRequest{
			TemplateID: *template,
			Express:    os.Args[1] == "express",
			Portions:   *portions,
			CutoffDate: *cutoffDate,
			CutoffTime: *cutoffTime,
		}
		if *week != "" {
			ws, err := time.Parse("2006-01-02", *week)
			if err != nil {
				log.Fatalf("Invalid -week %q: %v", *week, err)
			}
			req.WeekStart = ws
		}

		res, err := application.Plans.GeneratePlan(ctx, actor(), req)
		if err != nil {
			log.Fatalf("Plan generation failed: %v", err)
		}
		reportSideEffects(res.SideEffects)
		fmt.Println(renderPlan(ctx, application.Catalog, res.Plan))

	case "show":
		showCmd := flag.NewFlagSet("show", flag.ExitOnError)
		actor := actorFlags(showCmd)
		planID := showCmd.String("plan", "", "Plan id (default: the most recent plan)")
		showCmd.Parse(os.Args[2:])

		plan := resolvePlan(ctx, application, actor(), *planID)
		fmt.Println(renderPlan(ctx, application.Catalog, plan))

	case "shopping-list":
		listCmd := flag.NewFlagSet("shopping-list", flag.ExitOnError)
		actor := actorFlags(listCmd)
		planID := listCmd.String("plan", "", "Plan id (default: the most recent plan)")
		regenerate := listCmd.Bool("regenerate", false, "Rebuild the list before printing it")
		listCmd.Parse(os.Args[2:])

		plan := resolvePlan(ctx, application, actor(), *planID)
		get := application.Shopping.Get
		if *regenerate {
			get = application.Shopping.Regenerate
		}
		list, err := get(ctx, plan.ID)
		if err != nil {
			log.Fatalf("Failed to load shopping list: %v", err)
		}
		fmt.Println(renderShoppingList(list))

	case "token":
		tokenCmd := flag.NewFlagSet("token", flag.ExitOnError)
		actor := actorFlags(tokenCmd)
		ttl := tokenCmd.Duration("ttl", 24*time.Hour, "Token lifetime")
		tokenCmd.Parse(os.Args[2:])

		if cfg.JWTSecret == "" {
			log.Fatalf("JWT_SECRET environment variable not set")
		}
		token, err := api.IssueToken([]byte(cfg.JWTSecret), actor(), *ttl)
		if err != nil {
			log.Fatalf("Failed to sign token: %v", err)
		}
		fmt.Println(token)

	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := application.Metrics.Cleanup(ctx, *days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// actorFlags registers the identity flags shared by the plan commands.
func actorFlags(fs *flag.FlagSet) func() cutoff.Actor {
	family := fs.String("family", "", "Family id")
	member := fs.String("member", "cli", "Member id recorded in the change log")
	name := fs.String("name", "CLI", "Display name recorded in the change log")
	role := fs.String("role", string(cutoff.RoleOwner), "Member role (OWNER, ADMIN, MEMBER, CHILD)")
	return func() cutoff.Actor {
		if *family == "" {
			log.Fatalf("-family is required")
		}
		return cutoff.Actor{
			MemberID:    *member,
			FamilyID:    *family,
			DisplayName: *name,
			Role:        cutoff.Role(strings.ToUpper(*role)),
		}
	}
}

// resolvePlan loads planID with its meals, or the most recent plan when empty.
func resolvePlan(ctx context.Context, a *app.App, actor cutoff.Actor, planID string) *planner.WeeklyPlan {
	if planID == "" {
		plans, err := a.Plans.ListPlans(ctx, actor, 1)
		if err != nil {
			log.Fatalf("Failed to list plans: %v", err)
		}
		if len(plans) == 0 {
			log.Fatalf("No plans found for family %s", actor.FamilyID)
		}
		planID = plans[0].ID
	}
	plan, err := a.Plans.GetPlan(ctx, actor, planID)
	if err != nil {
		log.Fatalf("Failed to load plan: %v", err)
	}
	return plan
}

func reportSideEffects(effects []shared.SideEffect) {
	for _, e := range shared.Failed(effects) {
		log.Printf("Warning: %s failed: %v", e.Name, e.Err)
	}
}

func printUsage() {
	fmt.Println("Usage: meal-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  seed               Import families, recipes, components and inventory from YAML")
	fmt.Println("  generate           Compose a weekly plan for a family")
	fmt.Println("  express            Compose a plan from favorites only")
	fmt.Println("  show               Print a plan")
	fmt.Println("  shopping-list      Print the shopping list of a plan")
	fmt.Println("  token              Issue an API token for a family member")
	fmt.Println("  metrics-cleanup    Remove old metric records")
}
