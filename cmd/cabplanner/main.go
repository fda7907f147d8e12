package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/mwitczak/cabplanner/internal/catalog"
	"github.com/mwitczak/cabplanner/internal/constants"
	"github.com/mwitczak/cabplanner/internal/formula"
	"github.com/mwitczak/cabplanner/internal/projects"
	"github.com/mwitczak/cabplanner/internal/reports"
	"github.com/mwitczak/cabplanner/pkg/config"
	"github.com/mwitczak/cabplanner/pkg/db"
	"github.com/mwitczak/cabplanner/pkg/enums"
	"github.com/mwitczak/cabplanner/pkg/logger"
	"github.com/mwitczak/cabplanner/pkg/migrate"
)

const usage = `usage: cabplanner <group> <command> [flags]

  project    create | list | delete
  cabinet    add | list | duplicate | delete
  template   list | duplicate | seed
  constants  set | list
  report     xlsx | pdf | labels | estimate

Run 'cabplanner <group> <command> -h' for command flags.`

func main() {
	ctx := context.Background()
	// bootstrap logger early (then re-init after config load)
	logg := logger.New(logger.Options{ServiceName: "cabplanner"})

	_ = godotenv.Load()

	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "cabplanner",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	err = migrate.MaybeAutoRun(ctx, cfg, logg, dbClient)
	requireResource(ctx, logg, "migrations", err)

	app, err := newApp(dbClient, cfg)
	requireResource(ctx, logg, "services", err)

	if err := app.run(ctx, os.Args[1], os.Args[2], os.Args[3:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}

type app struct {
	cfg        *config.Config
	constants  constants.Service
	catalog    catalog.Service
	projects   projects.Service
	aggregator *reports.Aggregator
}

func newApp(client *db.Client, cfg *config.Config) (*app, error) {
	conn := client.DB()

	constantsSvc, err := constants.NewService(constants.NewRepository(conn))
	if err != nil {
		return nil, err
	}
	catalogSvc, err := catalog.NewService(catalog.NewRepository(conn), client)
	if err != nil {
		return nil, err
	}
	projectsRepo := projects.NewRepository(conn)
	projectsSvc, err := projects.NewService(projectsRepo, catalogSvc, client, nil)
	if err != nil {
		return nil, err
	}
	aggregator, err := reports.NewAggregator(projectsRepo)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:        cfg,
		constants:  constantsSvc,
		catalog:    catalogSvc,
		projects:   projectsSvc,
		aggregator: aggregator,
	}, nil
}

func (a *app) run(ctx context.Context, group, command string, args []string) error {
	switch group {
	case "project":
		return a.runProject(ctx, command, args)
	case "cabinet":
		return a.runCabinet(ctx, command, args)
	case "template":
		return a.runTemplate(ctx, command, args)
	case "constants":
		return a.runConstants(ctx, command, args)
	case "report":
		return a.runReport(ctx, command, args)
	default:
		fmt.Fprintln(os.Stderr, usage)
		return fmt.Errorf("unknown command group %q", group)
	}
}

func (a *app) runProject(ctx context.Context, command string, args []string) error {
	switch command {
	case "create":
		fs := flag.NewFlagSet("project create", flag.ExitOnError)
		name := fs.String("name", "", "project name")
		customer := fs.String("customer", "", "customer name (optional)")
		fs.Parse(args)

		input := projects.CreateProjectInput{Name: *name}
		if *customer != "" {
			input.Customer = customer
		}
		project, err := a.projects.CreateProject(ctx, input)
		if err != nil {
			return err
		}
		fmt.Println("created project", project.ID)
		return nil

	case "list":
		rows, err := a.projects.ListProjects(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAZWA\tKLIENT\tUTWORZONO")
		for _, project := range rows {
			customer := ""
			if project.Customer != nil {
				customer = *project.Customer
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				project.ID, project.Name, customer, project.CreatedAt.Format("2006-01-02"))
		}
		return w.Flush()

	case "delete":
		fs := flag.NewFlagSet("project delete", flag.ExitOnError)
		id := fs.String("id", "", "project id")
		fs.Parse(args)

		projectID, err := uuid.Parse(*id)
		if err != nil {
			return fmt.Errorf("invalid -id: %w", err)
		}
		removed, err := a.projects.DeleteProject(ctx, projectID)
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("project %s does not exist", projectID)
		}
		fmt.Println("deleted project", projectID)
		return nil

	default:
		return fmt.Errorf("unknown project command %q", command)
	}
}

func (a *app) runCabinet(ctx context.Context, command string, args []string) error {
	switch command {
	case "add":
		return a.addCabinet(ctx, args)

	case "list":
		fs := flag.NewFlagSet("cabinet list", flag.ExitOnError)
		project := fs.String("project", "", "project id")
		fs.Parse(args)

		projectID, err := uuid.Parse(*project)
		if err != nil {
			return fmt.Errorf("invalid -project: %w", err)
		}
		cabinets, err := a.projects.ListCabinets(ctx, projectID)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "LP\tID\tKORPUS\tFRONT\tSZT\tCZĘŚCI")
		for _, cabinet := range cabinets {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
				reports.GetCircledNumber(cabinet.SequenceNumber), cabinet.ID,
				cabinet.BodyColor, cabinet.FrontColor, cabinet.Quantity, len(cabinet.Parts))
		}
		return w.Flush()

	case "duplicate":
		fs := flag.NewFlagSet("cabinet duplicate", flag.ExitOnError)
		id := fs.String("id", "", "cabinet id")
		fs.Parse(args)

		cabinetID, err := uuid.Parse(*id)
		if err != nil {
			return fmt.Errorf("invalid -id: %w", err)
		}
		duplicate, err := a.projects.DuplicateCabinet(ctx, cabinetID)
		if err != nil {
			return err
		}
		if duplicate == nil {
			return fmt.Errorf("cabinet %s does not exist", cabinetID)
		}
		fmt.Printf("duplicated as %s (position %d)\n", duplicate.ID, duplicate.SequenceNumber)
		return nil

	case "delete":
		fs := flag.NewFlagSet("cabinet delete", flag.ExitOnError)
		id := fs.String("id", "", "cabinet id")
		fs.Parse(args)

		cabinetID, err := uuid.Parse(*id)
		if err != nil {
			return fmt.Errorf("invalid -id: %w", err)
		}
		removed, err := a.projects.DeleteCabinet(ctx, cabinetID)
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("cabinet %s does not exist", cabinetID)
		}
		fmt.Println("deleted cabinet", cabinetID)
		return nil

	default:
		return fmt.Errorf("unknown cabinet command %q", command)
	}
}

// addCabinet covers both sources: -template copies a catalog template,
// -name computes the parts from the type name and optional dimensions.
func (a *app) addCabinet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cabinet add", flag.ExitOnError)
	project := fs.String("project", "", "project id")
	template := fs.String("template", "", "catalog template name")
	name := fs.String("name", "", "cabinet type name for custom computation (e.g. D60S3)")
	width := fs.Int("w", 0, "width in mm (custom mode, 0 = from name)")
	height := fs.Int("h", 0, "height in mm (custom mode, 0 = category default)")
	depth := fs.Int("d", 0, "depth in mm (custom mode, 0 = category default)")
	body := fs.String("body", "biały", "body color")
	front := fs.String("front", "biały", "front color")
	handle := fs.String("handle", "standard", "handle type")
	quantity := fs.Int("qty", 1, "cabinet quantity")
	sequence := fs.Int("seq", 0, "sequence number (0 = next free)")
	fs.Parse(args)

	projectID, err := uuid.Parse(*project)
	if err != nil {
		return fmt.Errorf("invalid -project: %w", err)
	}
	if (*template == "") == (*name == "") {
		return fmt.Errorf("exactly one of -template or -name is required")
	}

	input := projects.AddCabinetInput{
		ProjectID:  projectID,
		BodyColor:  *body,
		FrontColor: *front,
		HandleType: *handle,
		Quantity:   *quantity,
	}
	if *sequence > 0 {
		input.SequenceNumber = sequence
	}

	if *template != "" {
		found, err := a.catalog.GetByName(ctx, *template)
		if err != nil {
			return err
		}
		if found == nil {
			return fmt.Errorf("template %q does not exist", *template)
		}
		input.TemplateID = &found.ID
	} else {
		snapshot, err := a.constants.Snapshot(ctx)
		if err != nil {
			return err
		}
		dims := formula.Dims{}
		if *width > 0 {
			dims.WidthMM = width
		}
		if *height > 0 {
			dims.HeightMM = height
		}
		if *depth > 0 {
			dims.DepthMM = depth
		}
		plans, err := formula.Compute(*name, dims, snapshot)
		if err != nil {
			return err
		}
		input.Plans = plans
		for _, accessory := range catalog.DefaultAccessories(*name) {
			input.Accessories = append(input.Accessories, projects.AccessoryLine{
				Name:  accessory.Name,
				Count: accessory.Count,
			})
		}
		input.CalcContext = calcContext(*name, dims, plans)
	}

	cabinet, err := a.projects.AddCabinet(ctx, input)
	if err != nil {
		return err
	}
	if cabinet == nil {
		return fmt.Errorf("project %s does not exist", projectID)
	}
	fmt.Printf("added cabinet %s at position %d (%d parts)\n",
		cabinet.ID, cabinet.SequenceNumber, len(cabinet.Parts))
	return nil
}

// calcContext records what went into the computation next to the snapshot.
func calcContext(name string, dims formula.Dims, plans []formula.PartPlan) *projects.CalcContext {
	cls := formula.Classify(name)

	cc := &projects.CalcContext{
		TemplateName: name,
		Category:     cls.Category.String(),
	}
	switch {
	case dims.WidthMM != nil:
		cc.WidthMM = *dims.WidthMM
	case cls.WidthMM != nil:
		cc.WidthMM = *cls.WidthMM
	}
	if dims.HeightMM != nil {
		cc.HeightMM = *dims.HeightMM
	}
	if dims.DepthMM != nil {
		cc.DepthMM = *dims.DepthMM
	}
	// Fall back to the side panel for the resolved height and depth.
	for _, plan := range plans {
		if plan.PartName == "bok" {
			if cc.HeightMM == 0 {
				cc.HeightMM = plan.HeightMM
			}
			break
		}
	}
	return cc
}

func (a *app) runTemplate(ctx context.Context, command string, args []string) error {
	switch command {
	case "list":
		fs := flag.NewFlagSet("template list", flag.ExitOnError)
		kitchen := fs.String("kitchen", "", "filter by kitchen type")
		fs.Parse(args)

		templates, err := a.catalog.List(ctx, *kitchen)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAZWA\tTYP KUCHNI\tCZĘŚCI\tAKCESORIA")
		for _, template := range templates {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n",
				template.ID, template.Name, template.KitchenType,
				len(template.Parts), len(template.Accessories))
		}
		return w.Flush()

	case "duplicate":
		fs := flag.NewFlagSet("template duplicate", flag.ExitOnError)
		id := fs.String("id", "", "template id")
		fs.Parse(args)

		templateID, err := uuid.Parse(*id)
		if err != nil {
			return fmt.Errorf("invalid -id: %w", err)
		}
		duplicate, err := a.catalog.Duplicate(ctx, templateID)
		if err != nil {
			return err
		}
		if duplicate == nil {
			return fmt.Errorf("template %s does not exist", templateID)
		}
		fmt.Printf("duplicated as %q (%s)\n", duplicate.Name, duplicate.ID)
		return nil

	case "seed":
		fs := flag.NewFlagSet("template seed", flag.ExitOnError)
		kitchen := fs.String("kitchen", "nowoczesna", "kitchen type for the seeded templates")
		fs.Parse(args)

		if err := a.constants.SeedDefaults(ctx); err != nil {
			return err
		}
		snapshot, err := a.constants.Snapshot(ctx)
		if err != nil {
			return err
		}
		created, err := catalog.SeedDefaults(ctx, a.catalog, snapshot, *kitchen)
		if err != nil {
			return err
		}
		fmt.Printf("seeded %d templates\n", created)
		return nil

	default:
		return fmt.Errorf("unknown template command %q", command)
	}
}

func (a *app) runConstants(ctx context.Context, command string, args []string) error {
	switch command {
	case "set":
		fs := flag.NewFlagSet("constants set", flag.ExitOnError)
		key := fs.String("key", "", "constant key")
		value := fs.Float64("value", 0, "constant value")
		valueType := fs.String("type", "float", "value type: int|float|bool|str")
		group := fs.String("group", "", "constant group (optional)")
		description := fs.String("description", "", "description (optional)")
		fs.Parse(args)

		parsedType, err := enums.ParseConstantType(*valueType)
		if err != nil {
			return err
		}
		input := constants.SetInput{Key: *key, Value: *value, Type: parsedType}
		if *group != "" {
			input.Group = group
		}
		if *description != "" {
			input.Description = description
		}
		constant, err := a.constants.Set(ctx, input)
		if err != nil {
			return err
		}
		fmt.Printf("set %s = %g\n", constant.Key, constant.Value)
		return nil

	case "list":
		fs := flag.NewFlagSet("constants list", flag.ExitOnError)
		group := fs.String("group", "", "filter by group")
		fs.Parse(args)

		rows, err := a.constants.List(ctx, *group)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KLUCZ\tWARTOŚĆ\tTYP\tGRUPA\tOPIS")
		for _, constant := range rows {
			group := ""
			if constant.Group != nil {
				group = *constant.Group
			}
			description := ""
			if constant.Description != nil {
				description = *constant.Description
			}
			fmt.Fprintf(w, "%s\t%g\t%s\t%s\t%s\n",
				constant.Key, constant.Value, constant.ValueType, group, description)
		}
		return w.Flush()

	default:
		return fmt.Errorf("unknown constants command %q", command)
	}
}

func (a *app) runReport(ctx context.Context, command string, args []string) error {
	fs := flag.NewFlagSet("report "+command, flag.ExitOnError)
	project := fs.String("project", "", "project id")
	out := fs.String("out", "", "output file (default: <reports dir>/<project>.<ext>)")
	price := fs.Float64("price", 0, "price per stock sheet (estimate only)")
	fs.Parse(args)

	projectID, err := uuid.Parse(*project)
	if err != nil {
		return fmt.Errorf("invalid -project: %w", err)
	}

	cutlist, err := a.aggregator.Aggregate(ctx, projectID)
	if err != nil {
		return err
	}
	if cutlist == nil {
		return fmt.Errorf("project %s does not exist", projectID)
	}

	switch command {
	case "xlsx":
		path := a.outputPath(*out, cutlist.ProjectName, "xlsx")
		if err := reports.WriteXLSX(cutlist, path); err != nil {
			return err
		}
		fmt.Println("wrote", path)
		return nil

	case "pdf":
		path := a.outputPath(*out, cutlist.ProjectName, "pdf")
		if err := reports.WritePDF(cutlist, path); err != nil {
			return err
		}
		fmt.Println("wrote", path)
		return nil

	case "labels":
		path := a.outputPath(*out, cutlist.ProjectName+"-etykiety", "pdf")
		if err := reports.WriteLabels(cutlist, path); err != nil {
			return err
		}
		fmt.Println("wrote", path)
		return nil

	case "estimate":
		reportsCfg := a.cfg.Reports
		estimate, err := reports.EstimateSheets(cutlist,
			reportsCfg.SheetWidthMM, reportsCfg.SheetHeightMM, reportsCfg.WastePercent, *price)
		if err != nil {
			return err
		}
		fmt.Printf("panel area:\t%s m²\n", estimate.TotalAreaSqM)
		fmt.Printf("sheet area:\t%s m² (%g × %g mm)\n",
			estimate.SheetAreaSqM, reportsCfg.SheetWidthMM, reportsCfg.SheetHeightMM)
		fmt.Printf("sheets needed:\t%d (exact %s)\n", estimate.SheetsMin, estimate.SheetsExact)
		fmt.Printf("with %s%% waste:\t%d\n", estimate.WastePercent, estimate.SheetsWithWaste)
		if *price > 0 {
			fmt.Printf("estimated cost:\t%s\n", estimate.EstimatedCost)
		}
		return nil

	default:
		return fmt.Errorf("unknown report command %q", command)
	}
}

func (a *app) outputPath(out, name, ext string) string {
	if out != "" {
		return out
	}
	return filepath.Join(a.cfg.Reports.OutputDir, fmt.Sprintf("%s.%s", name, ext))
}
