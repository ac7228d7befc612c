package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/profilehub/profilehub-client/config"
	"github.com/profilehub/profilehub-client/internal/api"
	"github.com/profilehub/profilehub-client/internal/cache"
	"github.com/profilehub/profilehub-client/internal/models"
	"github.com/profilehub/profilehub-client/internal/search"
	"github.com/profilehub/profilehub-client/internal/session"
	"github.com/profilehub/profilehub-client/internal/storage"
	"github.com/profilehub/profilehub-client/pkg/logger"
	"github.com/profilehub/profilehub-client/pkg/metrics"
	"github.com/profilehub/profilehub-client/pkg/profiling"
	"github.com/profilehub/profilehub-client/pkg/tracing"
	"go.uber.org/zap"
)

const usage = `usage: profilectl <command> [flags]

commands:
  login <userId>        complete login and persist the current user
  list                  list profiles (supports --name, --technology, ... filters)
  show <id|master>      print one profile
  edit <id|master>      demo edit round-trip: rename, save, print
  clone                 clone the master profile into a new sub-profile
  delete <id>           delete a sub-profile
  pdf <id>              print the PDF export link (--columns for the variant)
`

// cliNotifier surfaces operation outcomes on the terminal.
type cliNotifier struct{}

func (cliNotifier) Success(msg string) { fmt.Println(msg) }
func (cliNotifier) Error(msg string)   { fmt.Fprintln(os.Stderr, msg) }

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.App.Env,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.App.Env,
		cfg.Observability.ExporterEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Continuous profiling (opt-in)
	profilerStop, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceNamespace,
		cfg.Observability.ServiceVersion,
		cfg.Observability.ServiceInstanceID,
		cfg.App.Env,
	)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer profilerStop()

	metrics.RecordInfrastructureMetrics()

	client := api.NewClient(cfg.Service)
	store := cache.NewStore(client, cfg.Cache.ProfileTTLSeconds, cfg.Cache.DisableProfileCache)
	users := storage.NewUserStore(cfg.Storage.UserStatePath)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Service.TimeoutSeconds+5)*time.Second)
	defer cancel()

	if err := run(ctx, os.Args[1], os.Args[2:], cfg, client, store, users); err != nil {
		logger.LogError(err, "Command failed", zap.String("command", os.Args[1]))
		fmt.Fprintf(os.Stderr, "profilectl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string, cfg *config.Config, client *api.Client, store *cache.Store, users *storage.UserStore) error {
	switch command {
	case "login":
		return runLogin(ctx, args, client, users)
	case "list":
		return runList(ctx, args, cfg, store, users)
	case "show":
		return runShow(ctx, args, store, users)
	case "edit":
		return runEdit(ctx, args, store, users)
	case "clone":
		return runClone(ctx, store, users)
	case "delete":
		return runDelete(ctx, args, cfg, store, users)
	case "pdf":
		return runPDF(args, client)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func runLogin(ctx context.Context, args []string, client *api.Client, users *storage.UserStore) error {
	if len(args) != 1 {
		return fmt.Errorf("login: expected exactly one user id")
	}
	var userID int64
	if _, err := fmt.Sscanf(args[0], "%d", &userID); err != nil {
		return fmt.Errorf("login: invalid user id %q", args[0])
	}

	user, err := client.GetUserInfo(ctx, userID)
	if err != nil {
		return err
	}
	if err := users.SetCurrentUser(user.ID); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (id %d)\n", user.Name, user.ID)
	return nil
}

func runList(ctx context.Context, args []string, cfg *config.Config, store *cache.Store, users *storage.UserStore) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	pageNumber := fs.Int("page", 1, "page number (1-indexed)")
	pageSize := fs.Int("size", cfg.Search.DefaultPageSize, "page size (10, 20 or 30)")
	filterFlags := make(map[models.FilterKey]*string, len(models.FilterKeys))
	for _, key := range models.FilterKeys {
		filterFlags[key] = fs.String(string(key), "", "filter by "+string(key))
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	userID, err := users.CurrentUser()
	if err != nil {
		return err
	}

	controller, err := search.NewController(store, cliNotifier{}, userID, *pageSize)
	if err != nil {
		return err
	}

	filters := models.FilterSet{}
	for key, val := range filterFlags {
		if *val != "" {
			filters[key] = *val
		}
	}
	if err := controller.ApplyFilters(ctx, filters); err != nil {
		return err
	}
	if *pageNumber > 1 {
		if err := controller.SetPageNumber(ctx, *pageNumber); err != nil {
			return err
		}
	}

	page := controller.Page()
	fmt.Printf("%d result(s), page %d/%d\n", page.TotalResults, controller.PageNumber(), page.LastPage)
	for _, p := range page.Profiles {
		created := "N/A"
		if p.CreatedDate != nil {
			created = p.CreatedDate.Format("01/02/2006")
		}
		fmt.Printf("  %-8s %-30s %s\n", p.ID.String(), p.Name, created)
	}
	return nil
}

func runShow(ctx context.Context, args []string, store *cache.Store, users *storage.UserStore) error {
	sess, err := openSession(ctx, args, store, users)
	if err != nil {
		return err
	}
	printProfile(sess.Draft())
	return nil
}

func runEdit(ctx context.Context, args []string, store *cache.Store, users *storage.UserStore) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	name := fs.String("rename", "", "set a new profile name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := openSession(ctx, fs.Args(), store, users)
	if err != nil {
		return err
	}
	if *name == "" {
		return fmt.Errorf("edit: nothing to do, pass --rename")
	}

	if err := sess.RenameBegin(); err != nil {
		return err
	}
	if err := sess.Edit(func(draft *models.Profile) { draft.Name = *name }); err != nil {
		return err
	}
	if err := sess.RenameConfirm(); err != nil {
		return err
	}
	if err := sess.Save(ctx); err != nil {
		return err
	}
	printProfile(sess.Draft())
	return nil
}

func runClone(ctx context.Context, store *cache.Store, users *storage.UserStore) error {
	userID, err := users.CurrentUser()
	if err != nil {
		return err
	}
	controller, err := search.NewController(store, cliNotifier{}, userID, 10)
	if err != nil {
		return err
	}
	id, err := controller.AddProfile(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Created sub-profile %d\n", id)
	return nil
}

func runDelete(ctx context.Context, args []string, cfg *config.Config, store *cache.Store, users *storage.UserStore) error {
	if len(args) != 1 {
		return fmt.Errorf("delete: expected exactly one profile id")
	}
	var id int64
	if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
		return fmt.Errorf("delete: invalid profile id %q", args[0])
	}

	userID, err := users.CurrentUser()
	if err != nil {
		return err
	}
	controller, err := search.NewController(store, cliNotifier{}, userID, cfg.Search.DefaultPageSize)
	if err != nil {
		return err
	}
	return controller.DeleteProfile(ctx, id)
}

func runPDF(args []string, client *api.Client) error {
	fs := flag.NewFlagSet("pdf", flag.ContinueOnError)
	columns := fs.Bool("columns", false, "use the columns layout variant")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("pdf: expected exactly one profile id")
	}
	var id int64
	if _, err := fmt.Sscanf(fs.Arg(0), "%d", &id); err != nil {
		return fmt.Errorf("pdf: invalid profile id %q", fs.Arg(0))
	}
	fmt.Println(client.PDFURL(id, *columns))
	return nil
}

func openSession(ctx context.Context, args []string, store *cache.Store, users *storage.UserStore) (*session.EditSession, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("expected exactly one profile route (id or \"master\")")
	}
	route, err := session.ParseRoute(args[0])
	if err != nil {
		return nil, err
	}

	userID, err := users.CurrentUser()
	if err != nil {
		return nil, err
	}

	sess := session.New(store, cliNotifier{}, route, models.User{ID: userID})
	if err := sess.Load(ctx); err != nil {
		return nil, err
	}
	return sess, nil
}

func printProfile(p *models.Profile) {
	fmt.Printf("%s (id %s)\n", p.Name, p.ID.String())
	if p.Headline != "" {
		fmt.Printf("  %s\n", p.Headline)
	}
	if p.Email != "" || p.Phone != "" {
		fmt.Printf("  %s %s\n", p.Email, p.Phone)
	}
	for _, e := range p.Education {
		fmt.Printf("  education: %s, %s\n", e.School, e.Degree)
	}
	for _, w := range p.WorkHistory {
		fmt.Printf("  work: %s, %s\n", w.Company, w.Position)
	}
	for _, pr := range p.Projects {
		fmt.Printf("  project: %s\n", pr.Name)
	}
	for _, s := range p.Skills {
		fmt.Printf("  skill: %s\n", s.Text)
	}
}
