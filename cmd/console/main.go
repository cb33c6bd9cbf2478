// Command console is the admin console for the video-content pipeline:
// session management, reference-data CRUD, the moderation queue, the
// ready-video library, the user report and the multipart upload flow.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go.uber.org/zap"

	"github.com/yama-admin/video-console-go/internal/api"
	"github.com/yama-admin/video-console-go/internal/browse"
	"github.com/yama-admin/video-console-go/internal/catalog"
	"github.com/yama-admin/video-console-go/internal/config"
	"github.com/yama-admin/video-console-go/internal/models"
	"github.com/yama-admin/video-console-go/internal/report"
	"github.com/yama-admin/video-console-go/internal/session"
	"github.com/yama-admin/video-console-go/internal/upload"
	"github.com/yama-admin/video-console-go/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	store, err := session.Open(cfg.Session.File, logger.Named("session"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open session store: %v\n", err)
		os.Exit(1)
	}

	client, err := api.NewClient(api.Config{
		BaseURL:   cfg.API.BaseURL,
		Timeout:   cfg.API.Timeout,
		RateLimit: cfg.API.RateLimit,
		Creds:     store,
		Logger:    logger.Named("api"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create API client: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := &app{cfg: cfg, store: store, client: client, log: logger.Named("console")}
	if err := a.dispatch(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	cfg    *config.Config
	store  *session.Store
	client *api.Client
	log    *zap.Logger
}

func (a *app) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "logout":
		a.store.Clear()
		fmt.Println("Logged out.")
		return nil
	case "whoami":
		return a.whoami()
	case "athlete":
		return a.athlete(ctx, args)
	case "sport":
		return a.sport(ctx, args)
	case "category":
		return a.category(ctx, args)
	case "raw":
		return a.raw(ctx, args)
	case "video":
		return a.video(ctx, args)
	case "report":
		return a.report(ctx, args)
	case "upload":
		return a.upload(ctx, args)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func usage() {
	fmt.Fprint(os.Stderr, `Usage: console <command> [flags]

Commands:
  login        Sign in and persist the session
  logout       Clear the persisted session
  whoami       Show the signed-in admin
  athlete      Manage athletes (list, add, update, delete)
  sport        Manage sports (list, add, update, delete)
  category     Manage categories and subcategories
  raw          Review the raw-video moderation queue
  video        Browse and edit ready videos
  report       Show the user demographics report
  upload       Upload a new video with thumbnail and metadata
`)
}

// guard fails closed: every command except login requires a live session.
func (a *app) guard() (models.UserDetails, error) {
	return session.RequireSession(a.store)
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "admin email")
	password := fs.String("password", "", "admin password")
	fs.Parse(args) //nolint:errcheck

	if *email == "" || *password == "" {
		return fmt.Errorf("both --email and --password are required")
	}

	details, err := a.client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := a.store.Set(details); err != nil {
		return err
	}

	fmt.Printf("Signed in as %s (%s)\n", details.User.UserName, details.User.EmailID)
	return nil
}

func (a *app) whoami() error {
	details, err := a.guard()
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> userId=%s\n", details.User.UserName, details.User.EmailID, details.User.UserID)
	return nil
}

func (a *app) athlete(ctx context.Context, args []string) error {
	if _, err := a.guard(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: console athlete <list|add|update|delete> [flags]")
	}

	manager := catalog.NewAthleteManager(a.client.Athletes(), nil, a.log.Named("athletes"))

	switch args[0] {
	case "list":
		if err := manager.List(ctx); err != nil {
			return err
		}
		for _, athlete := range manager.Athletes() {
			fmt.Printf("%d\t%s\t%s\tsport=%d\n", athlete.AthleteID, athlete.Name, athlete.Gender, athlete.SportID)
		}
		return nil
	case "add":
		fs := flag.NewFlagSet("athlete add", flag.ExitOnError)
		name := fs.String("name", "", "athlete name")
		gender := fs.String("gender", "", "athlete gender")
		sportID := fs.Int("sport", 0, "sport id")
		profile := fs.String("profile", "", "profile text")
		fs.Parse(args[1:]) //nolint:errcheck
		return manager.Create(ctx, api.AthleteFields{
			Name: *name, Gender: *gender, SportID: *sportID, Profile: *profile,
		})
	case "update":
		fs := flag.NewFlagSet("athlete update", flag.ExitOnError)
		id := fs.Int("id", 0, "athlete id")
		name := fs.String("name", "", "athlete name")
		gender := fs.String("gender", "", "athlete gender")
		sportID := fs.Int("sport", 0, "sport id")
		profile := fs.String("profile", "", "profile text")
		fs.Parse(args[1:]) //nolint:errcheck
		return manager.Update(ctx, *id, api.AthleteFields{
			Name: *name, Gender: *gender, SportID: *sportID, Profile: *profile,
		})
	case "delete":
		id, err := idArg(args[1:])
		if err != nil {
			return err
		}
		return manager.Delete(ctx, id)
	default:
		return fmt.Errorf("unknown athlete action %q", args[0])
	}
}

func (a *app) sport(ctx context.Context, args []string) error {
	if _, err := a.guard(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: console sport <list|add|update|delete> [flags]")
	}

	manager := catalog.NewSportManager(a.client.Sports(), nil, a.log.Named("sports"))

	switch args[0] {
	case "list":
		if err := manager.List(ctx); err != nil {
			return err
		}
		for _, s := range manager.Sports() {
			fmt.Printf("%d\t%s\n", s.SportID, s.Name)
		}
		return nil
	case "add":
		return manager.Create(ctx, nameArg(args[1:]))
	case "update":
		fs := flag.NewFlagSet("sport update", flag.ExitOnError)
		id := fs.Int("id", 0, "sport id")
		name := fs.String("name", "", "sport name")
		fs.Parse(args[1:]) //nolint:errcheck
		return manager.Update(ctx, *id, *name)
	case "delete":
		id, err := idArg(args[1:])
		if err != nil {
			return err
		}
		return manager.Delete(ctx, id)
	default:
		return fmt.Errorf("unknown sport action %q", args[0])
	}
}

func (a *app) category(ctx context.Context, args []string) error {
	if _, err := a.guard(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: console category <list|add|update|delete|subs|sub-add|sub-update|sub-delete> [flags]")
	}

	manager := catalog.NewCategoryManager(a.client.Categories(), nil, a.log.Named("categories"))

	switch args[0] {
	case "list":
		if err := manager.List(ctx); err != nil {
			return err
		}
		for _, c := range manager.Categories() {
			fmt.Printf("%d\t%s\n", c.CategoryID, c.Name)
		}
		return nil
	case "add":
		return manager.Create(ctx, nameArg(args[1:]))
	case "update":
		fs := flag.NewFlagSet("category update", flag.ExitOnError)
		id := fs.Int("id", 0, "category id")
		name := fs.String("name", "", "category name")
		fs.Parse(args[1:]) //nolint:errcheck
		if err := manager.List(ctx); err != nil {
			return err
		}
		return manager.Update(ctx, *id, *name)
	case "delete":
		id, err := idArg(args[1:])
		if err != nil {
			return err
		}
		if err := manager.List(ctx); err != nil {
			return err
		}
		return manager.Delete(ctx, id)
	case "subs":
		fs := flag.NewFlagSet("category subs", flag.ExitOnError)
		categoryID := fs.Int("category", 0, "category id")
		fs.Parse(args[1:]) //nolint:errcheck
		if err := manager.Expand(ctx, *categoryID); err != nil {
			return err
		}
		for _, s := range manager.SubCategories() {
			fmt.Printf("%d\t%s\n", s.SubCategoryID, s.Name)
		}
		return nil
	case "sub-add":
		fs := flag.NewFlagSet("category sub-add", flag.ExitOnError)
		categoryID := fs.Int("category", 0, "category id")
		name := fs.String("name", "", "subcategory name")
		fs.Parse(args[1:]) //nolint:errcheck
		if err := manager.Expand(ctx, *categoryID); err != nil {
			return err
		}
		return manager.AddSubCategory(ctx, *name)
	case "sub-update":
		fs := flag.NewFlagSet("category sub-update", flag.ExitOnError)
		categoryID := fs.Int("category", 0, "category id")
		id := fs.Int("id", 0, "subcategory id")
		name := fs.String("name", "", "subcategory name")
		fs.Parse(args[1:]) //nolint:errcheck
		if err := manager.Expand(ctx, *categoryID); err != nil {
			return err
		}
		return manager.UpdateSubCategory(ctx, *id, *name)
	case "sub-delete":
		fs := flag.NewFlagSet("category sub-delete", flag.ExitOnError)
		categoryID := fs.Int("category", 0, "category id")
		id := fs.Int("id", 0, "subcategory id")
		fs.Parse(args[1:]) //nolint:errcheck
		if err := manager.Expand(ctx, *categoryID); err != nil {
			return err
		}
		return manager.DeleteSubCategory(ctx, *id)
	default:
		return fmt.Errorf("unknown category action %q", args[0])
	}
}

func (a *app) raw(ctx context.Context, args []string) error {
	if _, err := a.guard(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: console raw <list|approve|reject|delete> [flags]")
	}

	browser := browse.NewRawBrowser(a.client.RawVideos(), browse.DefaultPageSize, a.log.Named("raw"))

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("raw list", flag.ExitOnError)
		page := fs.Int("page", 1, "page number")
		fs.Parse(args[1:]) //nolint:errcheck

		if err := browser.Refresh(ctx); err != nil {
			return err
		}
		for browser.Page() < *page && browser.CanNext() {
			if err := browser.Next(ctx); err != nil {
				return err
			}
		}
		for _, v := range browser.Videos() {
			fmt.Printf("%d\t%s\t%s\t%s\n", v.ID, v.Status, v.EmailID, v.URL)
		}
		fmt.Printf("page %d of %d\n", browser.Page(), browser.TotalPages())
		return nil
	case "approve", "reject":
		id, err := idArg(args[1:])
		if err != nil {
			return err
		}
		status := models.ReviewStatusApproved
		if args[0] == "reject" {
			status = models.ReviewStatusRejected
		}
		return browser.Review(ctx, id, status)
	case "delete":
		id, err := idArg(args[1:])
		if err != nil {
			return err
		}
		return browser.Delete(ctx, id)
	default:
		return fmt.Errorf("unknown raw action %q", args[0])
	}
}

func (a *app) video(ctx context.Context, args []string) error {
	if _, err := a.guard(); err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("usage: console video <list|update|delete> [flags]")
	}

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("video list", flag.ExitOnError)
		page := fs.Int("page", 1, "page number")
		sortBy := fs.String("sort", "", "sort column")
		sortDir := fs.String("dir", "", "sort direction (asc or desc)")
		title := fs.String("title", "", "title filter")
		athleteID := fs.Int("athlete", 0, "athlete filter")
		categoryID := fs.Int("category", 0, "category filter")
		subCategoryID := fs.Int("subcategory", 0, "subcategory filter")
		fs.Parse(args[1:]) //nolint:errcheck

		result, err := a.client.Videos().List(ctx, api.VideoQuery{
			Page:          *page,
			Limit:         browse.DefaultPageSize,
			SortBy:        *sortBy,
			SortDirection: *sortDir,
			Title:         *title,
			AthleteID:     *athleteID,
			CategoryID:    *categoryID,
			SubCategoryID: *subCategoryID,
		})
		if err != nil {
			return err
		}

		skipped := 0
		for _, v := range result.Videos {
			id, ok := v.ParsedID()
			if !ok {
				skipped++
				continue
			}
			fmt.Printf("%d\t%s\t%s\t%s/%s\n", id, v.Title, v.Athlete, v.Category, v.Subcategory)
		}
		if skipped > 0 {
			fmt.Printf("(%d rows dropped: invalid video id)\n", skipped)
		}
		fmt.Printf("page %d of %d, %d total\n",
			result.Pagination.CurrentPage, result.Pagination.TotalPages, result.Pagination.TotalRecords)
		return nil
	case "update":
		return a.videoUpdate(ctx, args[1:])
	case "delete":
		id, err := idArg(args[1:])
		if err != nil {
			return err
		}
		return a.client.Videos().Delete(ctx, id)
	default:
		return fmt.Errorf("unknown video action %q", args[0])
	}
}

// videoUpdate edits one ready video through an EditSession: the current
// record is fetched, the given flags are applied over it and the change is
// saved, with an optional thumbnail replacement.
func (a *app) videoUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("video update", flag.ExitOnError)
	id := fs.Int("id", 0, "video id")
	title := fs.String("title", "", "new title")
	summary := fs.String("summary", "", "new summary")
	grade := fs.String("grade", "", "new target grade")
	gender := fs.String("gender", "", "new target gender")
	athleteID := fs.Int("athlete", 0, "new athlete id")
	categoryID := fs.Int("category", 0, "new category id")
	subCategoryID := fs.Int("subcategory", 0, "new subcategory id")
	thumbnail := fs.String("thumbnail", "", "replacement thumbnail file")
	fs.Parse(args) //nolint:errcheck

	video, err := a.findVideo(ctx, *id)
	if err != nil {
		return err
	}

	editSession, err := catalog.NewEditSession(catalog.EditConfig{
		Videos:       a.client.Videos(),
		Signer:       a.client.Uploads(),
		SubLister:    a.client.Categories(),
		MaxThumbSize: a.cfg.Upload.MaxThumbSize,
		Logger:       a.log.Named("edit"),
	}, video, nil, nil)
	if err != nil {
		return err
	}
	if err := editSession.LoadSubCategories(ctx); err != nil {
		return err
	}

	if *categoryID != 0 && *categoryID != video.CategoryID {
		if err := editSession.SetCategory(ctx, *categoryID); err != nil {
			return err
		}
	}
	if *subCategoryID != 0 {
		editSession.SetSubCategory(*subCategoryID)
	}
	if *athleteID != 0 {
		editSession.SetAthlete(*athleteID)
	}
	if *title != "" {
		editSession.SetTitle(*title)
	}
	if *summary != "" {
		editSession.SetSummary(*summary)
	}
	if *grade != "" {
		editSession.SetGrade(*grade)
	}
	if *gender != "" {
		editSession.SetGender(*gender)
	}
	if *thumbnail != "" {
		if err := editSession.AttachThumbnail(*thumbnail); err != nil {
			return err
		}
	}

	if err := editSession.Save(ctx); err != nil {
		return err
	}
	fmt.Printf("Video %d updated.\n", *id)
	return nil
}

// findVideo scans pages for the given id; the list endpoint is the only
// read path the backend offers.
func (a *app) findVideo(ctx context.Context, id int) (models.ReadyVideo, error) {
	if id <= 0 {
		return models.ReadyVideo{}, fmt.Errorf("--id is required")
	}

	page := 1
	for {
		result, err := a.client.Videos().List(ctx, api.VideoQuery{Page: page, Limit: 50})
		if err != nil {
			return models.ReadyVideo{}, err
		}
		for _, v := range result.Videos {
			if parsed, ok := v.ParsedID(); ok && parsed == id {
				return v, nil
			}
		}
		if page >= result.Pagination.TotalPages {
			return models.ReadyVideo{}, catalog.ErrVideoNotFound
		}
		page++
	}
}

func (a *app) report(ctx context.Context, args []string) error {
	if _, err := a.guard(); err != nil {
		return err
	}

	fs := flag.NewFlagSet("report", flag.ExitOnError)
	csvPath := fs.String("csv", "", "write the report as CSV to this file")
	sortColumn := fs.String("sort", "", "sort column (total, male, female, unknown)")
	desc := fs.Bool("desc", false, "sort descending")
	fs.Parse(args) //nolint:errcheck

	view := report.NewView(a.client)
	if err := view.Load(ctx); err != nil {
		return err
	}
	if *sortColumn != "" {
		view.Sort(report.Column(*sortColumn), !*desc)
	}

	if *csvPath != "" {
		f, err := os.Create(*csvPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := view.WriteCSV(f); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", *csvPath)
		return nil
	}

	fmt.Printf("%-12s %7s %7s %7s %7s\n", "Grade", "Total", "Male", "Female", "Unknown")
	for _, row := range view.Rows() {
		fmt.Printf("%-12s %7d %7d %7d %7d\n", row.Grade, row.Total, row.Male, row.Female, row.Unknown)
	}
	fmt.Printf("total users: %d\n", view.TotalUsers())
	return nil
}

func (a *app) upload(ctx context.Context, args []string) error {
	if _, err := a.guard(); err != nil {
		return err
	}

	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	video := fs.String("video", "", "video file (.mp4, .mov, .avi, .m4v)")
	thumbnail := fs.String("thumbnail", "", "thumbnail file (.jpg, .jpeg, .png)")
	athleteID := fs.String("athlete", "", "athlete id")
	categoryID := fs.String("category", "", "category id")
	subCategoryID := fs.String("subcategory", "", "subcategory id")
	title := fs.String("title", "", "video title")
	summary := fs.String("summary", "", "video summary")
	grade := fs.String("grade", "", "target grade")
	gender := fs.String("gender", "", "target gender")
	searchable := fs.String("searchable", "Yes", "searchable (Yes or No)")
	publicPreview := fs.String("public-preview", "No", "public preview (Yes or No)")
	platform := fs.String("platform", "all", "platform (all, web, app)")
	welcoming := fs.Bool("welcoming", false, "mark as a welcoming video")
	fs.Parse(args) //nolint:errcheck

	coordinator := upload.New(
		a.client.Uploads(),
		upload.NewHTTPPutter(),
		a.cfg.Upload.PartSize,
		a.cfg.Upload.ResetDelay,
		a.log.Named("upload"),
	)
	coordinator.OnProgress(func(percent int) {
		fmt.Printf("\rUploading... %3d%%", percent)
	})

	err := coordinator.Run(ctx, upload.Input{
		VideoPath:     *video,
		ThumbnailPath: *thumbnail,
		Meta: upload.Metadata{
			AthleteID:     *athleteID,
			CategoryID:    *categoryID,
			SubCategoryID: *subCategoryID,
			Title:         *title,
			Summary:       *summary,
			Grade:         *grade,
			Gender:        *gender,
			Searchable:    *searchable,
			PublicPreview: *publicPreview,
			Platform:      *platform,
			IsWelcoming:   *welcoming,
		},
	})
	fmt.Println()
	if err != nil {
		return err
	}
	fmt.Println("Upload complete.")
	return nil
}

func idArg(args []string) (int, error) {
	fs := flag.NewFlagSet("id", flag.ExitOnError)
	id := fs.Int("id", 0, "record id")
	fs.Parse(args) //nolint:errcheck
	if *id <= 0 {
		// Also accept a bare positional id.
		if fs.NArg() > 0 {
			if v, err := strconv.Atoi(fs.Arg(0)); err == nil && v > 0 {
				return v, nil
			}
		}
		return 0, fmt.Errorf("--id is required")
	}
	return *id, nil
}

func nameArg(args []string) string {
	fs := flag.NewFlagSet("name", flag.ExitOnError)
	name := fs.String("name", "", "name")
	fs.Parse(args) //nolint:errcheck
	if *name == "" && fs.NArg() > 0 {
		return fs.Arg(0)
	}
	return *name
}
