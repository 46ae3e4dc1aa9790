package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/drawlabs/luckyadmin/internal/api"
	"github.com/drawlabs/luckyadmin/internal/config"
	"github.com/drawlabs/luckyadmin/internal/logging"
	"github.com/drawlabs/luckyadmin/internal/models"
	"github.com/drawlabs/luckyadmin/internal/notify"
	"github.com/drawlabs/luckyadmin/internal/resource"
	"github.com/drawlabs/luckyadmin/internal/session"
)

// App wires the API client, the session manager and one view per entity
// behind the REPL command surface.
type App struct {
	config   *config.Config
	log      logging.Logger
	notifier notify.Notifier
	client   *api.HTTPClient
	session  *session.Manager

	views   map[string]entityView
	order   []string
	current string

	in     io.Reader
	reader *bufio.Reader
	prompt *prompter
	out    io.Writer
}

// NewApp builds the console app on standard input and output.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	return newApp(cfg, log, os.Stdin, os.Stdout)
}

// newApp is the test-friendly constructor: tests substitute in and out to
// script prompts and capture everything the user would see.
func newApp(cfg *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	client, err := api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout(), log)
	if err != nil {
		return nil, err
	}

	notifier := notify.NewConsole(out)
	mgr := session.NewManager(client, session.NewFileStore(cfg.TokenFile), notifier, log)
	client.BindSession(mgr, mgr.HandleUnauthorized)

	opts := resource.Options{
		Client:      client,
		Notifier:    notifier,
		Log:         log,
		DownloadDir: cfg.DownloadDir,
		PageLimit:   cfg.PageLimit,
	}
	views, order := registerViews(opts)

	reader := bufio.NewReader(in)
	return &App{
		config:   cfg,
		log:      log,
		notifier: notifier,
		client:   client,
		session:  mgr,
		views:    views,
		order:    order,
		current:  order[0],
		in:       in,
		reader:   reader,
		prompt:   &prompter{reader: reader, out: out},
		out:      out,
	}, nil
}

// registerViews declares every entity the console can browse: its API
// path, which fields the server searches, its table layout and its form.
func registerViews(opts resource.Options) (map[string]entityView, []string) {
	views := map[string]entityView{}
	var order []string
	add := func(name string, v entityView) {
		views[name] = v
		order = append(order, name)
	}

	add("clients", newView(resource.Descriptor{
		Name:   "clients",
		Path:   "/clients",
		Search: []string{"name", "email", "cpf", "phone"},
	}, opts, models.ClientColumns, models.ClientRow, models.ClientFields()))

	add("products", newView(resource.Descriptor{
		Name:   "products",
		Path:   "/products",
		Search: []string{"name", "brand", "category"},
	}, opts, models.ProductColumns, models.ProductRow, models.ProductFields()))

	// Invoices come in through the fiscal pipeline and are never edited
	// from the console.
	add("invoices", newView(resource.Descriptor{
		Name:      "invoices",
		Path:      "/invoices",
		Search:    []string{"number", "cpf", "store"},
		Immutable: true,
	}, opts, models.InvoiceColumns, models.InvoiceRow, models.InvoiceFields()))

	add("draw-numbers", newView(resource.Descriptor{
		Name:   "draw-numbers",
		Path:   "/draw-numbers",
		Search: []string{"number", "cpf", "name"},
	}, opts, models.DrawNumberColumns, models.DrawNumberRow, models.DrawNumberFields()))

	add("opportunities", newView(resource.Descriptor{
		Name:   "opportunities",
		Path:   "/opportunities",
		Search: []string{"cpf", "name", "status"},
	}, opts, models.OpportunityColumns, models.OpportunityRow, models.OpportunityFields()))

	add("vouchers", newView(resource.Descriptor{
		Name:   "vouchers",
		Path:   "/vouchers",
		Search: []string{"code", "cpf", "status"},
	}, opts, models.VoucherColumns, models.VoucherRow, models.VoucherFields()))

	add("pages-content", newView(resource.Descriptor{
		Name:   "pages-content",
		Path:   "/pages-content",
		Search: []string{"slug", "title"},
	}, opts, models.PageContentColumns, models.PageContentRow, models.PageContentFields()))

	return views, order
}

// Run restores any saved session and hands control to the REPL. It
// returns when the user exits or input reaches EOF.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.client.Close(); err != nil {
			a.log.Warn(ctx, "closing api client", "error", err)
		}
	}()

	state := a.session.Initialize(ctx)
	a.log.Debug(ctx, "session restored", "state", state.String())

	printlnFn("Lucky Draw admin console (type 'help' for commands)")
	scanner := bufio.NewScanner(a.in)
	runREPL(ctx, a, a.statusLine, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// statusLine renders the prompt segment: the session state, the active
// entity and its page position.
func (a *App) statusLine() string {
	if !a.isLoggedIn() {
		return "(logged out)"
	}
	st := a.view().state()
	pages := st.Pages
	if pages < 1 {
		pages = 1
	}
	return fmt.Sprintf("(%s p%d/%d)", a.current, st.Page, pages)
}
