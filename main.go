package main

import (
	"RestoPos/internal/adapter"
	"RestoPos/internal/cache"
	"RestoPos/internal/config"
	"RestoPos/internal/controller"
	"RestoPos/internal/database"
	"RestoPos/internal/domain"
	httphandler "RestoPos/internal/handlers/http"
	"RestoPos/internal/posapi"
	"RestoPos/internal/session"
	"RestoPos/internal/telegram"
	"RestoPos/internal/ticket"
	"RestoPos/internal/version"
	"RestoPos/pkg/logging"
	"bytes"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const usage = `RestoPos %s

Uso: restopos [-config fichero] <orden> [argumentos]

Órdenes:
  login <usuario> <contraseña>   inicia sesión
  logout                         cierra la sesión
  whoami                         muestra la sesión actual
  mesas                          lista las mesas
  cerrar-mesa <mesa>             entrega los pedidos, genera la cuenta y libera la mesa
  pedidos [mesa|mios]            lista los pedidos: todos, de una mesa o los propios
  cocina                         pedidos abiertos, los más antiguos primero
  productos [disponibles] [cat]  carta agrupada por categoría
  reservas [AAAA-MM-DD]          reservas del día
  cuentas [resumen]              cuentas cobradas o el resumen de ventas
  ticket <cuenta> [fichero.pdf]  imprime el ticket de una cuenta
  serve                          servidor local de tickets
`

type app struct {
	cfg     config.Config
	session *session.Store
	api     posapi.POSAPI
	menu    cache.CacheMenu
	out     *tabwriter.Writer
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "Config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage, version.GetVersion().String())
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	logger := logging.GetLogger()
	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("Config:>%v", err)
	}
	if err := logging.Configure(cfg.LOG.Debug != 0, cfg.LOG.File); err != nil {
		logger.Errorf("failed logging.Configure: %v", err)
	}
	logger.Infof("Start RestoPos %s", version.GetVersion().String())
	defer logger.Info("End RestoPos")

	a, closeDB, err := newApp(cfg)
	if err != nil {
		logger.Fatalf("failed to start: %v", err)
	}
	defer closeDB()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := a.run(ctx, flag.Arg(0), flag.Args()[1:]); err != nil {
		msg := controller.Message(err)
		fmt.Fprintln(os.Stderr, msg)
		logger.Errorf("%s: %v", flag.Arg(0), err)
		telegram.SendMessageToTelegramWithLogError(fmt.Sprintf("RestoPos %s: %s", flag.Arg(0), msg))
		stop()
		closeDB()
		os.Exit(1)
	}
}

func newApp(cfg config.Config) (*app, func(), error) {
	logger := logging.GetLogger()

	var backend session.Backend
	closeDB := func() {}
	db, err := database.Open(cfg.SESSION.DB)
	if err != nil {
		logger.Errorf("session database %s unavailable, session kept in memory: %v", cfg.SESSION.DB, err)
	} else {
		backend = session.NewSQLite(db, cfg.SESSION.Namespace)
		closeDB = func() { _ = db.Close() }
	}
	s := session.New(backend)

	api, err := posapi.NewAPI(posapi.Config{
		URL:     cfg.API.URL,
		Timeout: time.Duration(cfg.API.Timeout) * time.Second,
		RPS:     cfg.API.RPS,
	})
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	if err := telegram.Start(cfg.TELEGRAM.BotToken, cfg.TELEGRAM.ChatID, cfg.TELEGRAM.Debug != 0); err != nil {
		logger.Errorf("telegram unavailable: %v", err)
	}

	return &app{
		cfg:     cfg,
		session: s,
		api:     api,
		menu:    cache.NewCacheMenu(api, s, 5*time.Minute),
		out:     tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0),
	}, closeDB, nil
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	defer a.out.Flush()

	switch cmd {
	case "login":
		if len(args) != 2 {
			return errors.New("uso: login <usuario> <contraseña>")
		}
		return a.login(ctx, args[0], args[1])
	case "logout":
		controller.NewLogin(a.api, a.session).Logout()
		fmt.Fprintln(a.out, "Sesión cerrada.")
		return nil
	case "whoami":
		return a.whoami()
	case "mesas":
		return a.tables(ctx)
	case "cerrar-mesa":
		id, err := intArg(args, 0, "mesa")
		if err != nil {
			return err
		}
		return a.closeTable(ctx, id)
	case "pedidos":
		return a.orders(ctx, args)
	case "cocina":
		return a.kitchen(ctx)
	case "productos":
		return a.products(ctx, args)
	case "reservas":
		return a.reservations(ctx, args)
	case "cuentas":
		if len(args) > 0 && args[0] == "resumen" {
			return a.summary(ctx)
		}
		return a.bills(ctx)
	case "ticket":
		id, err := intArg(args, 0, "cuenta")
		if err != nil {
			return err
		}
		out := ""
		if len(args) > 1 {
			out = args[1]
		}
		return a.ticket(ctx, id, out)
	case "serve":
		return a.serve(ctx)
	default:
		flag.Usage()
		return errors.Errorf("orden desconocida %q", cmd)
	}
}

func (a *app) login(ctx context.Context, user, password string) error {
	c := controller.NewLogin(a.api, a.session)
	if err := c.Login(ctx, user, password); err != nil {
		return err
	}
	d := c.Data.Get()
	fmt.Fprintf(a.out, "Bienvenido, %s (%s).\n", d.UserName, d.Role)
	if !a.session.Persistent() {
		fmt.Fprintln(a.out, "Aviso: la sesión no se ha podido guardar en disco.")
	}
	return nil
}

func (a *app) whoami() error {
	d := a.session.Snapshot()
	if !a.session.IsLoggedIn() {
		if a.session.Expired() {
			return errors.Wrap(posapi.ErrUnauthenticated, "token caducado")
		}
		return posapi.ErrUnauthenticated
	}
	p := a.session.Permissions()
	fmt.Fprintf(a.out, "Usuario\t%s\nId\t%d\nRol\t%s\n", d.UserName, d.UserID, d.Role)
	fmt.Fprintf(a.out, "Pedidos\t%v\nCocina\t%v\nCerrar mesas\t%v\nReservas\t%v\nAdministración\t%v\n",
		p.TakeOrders, p.KitchenBoard, p.CloseTables, p.ManageReservations, p.ManageUsers)
	return nil
}

func (a *app) tables(ctx context.Context) error {
	c := controller.NewTables(a.api, a.session)
	defer c.Detach()
	if err := c.Load(ctx); err != nil {
		return err
	}
	list := adapter.NewList[domain.Table]()
	list.Submit(c.Data.Get())

	fmt.Fprintln(a.out, "MESA\tCAPACIDAD\tESTADO\tUBICACIÓN")
	for _, t := range list.Rows() {
		fmt.Fprintf(a.out, "%d\t%d\t%s\t%s\n", t.Number, t.Capacity, t.State.Label(), t.Location)
	}
	fmt.Fprintf(a.out, "%d mesas\n", list.Len())
	return nil
}

func (a *app) closeTable(ctx context.Context, tableID int) error {
	c := controller.NewTables(a.api, a.session)
	defer c.Detach()
	bill, err := c.Close(ctx, tableID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Mesa %d cerrada.\n", tableID)
	if bill == nil {
		return nil
	}

	a.out.Flush()
	var buf bytes.Buffer
	if err := ticket.RenderText(ticket.Build(*bill, a.ticketOptions()), &buf); err != nil {
		return err
	}
	fmt.Print(buf.String())
	telegram.SendMessageToTelegramWithLogError(fmt.Sprintf("Mesa %d cerrada, cuenta %d: %s",
		tableID, bill.ID, ticket.Money(decimalOf(bill.Total))))
	if err := telegram.SendTicket(buf.String()); err != nil {
		logging.GetLogger().Errorf("failed telegram.SendTicket: %v", err)
	}
	return nil
}

func (a *app) orders(ctx context.Context, args []string) error {
	c := controller.NewOrders(a.api, a.session)
	defer c.Detach()

	var err error
	switch {
	case len(args) > 0 && args[0] == "mios":
		err = c.LoadMine(ctx)
	case len(args) > 0:
		id, perr := intArg(args, 0, "mesa")
		if perr != nil {
			return perr
		}
		err = c.LoadForTable(ctx, id)
	default:
		err = c.LoadAll(ctx)
	}
	if err != nil {
		return err
	}
	a.printOrders(ctx, c.Data.Get())
	return nil
}

func (a *app) kitchen(ctx context.Context) error {
	c := controller.NewKitchen(a.api, a.session)
	defer c.Detach()
	if err := c.Load(ctx); err != nil {
		return err
	}
	a.printOrders(ctx, c.Data.Get())
	return nil
}

func (a *app) printOrders(ctx context.Context, orders []domain.Order) {
	if !a.menu.Fresh() {
		if err := a.menu.RefreshMenu(ctx); err != nil {
			logging.GetLogger().Warnf("product names unavailable: %v", err)
		}
	}
	fmt.Fprintln(a.out, "PEDIDO\tMESA\tESTADO\tHORA\tTOTAL")
	for _, o := range orders {
		o = a.menu.FillOrder(o)
		table := "-"
		if o.TableID != nil {
			table = strconv.Itoa(*o.TableID)
		}
		fmt.Fprintf(a.out, "%d\t%s\t%s\t%s\t%s\n", o.ID, table, o.State.Label(),
			o.CreatedAt.Format("15:04"), ticket.Money(decimalOf(o.Total)))
		for _, l := range o.Lines {
			name := a.menu.ProductName(l.ProductID)
			if l.Product != nil && l.Product.Name != "" {
				name = l.Product.Name
			}
			fmt.Fprintf(a.out, "\t%dx %s\t%s\t%s\t\n", l.Quantity, name, l.State.Label(), l.Notes)
		}
	}
}

func (a *app) products(ctx context.Context, args []string) error {
	var filter controller.ProductFilter
	for i, arg := range args {
		if arg == "disponibles" {
			filter.AvailableOnly = true
			continue
		}
		id, err := intArg(args, i, "categoría")
		if err != nil {
			return err
		}
		filter.CategoryID = id
	}

	c := controller.NewProducts(a.api, a.session)
	defer c.Detach()
	if err := c.LoadFiltered(ctx, filter); err != nil {
		return err
	}

	grouped := adapter.NewGrouped[domain.Product]()
	var groups []adapter.Group[domain.Product]
	for _, g := range c.Data.Get().Groups() {
		groups = append(groups, adapter.Group[domain.Product]{Key: g.Category.ID, Title: g.Category.Name, Items: g.Products})
	}
	grouped.Submit(groups)

	for _, row := range grouped.Rows() {
		if row.Header {
			fmt.Fprintf(a.out, "%s (%d)\t\t\t\n", strings.ToUpper(row.Title), row.Count)
			continue
		}
		p := row.Item
		available := ""
		if !p.Available {
			available = "agotado"
		}
		fmt.Fprintf(a.out, "  %s\t%s\t%s\t%s\n", p.Name, p.Type, ticket.Money(decimalOf(p.Price)), available)
	}
	return nil
}

func (a *app) reservations(ctx context.Context, args []string) error {
	day := time.Now()
	if len(args) > 0 {
		t, ok := parseDay(args[0])
		if !ok {
			return errors.Errorf("fecha no válida %q, usa AAAA-MM-DD", args[0])
		}
		day = t
	}

	c := controller.NewReservations(a.api, a.session)
	defer c.Detach()
	if err := c.LoadDay(ctx, day); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Reservas del %s\n", c.Day().Format("02/01/2006"))
	fmt.Fprintln(a.out, "HORA\tMESA\tCLIENTE\tPERSONAS\tESTADO\tTELÉFONO")
	for _, r := range c.Data.Get() {
		fmt.Fprintf(a.out, "%s\t%d\t%s\t%d\t%s\t%s\n", r.Time, r.TableID, r.CustomerName, r.PartySize, r.State, r.CustomerPhone)
	}
	return nil
}

func (a *app) bills(ctx context.Context) error {
	c := controller.NewBills(a.api, a.session)
	defer c.Detach()
	if err := c.Load(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "CUENTA\tFECHA\tMESA\tPAGO\tTOTAL")
	for _, b := range c.Data.Get() {
		doc := ticket.Build(b, a.ticketOptions())
		fmt.Fprintf(a.out, "%d\t%s\t%s\t%s\t%s\n", b.ID, b.PaidAt.Format("02/01/2006 15:04"),
			doc.Meta.Table, doc.Payment, ticket.Money(doc.Totals.Total))
	}
	return nil
}

func (a *app) summary(ctx context.Context) error {
	c := controller.NewBills(a.api, a.session)
	defer c.Detach()
	if err := c.LoadSummary(ctx, time.Time{}, time.Time{}); err != nil {
		return err
	}
	s := c.Summary.Get()
	fmt.Fprintf(a.out, "Cuentas\t%d\nTotal\t%s\n", s.Count, ticket.Money(decimalOf(s.Total)))
	for method, total := range s.ByPaymentMethod {
		fmt.Fprintf(a.out, "  %s\t%s\n", method, ticket.Money(decimalOf(total)))
	}
	return nil
}

func (a *app) ticket(ctx context.Context, billID int, pdfPath string) error {
	c := controller.NewBills(a.api, a.session)
	defer c.Detach()
	bill, err := c.Get(ctx, billID)
	if err != nil {
		return err
	}
	doc := ticket.Build(bill, a.ticketOptions())

	if pdfPath == "" {
		a.out.Flush()
		return ticket.RenderText(doc, os.Stdout)
	}
	f, err := os.Create(pdfPath)
	if err != nil {
		return errors.Wrapf(err, "failed os.Create(%s)", pdfPath)
	}
	defer f.Close()
	if err := ticket.RenderPDF(doc, f); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Ticket guardado en %s\n", pdfPath)
	return nil
}

func (a *app) serve(ctx context.Context) error {
	logger := logging.GetLogger()

	bills := controller.NewBills(a.api, a.session)
	defer bills.Detach()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.SERVICE.PORT),
		Handler:           httphandler.NewRouter(bills, a.ticketOptions()),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	logger.Infof("ticket server listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "failed ListenAndServe")
	}
	return nil
}

func (a *app) ticketOptions() ticket.Options {
	t := a.cfg.TICKET
	return ticket.Options{
		Name:    t.Name,
		Address: t.Address,
		Phone:   t.Phone,
		CIF:     t.CIF,
		Logo:    t.Logo,
		Footer:  t.Footer,
		Cashier: a.session.UserName(),
	}
}

func intArg(args []string, i int, name string) (int, error) {
	if len(args) <= i {
		return 0, errors.Errorf("falta el argumento <%s>", name)
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n <= 0 {
		return 0, errors.Errorf("%s no válida: %q", name, args[i])
	}
	return n, nil
}

func parseDay(s string) (time.Time, bool) {
	t, err := dateparse.ParseLocal(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func decimalOf(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}
