package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/cadastro-clientes/internal/application/usecase"
	"github.com/jhoicas/cadastro-clientes/pkg/logger"
	"github.com/jhoicas/cadastro-clientes/pkg/metrics"
	"github.com/jhoicas/cadastro-clientes/web"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName  string
	ClientUC *usecase.ClientUseCase
	ReportUC *usecase.ReportUseCase
	Log      *logger.Logger
	Metrics  *metrics.Metrics            // opcional
	Gatherer prometheus.Gatherer         // opcional; sin él no se expone /metrics
	Ping     func(context.Context) error // opcional; verificación del almacenamiento en /health
}

// NewApp crea la aplicación Fiber con vistas embebidas, middlewares y rutas.
func NewApp(deps RouterDeps) (*fiber.App, error) {
	views, err := NewViews(web.TemplatesFS, "templates")
	if err != nil {
		return nil, err
	}
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		Views:        views,
		ErrorHandler: ErrorHandler(deps.Log),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	})
	app.Use(recover.New())
	app.Use(RequestID())
	app.Use(AccessLog(deps.Log, deps.Metrics))

	Router(app, deps)
	return app, nil
}

// Router registra las rutas de la aplicación.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use("/static", filesystem.New(filesystem.Config{
		Root:       http.FS(web.StaticFS),
		PathPrefix: "static",
		MaxAge:     3600,
	}))

	app.Get("/health", healthHandler(deps.AppName, deps.Ping, deps.Log))
	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/clients", fiber.StatusFound)
	})

	clientHandler := NewClientHandler(deps.ClientUC, deps.Log)
	clients := app.Group("/clients")
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Get("/new", clientHandler.New)
	clients.Get("/:id/edit", clientHandler.Edit)
	clients.Post("/:id/update", clientHandler.Update)
	clients.Post("/:id/delete", clientHandler.Delete)

	reportHandler := NewReportHandler(deps.ReportUC)
	app.Get("/reports", reportHandler.Income)
}

// healthHandler responde 503 si el almacenamiento no responde; la causa sólo va al log.
func healthHandler(service string, ping func(context.Context) error, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				log.Error().Err(err).Str("request_id", GetRequestID(c)).Msg("health: almacenamiento no disponible")
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status":  "unavailable",
					"service": service,
				})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}
