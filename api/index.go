package handler

import (
	"log"
	"net/http"
	"sync"

	"github.com/amirasaad/paycore/infra/initializer"
	"github.com/amirasaad/paycore/pkg/app"
	"github.com/amirasaad/paycore/pkg/config"
	"github.com/amirasaad/paycore/webapi"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

var (
	once    sync.Once
	httpApp http.HandlerFunc
)

// Handler is the main entry point of the application.
// Think of it like the main() method
func Handler(w http.ResponseWriter, r *http.Request) {
	// This is needed to set the proper request path in `*fiber.Ctx`
	r.RequestURI = r.URL.String()

	once.Do(func() { httpApp = handler() })
	httpApp.ServeHTTP(w, r)
}

// building the fiber application
func handler() http.HandlerFunc {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load application configuration: %v", err)
	}
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		log.Fatalf("failed to initialize dependencies: %v", err)
	}
	return adaptor.FiberApp(webapi.SetupApp(app.New(deps, cfg)))
}
