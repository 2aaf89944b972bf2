package web

import (
	"net/http"

	"github.com/contractlens/contractlens/reportservice"
	"github.com/contractlens/contractlens/server/restapi/config"
	"github.com/contractlens/contractlens/server/restapi/handlers"
	"github.com/contractlens/contractlens/server/restapi/routers"
)

// SetupRouter builds the full API handler, CORS wrapping included.
func SetupRouter(cfg *config.APIServerConfigs, a handlers.ContractAnalyzer, service reportservice.Service) http.Handler {
	router := routers.NewRouter(
		routers.NewAnalysesAPIRouter(handlers.NewAnalysesAPIController(a, service)),
	)
	return cfg.Cors.Handler(router)
}
