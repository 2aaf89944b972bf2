package routers

import (
	"net/http"

	"github.com/contractlens/contractlens/server/restapi/handlers"
)

type AnalysesAPIRouter struct {
	analysesController *handlers.AnalysesAPIController
}

func NewAnalysesAPIRouter(controller *handlers.AnalysesAPIController) *AnalysesAPIRouter {
	return &AnalysesAPIRouter{analysesController: controller}
}

func (r *AnalysesAPIRouter) Routes() Routes {
	return Routes{
		Route{
			Name:        "CreateAnalysis",
			Methods:     []string{http.MethodPost},
			Pattern:     "/apps/{app_name}/users/{user_id}/analyses",
			HandlerFunc: r.analysesController.CreateAnalysis,
		},
		Route{
			Name:        "GetAnalysis",
			Methods:     []string{http.MethodGet},
			Pattern:     "/apps/{app_name}/users/{user_id}/analyses/{analysis_id}",
			HandlerFunc: r.analysesController.GetAnalysis,
		},
		Route{
			Name:        "ListAnalyses",
			Methods:     []string{http.MethodGet},
			Pattern:     "/apps/{app_name}/users/{user_id}/analyses",
			HandlerFunc: r.analysesController.ListAnalyses,
		},
		Route{
			Name:        "DeleteAnalysis",
			Methods:     []string{http.MethodDelete},
			Pattern:     "/apps/{app_name}/users/{user_id}/analyses/{analysis_id}",
			HandlerFunc: r.analysesController.DeleteAnalysis,
		},
		Route{
			Name:        "Health",
			Methods:     []string{http.MethodGet},
			Pattern:     "/healthz",
			HandlerFunc: r.analysesController.Health,
		},
	}
}
