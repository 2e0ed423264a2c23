package handler

import (
	"net/http"

	"github.com/vfg2006/detailing-dashboard/internal/api/handler/router"
	"github.com/vfg2006/detailing-dashboard/internal/usecases/dashboarding"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Page(service dashboarding.Dashboarder, cfg PageConfig) []router.Route {
	return []router.Route{
		{
			Path:    "/",
			Method:  http.MethodGet,
			Handler: DashboardPage(service, cfg),
		},
	}
}

func Dashboard(service dashboarding.Dashboarder, defaultPageSize int) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/filters",
			Method:  http.MethodGet,
			Handler: GetFilters(service),
		},
		{
			Path:    "/v1/dashboard",
			Method:  http.MethodGet,
			Handler: GetDashboard(service, defaultPageSize),
		},
		{
			Path:    "/v1/transactions",
			Method:  http.MethodGet,
			Handler: GetTransactions(service, defaultPageSize),
		},
	}
}

func Charts(service dashboarding.Dashboarder) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/charts/service-revenue.svg",
			Method:  http.MethodGet,
			Handler: ServiceRevenueChart(service),
		},
		{
			Path:    "/v1/charts/daily-revenue.svg",
			Method:  http.MethodGet,
			Handler: DailyRevenueChart(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}

func Metrics(handler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: handler,
		},
	}
}
