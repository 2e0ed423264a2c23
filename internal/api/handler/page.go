package handler

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vfg2006/detailing-dashboard/internal/domain"
	"github.com/vfg2006/detailing-dashboard/internal/usecases/dashboarding"
	"github.com/vfg2006/detailing-dashboard/pkg/apiErrors"
	"github.com/vfg2006/detailing-dashboard/pkg/log"
	"github.com/vfg2006/detailing-dashboard/pkg/utils"
)

//go:embed templates/*.html
var templatesFS embed.FS

var dashboardTemplate = template.Must(
	template.New("dashboard.html").Funcs(templateFuncs()).ParseFS(templatesFS, "templates/dashboard.html"),
)

// PageConfig carries the static parts of the dashboard page
type PageConfig struct {
	Title    string
	Notes    template.HTML
	PageSize int
}

type kpiCards struct {
	TotalRevenue      string
	TotalTransactions int
	AverageTicket     string
}

type pageData struct {
	Title          string
	Notes          template.HTML
	Cities         []string
	City           string
	StartDate      string
	EndDate        string
	MinDate        string
	MaxDate        string
	KPIs           kpiCards
	Table          domain.TablePage
	ServiceChart   string
	DailyChart     string
	PreviousURL    string
	NextURL        string
	DatasetSource  string
	DatasetVersion string
	LoadedAt       time.Time
}

// DashboardPage renders the single page dashboard. With no dates in the
// query the date inputs start at the dataset bounds.
func DashboardPage(service dashboarding.Dashboarder, cfg PageConfig) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		sel, err := parseSelection(r)
		if err != nil {
			writeQueryError(w, logger, err)
			return
		}

		page, _, err := parsePage(r, cfg.PageSize)
		if err != nil {
			writeQueryError(w, logger, err)
			return
		}

		opts := service.Options()
		if sel.StartDate == nil && sel.EndDate == nil && opts.StartDate != "" {
			sel.StartDate, _ = utils.ParseDate(opts.StartDate)
			sel.EndDate, _ = utils.ParseDate(opts.EndDate)
		}

		result := service.Compute(r.Context(), sel)
		table := dashboarding.Paginate(service.Columns(), result.Records, page, cfg.PageSize)

		data := pageData{
			Title:          cfg.Title,
			Notes:          cfg.Notes,
			Cities:         opts.Cities,
			StartDate:      utils.FormatDate(sel.StartDate),
			EndDate:        utils.FormatDate(sel.EndDate),
			MinDate:        opts.StartDate,
			MaxDate:        opts.EndDate,
			KPIs:           newKPICards(result.KPIs),
			Table:          table,
			DatasetSource:  opts.DatasetSource,
			DatasetVersion: opts.DatasetVersion,
			LoadedAt:       opts.LoadedAt,
		}
		if sel.City != nil {
			data.City = *sel.City
		}

		query := selectionQuery(data.City, data.StartDate, data.EndDate)
		data.ServiceChart = withQuery("/v1/charts/service-revenue.svg", query)
		data.DailyChart = withQuery("/v1/charts/daily-revenue.svg", query)
		if table.HasPrevious() {
			data.PreviousURL = pageURL(query, table.Page-1)
		}
		if table.HasNext() {
			data.NextURL = pageURL(query, table.Page+1)
		}

		if err := renderHTML(w, dashboardTemplate, data); err != nil {
			logger.WithError(err).Error("page: failed to render dashboard")
			apiErrors.WriteError(w, apiErrors.ErrRenderFailure, "failed to render page", nil)
		}
	})
}

// renderHTML executes tmpl into a buffer so nothing reaches w unless the
// whole page rendered.
func renderHTML(w http.ResponseWriter, tmpl *template.Template, data any) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
	return nil
}

func newKPICards(k domain.KPIs) kpiCards {
	cards := kpiCards{
		TotalRevenue:      utils.FormatMoney(k.TotalRevenue),
		TotalTransactions: k.TransactionCount,
		AverageTicket:     "No data",
	}
	if k.AverageTicket != nil {
		cards.AverageTicket = utils.FormatMoney(*k.AverageTicket)
	}
	return cards
}

func selectionQuery(city, startDate, endDate string) url.Values {
	query := url.Values{}
	if city != "" {
		query.Set("city", city)
	}
	if startDate != "" {
		query.Set("start_date", startDate)
	}
	if endDate != "" {
		query.Set("end_date", endDate)
	}
	return query
}

func pageURL(query url.Values, page int) string {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("page", strconv.Itoa(page))
	return withQuery("/", q)
}

func withQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"formatTime": formatTime,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04:05 MST")
}
