package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/client"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/dto"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/reference"
)

// PAC report tabs.
var pacTabs = []string{"OPS_25_26", "OPS_314_16", "CONSOLIDATED"}

// page carries what every layout needs.
type page struct {
	Title string
	User  *dto.UserResponse
	Today time.Time
}

func (s *Server) page(c *gin.Context, title string) page {
	return page{Title: title, User: viewerFrom(c).user, Today: s.now()}
}

// ────────────────────────────── auth ──────────────────────────────

type loginView struct {
	page
	Username string
	Error    string
}

func (s *Server) loginPage(c *gin.Context) {
	if viewerFrom(c).user != nil {
		c.Redirect(http.StatusFound, "/fwfps")
		return
	}
	c.HTML(http.StatusOK, "login.html", loginView{page: s.page(c, "Sign in")})
}

func (s *Server) login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")
	view := loginView{page: s.page(c, "Sign in"), Username: username}

	if username == "" || password == "" {
		view.Error = "Username and password are required"
		c.HTML(http.StatusBadRequest, "login.html", view)
		return
	}

	res, err := viewerFrom(c).api.Login(c.Request.Context(), username, password)
	if err != nil {
		status := http.StatusBadGateway
		var apiErr *client.APIError
		switch {
		case client.IsUnauthorized(err):
			status = http.StatusUnauthorized
			view.Error = "Invalid username or password"
		case errors.As(err, &apiErr):
			status = apiErr.Status
			view.Error = apiErr.Code
		default:
			s.logger.Warn("login request failed", zap.Error(err))
			view.Error = "Unable to reach the FWFPS server. Please try again later."
		}
		c.HTML(status, "login.html", view)
		return
	}

	s.setToken(c, res.Token, 0)
	c.Redirect(http.StatusFound, "/fwfps")
}

func (s *Server) logout(c *gin.Context) {
	v := viewerFrom(c)
	if v.api.Token() != "" {
		if err := v.api.Logout(c.Request.Context()); err != nil {
			s.logger.Warn("logout request failed", zap.Error(err))
		}
	}
	s.setToken(c, "", -1)
	c.Redirect(http.StatusFound, "/auth/login")
}

// ────────────────────────────── home ──────────────────────────────

type fiscalYearRow struct {
	Year     int
	Workplan string
	Status   string
}

type homeView struct {
	page
	FiscalYears      []fiscalYearRow
	OlderWorkplans   []string
	Dashboard        *dto.WorkplanDashboard
	BackendConnected bool
}

func (s *Server) home(c *gin.Context) {
	fy := s.catalog.FiscalYears
	view := homeView{
		page: s.page(c, "FWFPS"),
		FiscalYears: []fiscalYearRow{
			{Year: fy.Current, Workplan: reference.WorkplanName(fy.Current), Status: "current"},
			{Year: fy.Upcoming, Workplan: reference.WorkplanName(fy.Upcoming), Status: "upcoming"},
		},
	}
	for _, y := range s.catalog.HistoricalYears() {
		view.OlderWorkplans = append(view.OlderWorkplans, reference.WorkplanName(y))
	}

	d, err := viewerFrom(c).api.WorkplanDashboard(c.Request.Context())
	if err != nil {
		s.logger.Warn("workplan dashboard unavailable", zap.Error(err))
	} else {
		view.Dashboard = d
		view.BackendConnected = true
	}
	c.HTML(http.StatusOK, "home.html", view)
}

// ────────────────────────────── model ──────────────────────────────

type modelView struct {
	page
	Models           []reference.WorkplanModel
	Workplans        []dto.WorkplanResponse
	BackendConnected bool
}

func (s *Server) models(c *gin.Context) {
	view := modelView{page: s.page(c, "Workplan Models"), Models: s.catalog.Models()}

	wps, err := viewerFrom(c).api.Workplans(c.Request.Context(), dto.WorkplanListQuery{})
	if err != nil {
		s.logger.Warn("workplans unavailable", zap.Error(err))
	} else {
		view.Workplans = wps
		view.BackendConnected = true
	}
	c.HTML(http.StatusOK, "model.html", view)
}

// ────────────────────────────── PPS ──────────────────────────────

type ppsView struct {
	page
	Workplan         string
	Year             int
	Search           string
	Rows             []reference.Program
	Matches          int
	TotalHours       float64
	TotalFTEs        float64
	Pager            pager
	PrevURL          string
	NextURL          string
	Workplans        []dto.WorkplanResponse
	BackendConnected bool
}

func (s *Server) pps(c *gin.Context) {
	current := s.catalog.FiscalYears.Current
	workplan := c.Query("workplan")
	year := atoiDefault(c.Query("year"), reference.YearFromName(workplan, current))
	search := strings.TrimSpace(c.Query("search"))

	view := ppsView{page: s.page(c, "PPS Summary"), Year: year, Search: search}

	wps, err := viewerFrom(c).api.Workplans(c.Request.Context(), dto.WorkplanListQuery{})
	if err != nil {
		s.logger.Warn("workplans unavailable, showing reference data", zap.Error(err))
	} else {
		view.Workplans = wps
		view.BackendConnected = true
	}

	switch {
	case workplan != "":
		view.Workplan = workplan
	case len(view.Workplans) > 0:
		view.Workplan = view.Workplans[0].Title
	default:
		view.Workplan = reference.WorkplanName(year)
	}

	all := s.catalog.ProgramsForYear(year)
	view.TotalHours, view.TotalFTEs = reference.ProgramTotals(all)

	matches := reference.SearchPrograms(all, search)
	view.Matches = len(matches)
	view.Pager = paginate(len(matches), atoiDefault(c.Query("page"), 1))
	view.Rows = matches[view.Pager.Start:view.Pager.End]

	q := url.Values{}
	q.Set("workplan", view.Workplan)
	q.Set("year", strconv.Itoa(year))
	if search != "" {
		q.Set("search", search)
	}
	if view.Pager.HasPrev() {
		view.PrevURL = pageURL("/pps", q, view.Pager.Page-1)
	}
	if view.Pager.HasNext() {
		view.NextURL = pageURL("/pps", q, view.Pager.Page+1)
	}

	c.HTML(http.StatusOK, "pps.html", view)
}

// ────────────────────────────── PAC ──────────────────────────────

type pacView struct {
	page
	Code         string
	ProgramTitle string
	Workplan     string
	Year         int
	FromPPS      bool
	Tab          string
	Tabs         []string
	Items        []reference.PacItem
	TotalHours   float64
	TotalFTEs    float64
	BackURL      string

	Operations       []dto.OperationResponse
	OperationsLoaded bool
	Dashboard        *dto.PacDashboard
	BackendConnected bool
}

func (s *Server) pac(c *gin.Context) {
	code := c.Param("id")
	year := atoiDefault(c.Query("year"), s.catalog.FiscalYears.Current)

	view := pacView{
		page:         s.page(c, "PAC "+code),
		Code:         code,
		ProgramTitle: s.catalog.Title(code),
		Workplan:     c.DefaultQuery("workplan", "Current Workplan"),
		Year:         year,
		FromPPS:      c.Query("fromPPS") == "true",
		Tab:          pacTabs[0],
		Tabs:         pacTabs,
		Items:        s.catalog.PacItemsFor(code),
	}
	for _, t := range pacTabs {
		if c.Query("tab") == t {
			view.Tab = t
		}
	}
	view.TotalHours, view.TotalFTEs = reference.PacTotals(view.Items)

	if view.FromPPS {
		q := url.Values{}
		q.Set("workplan", view.Workplan)
		q.Set("year", strconv.Itoa(year))
		view.BackURL = "/pps?" + q.Encode()
	} else {
		view.BackURL = "/fwfps"
	}

	// Both calls run together; each side falls back on its own.
	api := viewerFrom(c).api
	ctx := c.Request.Context()
	var (
		ops       []dto.OperationResponse
		dashboard *dto.PacDashboard
		opsErr    error
		dashErr   error
		g         errgroup.Group
	)
	g.Go(func() error {
		ops, opsErr = api.Operations(ctx, dto.OperationListQuery{})
		return nil
	})
	g.Go(func() error {
		dashboard, dashErr = api.PacDashboard(ctx)
		return nil
	})
	_ = g.Wait()

	if opsErr != nil {
		s.logger.Warn("pac operations unavailable", zap.String("pac", code), zap.Error(opsErr))
	} else {
		view.Operations = ops
		view.OperationsLoaded = true
	}
	if dashErr != nil {
		s.logger.Warn("pac dashboard unavailable", zap.Error(dashErr))
	} else {
		view.Dashboard = dashboard
	}
	view.BackendConnected = view.OperationsLoaded || view.Dashboard != nil

	c.HTML(http.StatusOK, "pac.html", view)
}
