package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"github.com/Juniordecoy/xpa3-dd-dashboard/domain"
)

// Register wires up all routes on the provided Echo instance.
func Register(e *echo.Echo, board *domain.Board, persist Persistence, clock domain.Clock, logger *log.Logger) {
	e.GET("/", getBoard(board, clock, logger))
	e.POST("/update-location", postLocation(board, persist))
	e.POST("/override-truck", postOverride(board, persist))
	e.GET("/download-csv", getDownload(persist))
	e.GET("/healthz", healthz())
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func getBoard(board *domain.Board, clock domain.Clock, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) (err error) {
		ctx := c.Request().Context()
		metrics, spanCtx := newBoardRequestMetrics(ctx, logger)
		if spanCtx != nil {
			req := c.Request().WithContext(spanCtx)
			c.SetRequest(req)
		}
		defer func() {
			metrics.Log(c.Response().Status, err)
		}()

		resolveStart := time.Now()
		page := boardPage{
			Timestamp:       clock.StampLabeled(),
			FrontRows:       board.FrontRows(),
			BackRows:        board.BackRows(),
			TruckTypes:      domain.TruckTypes,
			Overrides:       board.Overrides(),
			LocationOptions: domain.AllLocations,
			DoorOptions:     board.Doors(),
		}
		metrics.ObserveResolve(time.Since(resolveStart))
		metrics.SetDoorsRendered(len(page.FrontRows) + len(page.BackRows))
		metrics.SetOverridesActive(len(page.Overrides))

		renderStart := time.Now()
		err = c.Render(http.StatusOK, "index.html", page)
		metrics.ObserveRender(time.Since(renderStart))
		if err != nil {
			metrics.SetErrorStage("render")
		}
		return err
	}
}

// postLocation moves a door to a new location. A non-numeric or unknown door
// is a silent no-op: the operator is always redirected back to the board.
func postLocation(board *domain.Board, persist Persistence) echo.HandlerFunc {
	return func(c echo.Context) error {
		door, err := strconv.Atoi(strings.TrimSpace(c.FormValue("door")))
		if err == nil {
			if st, ok := board.SetLocation(door, c.FormValue("location")); ok {
				persist.Persist(c.Request().Context(), st)
			}
		}
		return c.Redirect(http.StatusSeeOther, "/")
	}
}

func postOverride(board *domain.Board, persist Persistence) echo.HandlerFunc {
	return func(c echo.Context) error {
		door, err := strconv.Atoi(strings.TrimSpace(c.FormValue("door")))
		if err == nil {
			if st, ok := board.SetOverride(door, c.FormValue("truck")); ok {
				persist.Persist(c.Request().Context(), st)
			}
		}
		return c.Redirect(http.StatusSeeOther, "/")
	}
}

func getDownload(persist Persistence) echo.HandlerFunc {
	return func(c echo.Context) error {
		snap, err := persist.Export(c.Request().Context())
		if err != nil {
			c.Logger().Error(err)
			return c.String(http.StatusInternalServerError, err.Error())
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+snap.Filename)
		return c.Blob(http.StatusOK, snap.ContentType, snap.Data)
	}
}
