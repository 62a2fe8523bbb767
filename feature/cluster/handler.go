package cluster

import (
	"errors"
	"time"

	"dns-fleet/core/logger"
	"dns-fleet/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the cluster views.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the cluster routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/cluster")
	group.Get("/logs", h.HandleLogs)
	group.Get("/drift", h.HandleDrift)
	group.Post("/drift/archive", h.HandleArchiveDrift)
	group.Get("/archives", h.HandleListArchives)
	group.Get("/archives/*", h.HandleGetArchive)
	group.Get("/sync", h.HandleSync)
	group.Get("/similarity", h.HandleSimilarity)
}

// HandleLogs returns the reconciled query log.
// @Summary Cluster Query Log
// @Description Merges the query logs of all nodes into one bounded, newest-first, node-balanced view.
// @Tags cluster
// @Produce json
// @Param limit query int false "View capacity"
// @Param dedupe query boolean false "Suppress duplicate queries"
// @Param names query boolean false "Resolve client names from DHCP leases"
// @Param domain query string false "Domain substring"
// @Param client query string false "Client name or address substring"
// @Param status query string false "all, blocked or allowed"
// @Param node query string false "Restrict to one node"
// @Param start query string false "RFC3339 start time"
// @Param end query string false "RFC3339 end time"
// @Success 200 {object} LogsResult
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Unknown Node"
// @Router /cluster/logs [get]
func (h *Handler) HandleLogs(c *fiber.Ctx) error {
	req := LogsRequest{
		Limit:        c.QueryInt("limit", 0),
		Dedupe:       c.QueryBool("dedupe", false),
		ResolveNames: c.QueryBool("names", true),
		Filter: ViewFilter{
			Domain: c.Query("domain"),
			Client: c.Query("client"),
			Status: c.Query("status"),
			Node:   c.Query("node"),
		},
	}
	if req.Limit < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "limit must not be negative"})
	}

	var err error
	if req.Start, err = parseTime(c.Query("start")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid start: " + err.Error()})
	}
	if req.End, err = parseTime(c.Query("end")); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid end: " + err.Error()})
	}

	result, err := h.service.Logs(c.UserContext(), req)
	if err != nil {
		return h.fail(c, "Failed to reconcile logs", err)
	}
	return c.JSON(result)
}

// HandleDrift compares the blocking groups of two nodes.
// @Summary Configuration Drift
// @Description Compares the blocking groups of node a and node b. Near-match hints never affect the count.
// @Tags cluster
// @Produce json
// @Param a query string true "First node"
// @Param b query string true "Second node"
// @Param hints query boolean false "Include near-match hints"
// @Success 200 {object} DriftReport
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Unknown Node"
// @Failure 502 {object} map[string]string "Node Unavailable"
// @Router /cluster/drift [get]
func (h *Handler) HandleDrift(c *fiber.Ctx) error {
	a, b := c.Query("a"), c.Query("b")
	if a == "" || b == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "query parameters a and b are required"})
	}

	report, err := h.service.Drift(c.UserContext(), a, b, c.QueryBool("hints", false))
	if err != nil {
		return h.fail(c, "Failed to compare configurations", err)
	}
	return c.JSON(report)
}

// HandleArchiveDrift compares two nodes and archives the report.
// @Summary Archive Configuration Drift
// @Tags cluster
// @Produce json
// @Param a query string true "First node"
// @Param b query string true "Second node"
// @Param hints query boolean false "Include near-match hints"
// @Success 201 {object} map[string]interface{} "Archived report key"
// @Failure 503 {object} map[string]string "Archive Disabled"
// @Router /cluster/drift/archive [post]
func (h *Handler) HandleArchiveDrift(c *fiber.Ctx) error {
	a, b := c.Query("a"), c.Query("b")
	if a == "" || b == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "query parameters a and b are required"})
	}

	ctx := c.UserContext()
	report, err := h.service.Drift(ctx, a, b, c.QueryBool("hints", false))
	if err != nil {
		return h.fail(c, "Failed to compare configurations", err)
	}
	key, err := h.service.ArchiveDrift(ctx, report)
	if err != nil {
		return h.fail(c, "Failed to archive drift report", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"key": key, "drift": report.Drift.Count})
}

// HandleListArchives lists archived drift reports.
// @Summary List Archived Drift Reports
// @Tags cluster
// @Produce json
// @Success 200 {array} storage.Object
// @Failure 503 {object} map[string]string "Archive Disabled"
// @Router /cluster/archives [get]
func (h *Handler) HandleListArchives(c *fiber.Ctx) error {
	objects, err := h.service.Archives(c.UserContext())
	if err != nil {
		return h.fail(c, "Failed to list archives", err)
	}
	return c.JSON(objects)
}

// HandleGetArchive returns one archived drift report.
// @Summary Get Archived Drift Report
// @Tags cluster
// @Produce json
// @Param key path string true "Object key"
// @Success 200 {object} DriftReport
// @Failure 404 {object} map[string]string "Not Found"
// @Router /cluster/archives/{key} [get]
func (h *Handler) HandleGetArchive(c *fiber.Ctx) error {
	report, err := h.service.Archived(c.UserContext(), c.Params("*"))
	if err != nil {
		return h.fail(c, "Failed to load archive", err)
	}
	return c.JSON(report)
}

// HandleSync returns the sync status of every node against a reference.
// @Summary Cluster Sync Status
// @Tags cluster
// @Produce json
// @Param reference query string false "Reference node, defaults to the first node"
// @Success 200 {object} SyncReport
// @Failure 404 {object} map[string]string "Unknown Node"
// @Failure 502 {object} map[string]string "Reference Unavailable"
// @Router /cluster/sync [get]
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	report, err := h.service.SyncStatus(c.UserContext(), c.Query("reference"))
	if err != nil {
		return h.fail(c, "Failed to compute sync status", err)
	}
	return c.JSON(report)
}

// HandleSimilarity scores two strings with the fuzzy matcher.
// @Summary String Similarity
// @Tags cluster
// @Produce json
// @Param x query string true "First value"
// @Param y query string true "Second value"
// @Success 200 {object} map[string]interface{} "Similarity and distance"
// @Router /cluster/similarity [get]
func (h *Handler) HandleSimilarity(c *fiber.Ctx) error {
	x, y := c.Query("x"), c.Query("y")
	return c.JSON(fiber.Map{
		"x":          x,
		"y":          y,
		"similarity": reconcile.Similarity(x, y),
		"distance":   reconcile.Distance(x, y),
	})
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidFilter), errors.Is(err, reconcile.ErrMalformedInput):
		status = fiber.StatusBadRequest
	case errors.Is(err, ErrUnknownNode), errors.Is(err, ErrUnknownArchive):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrFetchFailed):
		status = fiber.StatusBadGateway
	case errors.Is(err, ErrArchiveDisabled):
		status = fiber.StatusServiceUnavailable
	}

	l := logger.WithRayID(h.service.logger, c)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Info(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func parseTime(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, v)
}
