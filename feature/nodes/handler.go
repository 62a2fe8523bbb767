package nodes

import (
	"errors"

	"dns-fleet/core/logger"
	"dns-fleet/core/node"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the node registry.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the registry routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/nodes")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandleAdd)
	group.Get("/:id", h.HandleGet)
	group.Delete("/:id", h.HandleRemove)
}

// addRequest is the body of POST /nodes. The token is write-only.
type addRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Token string `json:"token"`
}

// HandleList lists registered nodes.
// @Summary List Nodes
// @Description Lists the DNS nodes of the cluster. Tokens are never returned.
// @Tags nodes
// @Produce json
// @Success 200 {array} node.Node
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /nodes [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	list, err := h.service.List(c.UserContext())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to list nodes", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(list)
}

// HandleGet returns a single node.
// @Summary Get Node
// @Tags nodes
// @Produce json
// @Param id path string true "Node ID"
// @Success 200 {object} node.Node
// @Failure 404 {object} map[string]string "Not Found"
// @Router /nodes/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	n, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(n)
}

// HandleAdd registers or replaces a node.
// @Summary Register Node
// @Tags nodes
// @Accept json
// @Produce json
// @Param node body addRequest true "Node definition"
// @Success 201 {object} node.Node
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /nodes [post]
func (h *Handler) HandleAdd(c *fiber.Ctx) error {
	var req addRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	n, err := h.service.Add(c.UserContext(), node.Node{ID: req.ID, Name: req.Name, URL: req.URL, Token: req.Token})
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(n)
}

// HandleRemove deletes a node.
// @Summary Remove Node
// @Tags nodes
// @Param id path string true "Node ID"
// @Success 204
// @Failure 404 {object} map[string]string "Not Found"
// @Router /nodes/{id} [delete]
func (h *Handler) HandleRemove(c *fiber.Ctx) error {
	if err := h.service.Remove(c.UserContext(), c.Params("id")); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrInvalidNode):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.WithRayID(h.service.logger, c).Error("Registry operation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
