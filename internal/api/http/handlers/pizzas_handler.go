package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pizza-service/internal/api/dto"
	"github.com/spec-kit/pizza-service/internal/auth"
	"github.com/spec-kit/pizza-service/internal/service"
	apperrors "github.com/spec-kit/pizza-service/pkg/util"
)

// PizzasHandler exposes catalog endpoints. Reads are public; writes are
// admin-gated at route registration.
type PizzasHandler struct {
	catalog *service.CatalogService
}

// NewPizzasHandler constructs handler.
func NewPizzasHandler(catalog *service.CatalogService) *PizzasHandler {
	return &PizzasHandler{catalog: catalog}
}

// List handles GET /pizzas.
func (h *PizzasHandler) List(c *fiber.Ctx) error {
	pizzas, err := h.catalog.ListAvailable(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPizzaListResponse(pizzas)})
}

// Get handles GET /pizzas/:id.
func (h *PizzasHandler) Get(c *fiber.Ctx) error {
	pizza, err := h.catalog.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPizzaResponse(pizza)})
}

// Create handles POST /pizzas.
func (h *PizzasHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PizzaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	pizza, err := h.catalog.Create(c.Context(), *identity, service.PizzaInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		IsAvailable: req.IsAvailable,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewPizzaResponse(pizza)})
}

// Update handles PATCH /pizzas/:id.
func (h *PizzasHandler) Update(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PizzaRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	pizza, err := h.catalog.Update(c.Context(), *identity, c.Params("id"), service.PizzaInput{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		IsAvailable: req.IsAvailable,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewPizzaResponse(pizza)})
}

// Delete handles DELETE /pizzas/:id.
func (h *PizzasHandler) Delete(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.catalog.Delete(c.Context(), *identity, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
