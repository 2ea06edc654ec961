package handlers

import (
	"errors"
	"strconv"
	"strings"

	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the product routes on router.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", middleware.ValidateBody(validation.CreateProductRules()), h.HandleCreateProduct)
	productRoutes.Put("/:id", middleware.ValidateBody(validation.UpdateProductRules()), h.HandleUpdateProduct)
	// PATCH only toggles availability; any body is ignored.
	productRoutes.Patch("/:id", h.HandleToggleAvailability)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// resolveProduct parses the :id parameter and loads the product it names.
// A comma-separated list of ids is rejected before any lookup.
func (h *ProductHandler) resolveProduct(c *fiber.Ctx) (*models.Product, error) {
	raw := c.Params("id")
	if strings.Contains(raw, ",") {
		return nil, ErrInvalidID
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, ErrIDNotNumber
	}
	if id < 1 {
		return nil, ErrProductNotFound
	}

	product, err := h.service.GetProductByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// HandleGetProducts returns every product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": products})
}

// HandleGetProductByID returns a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.resolveProduct(c)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleCreateProduct creates a product from a validated body. New products
// are always available.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	body := middleware.ValidatedBody(c)
	product, err := h.service.CreateProduct(models.ProductInput{
		Name:         validation.String(body["name"]),
		Price:        validation.Float(body["price"]),
		Availability: true,
	})
	if err != nil {
		return err
	}

	h.logger.Info("product created", zap.Uint("product_id", product.ID))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": product})
}

// HandleUpdateProduct replaces name, price and availability.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	product, err := h.resolveProduct(c)
	if err != nil {
		return err
	}

	body := middleware.ValidatedBody(c)
	in := models.ProductInput{
		Name:         validation.String(body["name"]),
		Price:        validation.Float(body["price"]),
		Availability: validation.Bool(body["availability"]),
	}
	if err := h.service.UpdateProduct(product, in); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleToggleAvailability negates the availability flag.
func (h *ProductHandler) HandleToggleAvailability(c *fiber.Ctx) error {
	product, err := h.resolveProduct(c)
	if err != nil {
		return err
	}

	if err := h.service.ToggleAvailability(product); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return c.JSON(fiber.Map{"data": product})
}

// HandleDeleteProduct removes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	product, err := h.resolveProduct(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProduct(product); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	h.logger.Info("product deleted", zap.Uint("product_id", product.ID))
	return c.JSON(fiber.Map{"data": MsgProductDeleted})
}
