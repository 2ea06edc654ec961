// Package frontend serves the HTML views of the catalog. Every read and
// write goes through the REST API.
package frontend

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"catalog/internal/models"
	"catalog/pkg/client"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	MsgRequiredFields = "Todos los campos son obligatorios"
	MsgInvalidData    = "Datos no válidos"
	MsgSaveFailed     = "No se pudo guardar el producto"
	MsgLoadFailed     = "No se pudieron cargar los productos"
)

// ProductAPI is the part of the API client the views need.
type ProductAPI interface {
	GetProducts() ([]models.Product, error)
	GetProductByID(id uint) (*models.Product, error)
	AddProduct(req client.ProductRequest) (*models.Product, error)
	UpdateProduct(id uint, req client.ProductRequest) (*models.Product, error)
}

// Handler renders the list, create and edit views.
type Handler struct {
	api       ProductAPI
	templates *template.Template
	logger    *zap.Logger
}

// NewHandler parses the embedded templates.
func NewHandler(api ProductAPI, logger *zap.Logger) (*Handler, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"currency": formatCurrency,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Handler{api: api, templates: tmpl, logger: logger}, nil
}

// RegisterRoutes registers the view routes.
func (h *Handler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleProducts)
	router.Get("/productos/nuevo", h.HandleNewProduct)
	router.Post("/productos/nuevo", h.HandleCreateProduct)
	router.Get("/productos/:id/editar", h.HandleEditProduct)
	router.Post("/productos/:id/editar", h.HandleUpdateProduct)
}

type listView struct {
	Products []models.Product
	Error    string
}

type formView struct {
	Title        string
	Action       string
	Submit       string
	Error        string
	Name         string
	Price        string
	Availability bool
	Edit         bool
}

func newProductView() formView {
	return formView{
		Title:  "Registrar Producto",
		Action: "/productos/nuevo",
		Submit: "Registrar Producto",
	}
}

func editProductView(id uint) formView {
	return formView{
		Title:        "Editar Producto",
		Action:       fmt.Sprintf("/productos/%d/editar", id),
		Submit:       "Guardar Cambios",
		Availability: true,
		Edit:         true,
	}
}

// HandleProducts loads and lists every product.
func (h *Handler) HandleProducts(c *fiber.Ctx) error {
	products, err := h.api.GetProducts()
	if err != nil {
		h.logger.Error("failed to load products", zap.Error(err))
		return h.render(c, fiber.StatusBadGateway, "products", listView{Error: MsgLoadFailed})
	}
	return h.render(c, fiber.StatusOK, "products", listView{Products: products})
}

// HandleNewProduct shows the empty create form.
func (h *Handler) HandleNewProduct(c *fiber.Ctx) error {
	return h.render(c, fiber.StatusOK, "product_form", newProductView())
}

// HandleCreateProduct submits the create form and returns to the list.
func (h *Handler) HandleCreateProduct(c *fiber.Ctx) error {
	view := newProductView()
	view.Name = c.FormValue("name")
	view.Price = c.FormValue("price")

	req, msg := parseProductForm(view.Name, view.Price)
	if msg != "" {
		view.Error = msg
		return h.render(c, fiber.StatusUnprocessableEntity, "product_form", view)
	}

	if _, err := h.api.AddProduct(req); err != nil {
		view.Error = h.saveError(err)
		return h.render(c, fiber.StatusUnprocessableEntity, "product_form", view)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleEditProduct loads a product into the edit form. Anything that
// prevents loading it sends the user back to the list.
func (h *Handler) HandleEditProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	product, err := h.api.GetProductByID(uint(id))
	if err != nil {
		if !client.IsNotFound(err) {
			h.logger.Warn("failed to load product for edit", zap.Uint64("product_id", id), zap.Error(err))
		}
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	view := editProductView(product.ID)
	view.Name = product.Name
	view.Price = strconv.FormatFloat(product.Price, 'f', -1, 64)
	view.Availability = product.Availability
	return h.render(c, fiber.StatusOK, "product_form", view)
}

// HandleUpdateProduct submits the edit form and returns to the list.
func (h *Handler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return c.Redirect("/", fiber.StatusSeeOther)
	}

	view := editProductView(uint(id))
	view.Name = c.FormValue("name")
	view.Price = c.FormValue("price")
	availability := c.FormValue("availability")
	view.Availability = availability == "true"

	req, msg := parseProductForm(view.Name, view.Price)
	if msg == "" && availability == "" {
		msg = MsgRequiredFields
	}
	if msg != "" {
		view.Error = msg
		return h.render(c, fiber.StatusUnprocessableEntity, "product_form", view)
	}
	req.Availability = &view.Availability

	if _, err := h.api.UpdateProduct(uint(id), req); err != nil {
		if client.IsNotFound(err) {
			return c.Redirect("/", fiber.StatusSeeOther)
		}
		view.Error = h.saveError(err)
		return h.render(c, fiber.StatusUnprocessableEntity, "product_form", view)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// parseProductForm returns the request for the submitted fields or the
// message to show when they are unusable.
func parseProductForm(name, price string) (client.ProductRequest, string) {
	if name == "" || price == "" {
		return client.ProductRequest{}, MsgRequiredFields
	}
	value, err := strconv.ParseFloat(price, 64)
	if err != nil {
		return client.ProductRequest{}, MsgInvalidData
	}
	return client.ProductRequest{Name: name, Price: value}, ""
}

func (h *Handler) saveError(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && len(apiErr.Issues) > 0 {
		msgs := make([]string, 0, len(apiErr.Issues))
		for _, issue := range apiErr.Issues {
			msgs = append(msgs, issue.Msg)
		}
		return strings.Join(msgs, ". ")
	}
	h.logger.Error("failed to save product", zap.Error(err))
	return MsgSaveFailed
}

func (h *Handler) render(c *fiber.Ctx, status int, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

func formatCurrency(amount float64) string {
	return "$" + strconv.FormatFloat(amount, 'f', 2, 64)
}
