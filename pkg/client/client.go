// Package client talks to the product catalog REST API.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"catalog/internal/models"
	"catalog/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const productsPath = "/api/products"

// ProductRequest is the body sent on create and update. Availability is
// omitted on create.
type ProductRequest struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Availability *bool   `json:"availability,omitempty"`
}

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
	Issues     []validation.Issue
}

func (e *APIError) Error() string {
	if len(e.Issues) > 0 {
		msgs := make([]string, 0, len(e.Issues))
		for _, issue := range e.Issues {
			msgs = append(msgs, issue.Msg)
		}
		return fmt.Sprintf("api error %d: %s", e.StatusCode, strings.Join(msgs, "; "))
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == fiber.StatusNotFound
}

type envelope struct {
	Data   json.RawMessage    `json:"data"`
	Error  string             `json:"error"`
	Errors []validation.Issue `json:"errors"`
}

// Client calls the API at baseURL.
type Client struct {
	baseURL string
	timeout time.Duration
}

// New creates a Client. baseURL has no trailing slash, e.g.
// "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: 10 * time.Second,
	}
}

// GetProducts loads the product list.
func (c *Client) GetProducts() ([]models.Product, error) {
	var products []models.Product
	if err := c.do(fiber.Get(c.baseURL+productsPath), &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProductByID loads one product.
func (c *Client) GetProductByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := c.do(fiber.Get(fmt.Sprintf("%s%s/%d", c.baseURL, productsPath, id)), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// AddProduct creates a product.
func (c *Client) AddProduct(req ProductRequest) (*models.Product, error) {
	var product models.Product
	if err := c.do(fiber.Post(c.baseURL+productsPath).JSON(req), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces a product's fields.
func (c *Client) UpdateProduct(id uint, req ProductRequest) (*models.Product, error) {
	var product models.Product
	if err := c.do(fiber.Put(fmt.Sprintf("%s%s/%d", c.baseURL, productsPath, id)).JSON(req), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) do(agent *fiber.Agent, out interface{}) error {
	var env envelope
	code, _, errs := agent.Timeout(c.timeout).Struct(&env)
	if len(errs) > 0 {
		return fmt.Errorf("request failed: %w", errors.Join(errs...))
	}
	if code >= fiber.StatusBadRequest {
		return &APIError{StatusCode: code, Message: env.Error, Issues: env.Errors}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}
