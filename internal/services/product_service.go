package services

import (
	"catalog/internal/models"
	"catalog/internal/repositories"

	"go.uber.org/zap"
)

// Product lifecycle events emitted after successful writes.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
)

// EventPublisher delivers product lifecycle events to an external broker.
type EventPublisher interface {
	PublishProductEvent(event string, product models.Product) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	logger    *zap.Logger
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are emitted.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct stores a new available product built from in.
func (s *ProductService) CreateProduct(in models.ProductInput) (*models.Product, error) {
	product := &models.Product{Availability: true}
	in.Apply(product)
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	s.publish(EventProductCreated, *product)
	return product, nil
}

// UpdateProduct replaces the editable fields of product and persists it.
func (s *ProductService) UpdateProduct(product *models.Product, in models.ProductInput) error {
	in.Apply(product)
	if err := s.repo.Update(product); err != nil {
		return err
	}
	s.publish(EventProductUpdated, *product)
	return nil
}

// ToggleAvailability flips the availability flag of product and persists it.
// Two concurrent toggles may both read the same value; the last write wins.
func (s *ProductService) ToggleAvailability(product *models.Product) error {
	product.Availability = !product.Availability
	if err := s.repo.Update(product); err != nil {
		return err
	}
	s.publish(EventProductUpdated, *product)
	return nil
}

// DeleteProduct deletes a product.
func (s *ProductService) DeleteProduct(product *models.Product) error {
	if err := s.repo.Delete(product.ID); err != nil {
		return err
	}
	s.publish(EventProductDeleted, *product)
	return nil
}

func (s *ProductService) publish(event string, product models.Product) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishProductEvent(event, product); err != nil {
		s.logger.Warn("failed to publish product event",
			zap.String("event", event),
			zap.Uint("product_id", product.ID),
			zap.Error(err),
		)
	}
}
