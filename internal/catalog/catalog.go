// Package catalog reads products from the remote store API: filtered,
// ordered listings and single-product lookups by slug.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/BlurryShady/gear-store-frontend/internal/domain"
	apperrors "github.com/BlurryShady/gear-store-frontend/internal/errors"
	"github.com/BlurryShady/gear-store-frontend/internal/validator"
)

// Gateway is the slice of the API client the catalog needs.
type Gateway interface {
	Get(ctx context.Context, path string) (json.RawMessage, error)
}

// Query filters and orders a product listing. Ordering accepts the API's
// ordering keys; Category is an opaque category identifier.
type Query struct {
	Category string `validate:"omitempty"`
	Ordering string `validate:"omitempty,oneof=price -price -created_at"`
}

// Service implements catalog reads over the API gateway.
type Service struct {
	gw     Gateway
	logger *slog.Logger
}

// NewService creates a catalog service. It fails when wired without a
// gateway.
func NewService(gw Gateway, logger *slog.Logger) (*Service, error) {
	if gw == nil {
		return nil, apperrors.Configuration("catalog requires an API gateway")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{gw: gw, logger: logger}, nil
}

// List fetches products matching the query. The API may answer with a
// bare product array or a {results: [...]} envelope; both are accepted.
func (s *Service) List(ctx context.Context, q Query) ([]domain.Product, error) {
	if err := validator.Validate(q); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	path := "/products/"
	params := url.Values{}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Ordering != "" {
		params.Set("ordering", q.Ordering)
	}
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	raw, err := s.gw.Get(ctx, path)
	if err != nil {
		return nil, err
	}

	products, err := decodeProducts(raw)
	if err != nil {
		return nil, err
	}

	s.logger.DebugContext(ctx, "product listing fetched",
		slog.Int("count", len(products)),
		slog.String("category", q.Category),
		slog.String("ordering", q.Ordering),
	)
	return products, nil
}

// Get fetches a single product by its URL slug.
func (s *Service) Get(ctx context.Context, slug string) (*domain.Product, error) {
	if strings.TrimSpace(slug) == "" {
		return nil, apperrors.Validation("product slug is required")
	}

	raw, err := s.gw.Get(ctx, "/products/"+url.PathEscape(slug)+"/")
	if err != nil {
		return nil, err
	}

	var product domain.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, fmt.Errorf("decode product %s: %w", slug, err)
	}
	return &product, nil
}

// OrderingForSort maps the UI sort keys to API ordering values. Unknown
// keys (including "featured") map to no ordering.
func OrderingForSort(sort string) string {
	switch sort {
	case "price_asc":
		return "price"
	case "price_desc":
		return "-price"
	case "newest":
		return "-created_at"
	default:
		return ""
	}
}

func decodeProducts(raw json.RawMessage) ([]domain.Product, error) {
	// A present "results" key wins even when null; null means an empty
	// listing, not a malformed one.
	var envelope struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Results != nil {
		var products []domain.Product
		if err := json.Unmarshal(envelope.Results, &products); err != nil {
			return nil, fmt.Errorf("decode product listing: %w", err)
		}
		if products == nil {
			products = []domain.Product{}
		}
		return products, nil
	}

	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("decode product listing: %w", err)
	}
	return products, nil
}
