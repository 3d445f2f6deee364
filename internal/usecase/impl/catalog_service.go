package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
)

// catalogService implements the CatalogUsecase interface. It is a thin
// orchestration over the fixed catalog and the pure filter engine.
type catalogService struct {
	catalogRepo repository.CatalogRepository
	qrService   service.QRCodeService
	logger      *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(
	catalogRepo repository.CatalogRepository,
	qrService service.QRCodeService,
	logger *slog.Logger,
) usecase.CatalogUsecase {
	return &catalogService{
		catalogRepo: catalogRepo,
		qrService:   qrService,
		logger:      logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts applies the filter/sort selection to the full catalog.
func (srv *catalogService) ListProducts(ctx context.Context, input *usecase.ListProductsInput) (*usecase.ListProductsOutput, error) {
	criteria := entity.DefaultCriteria()
	if input != nil {
		criteria.Search = input.Search
		if input.Category != "" {
			criteria.Category = input.Category
		}
		criteria.MinPrice = input.MinPrice
		criteria.MaxPrice = input.MaxPrice
		if input.SortBy != "" {
			criteria.SortBy = input.SortBy
		}
	}

	products := criteria.Apply(srv.catalogRepo.All(ctx))
	srv.log(ctx).Debug("Listed products",
		slog.String("search", criteria.Search),
		slog.String("category", criteria.Category),
		slog.Int("matched", len(products)))

	return &usecase.ListProductsOutput{Products: products, Total: len(products)}, nil
}

// GetProduct retrieves a single product by id.
func (srv *catalogService) GetProduct(ctx context.Context, productID string) (*entity.Product, error) {
	product, err := srv.catalogRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not in catalog")
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// Categories returns the category filter options for the catalog.
func (srv *catalogService) Categories(ctx context.Context) ([]string, error) {
	return srv.catalogRepo.Categories(ctx), nil
}

// ShareProductQR renders a QR code for sharing a catalog product.
func (srv *catalogService) ShareProductQR(ctx context.Context, productID string) ([]byte, error) {
	if _, err := srv.GetProduct(ctx, productID); err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateProductQR(productID)
	if err != nil {
		srv.log(ctx).Error("Failed to generate product QR", slog.String("productID", productID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate product QR")
	}

	return png, nil
}
