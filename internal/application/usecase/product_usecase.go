// Package usecase contiene los casos de uso CRUD del catálogo: productos,
// clientes, empleados, departamentos y proveedores.
package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/metromart-pos/internal/application/dto"
	"github.com/tu-usuario/metromart-pos/internal/domain"
	"github.com/tu-usuario/metromart-pos/internal/domain/entity"
	"github.com/tu-usuario/metromart-pos/internal/domain/repository"
)

// ProductUseCase casos de uso del catálogo de productos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// CreateProduct da de alta un producto. El código debe ser único.
func (uc *ProductUseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, fmt.Errorf("%w: código y nombre son requeridos", domain.ErrInvalidInput)
	}
	if in.Price.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: el precio debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if in.Stock < 0 || in.ReorderLevel < 0 {
		return nil, fmt.Errorf("%w: stock y nivel de reorden no pueden ser negativos", domain.ErrInvalidInput)
	}

	product := &entity.Product{
		Code:         in.Code,
		Name:         in.Name,
		Price:        in.Price.Round(2),
		Stock:        in.Stock,
		ReorderLevel: in.ReorderLevel,
		DepartmentID: in.DepartmentID,
		Active:       true,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetProduct devuelve un producto por código.
func (uc *ProductUseCase) GetProduct(ctx context.Context, code string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, code)
	}
	return toProductResponse(product), nil
}

// UpdateProduct actualiza campos del producto. Stock no se toca aquí:
// solo cambia vía ventas, devoluciones y recepciones.
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, code string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, code)
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: el nombre no puede quedar vacío", domain.ErrInvalidInput)
		}
		product.Name = *in.Name
	}
	if in.Price != nil {
		if in.Price.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: el precio debe ser mayor que cero", domain.ErrInvalidInput)
		}
		product.Price = in.Price.Round(2)
	}
	if in.ReorderLevel != nil {
		if *in.ReorderLevel < 0 {
			return nil, fmt.Errorf("%w: el nivel de reorden no puede ser negativo", domain.ErrInvalidInput)
		}
		product.ReorderLevel = *in.ReorderLevel
	}
	if in.DepartmentID != nil {
		product.DepartmentID = in.DepartmentID
	}
	if in.Active != nil {
		product.Active = *in.Active
	}

	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// ListProducts lista productos con búsqueda y orden opcionales.
func (uc *ProductUseCase) ListProducts(ctx context.Context, filter repository.ProductFilter) ([]dto.ProductResponse, error) {
	products, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// DeactivateProduct baja lógica: el producto deja de venderse pero conserva
// su historial en facturas.
func (uc *ProductUseCase) DeactivateProduct(ctx context.Context, code string) error {
	product, err := uc.repo.GetByCode(code)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto %s", domain.ErrNotFound, code)
	}
	return uc.repo.Deactivate(code)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		Code:         p.Code,
		Name:         p.Name,
		Price:        p.Price,
		Stock:        p.Stock,
		ReorderLevel: p.ReorderLevel,
		DepartmentID: p.DepartmentID,
		Active:       p.Active,
		LastUpdated:  p.LastUpdated,
	}
}
