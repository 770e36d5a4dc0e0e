package usecase

import (
	"context"
	"fmt"

	"github.com/tu-usuario/metromart-pos/internal/application/dto"
	"github.com/tu-usuario/metromart-pos/internal/domain"
	"github.com/tu-usuario/metromart-pos/internal/domain/entity"
	"github.com/tu-usuario/metromart-pos/internal/domain/repository"
)

// SupplierUseCase casos de uso de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// CreateSupplier registra un proveedor.
func (uc *SupplierUseCase) CreateSupplier(ctx context.Context, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	supplier := &entity.Supplier{
		Name:    in.Name,
		Contact: in.Contact,
		Email:   in.Email,
		Phone:   in.Phone,
		Active:  true,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetSupplier devuelve un proveedor por id.
func (uc *SupplierUseCase) GetSupplier(ctx context.Context, id int64) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %d", domain.ErrNotFound, id)
	}
	return toSupplierResponse(supplier), nil
}

// UpdateSupplier actualiza los datos del proveedor.
func (uc *SupplierUseCase) UpdateSupplier(ctx context.Context, id int64, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %d", domain.ErrNotFound, id)
	}
	supplier.Name = in.Name
	supplier.Contact = in.Contact
	supplier.Email = in.Email
	supplier.Phone = in.Phone
	if err := uc.repo.Update(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// ListSuppliers lista proveedores; onlyActive excluye los dados de baja.
func (uc *SupplierUseCase) ListSuppliers(ctx context.Context, onlyActive bool, page dto.PageRequest) ([]dto.SupplierResponse, error) {
	page.DefaultPage()
	suppliers, err := uc.repo.List(onlyActive, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

// DeactivateSupplier baja lógica: conserva las órdenes de compra históricas.
func (uc *SupplierUseCase) DeactivateSupplier(ctx context.Context, id int64) error {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return fmt.Errorf("%w: proveedor %d", domain.ErrNotFound, id)
	}
	return uc.repo.Deactivate(id)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:      s.ID,
		Name:    s.Name,
		Contact: s.Contact,
		Email:   s.Email,
		Phone:   s.Phone,
		Active:  s.Active,
	}
}
