package usecase

import (
	"context"
	"fmt"

	"github.com/tu-usuario/metromart-pos/internal/application/dto"
	"github.com/tu-usuario/metromart-pos/internal/domain"
	"github.com/tu-usuario/metromart-pos/internal/domain/entity"
	"github.com/tu-usuario/metromart-pos/internal/domain/repository"
)

// CustomerUseCase casos de uso de clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// CreateCustomer registra un cliente.
func (uc *CustomerUseCase) CreateCustomer(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	customer := &entity.Customer{Name: in.Name, Email: in.Email, Phone: in.Phone}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetCustomer devuelve un cliente por id.
func (uc *CustomerUseCase) GetCustomer(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %d", domain.ErrNotFound, id)
	}
	return toCustomerResponse(customer), nil
}

// UpdateCustomer actualiza los datos del cliente.
func (uc *CustomerUseCase) UpdateCustomer(ctx context.Context, id int64, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %d", domain.ErrNotFound, id)
	}
	customer.Name = in.Name
	customer.Email = in.Email
	customer.Phone = in.Phone
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// ListCustomers lista clientes con búsqueda opcional por nombre.
func (uc *CustomerUseCase) ListCustomers(ctx context.Context, search string, page dto.PageRequest) ([]dto.CustomerResponse, error) {
	page.DefaultPage()
	customers, err := uc.repo.List(search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

// DeleteCustomer elimina un cliente. Las facturas existentes conservan la
// referencia como NULL y se muestran como venta de mostrador.
func (uc *CustomerUseCase) DeleteCustomer(ctx context.Context, id int64) error {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return fmt.Errorf("%w: cliente %d", domain.ErrNotFound, id)
	}
	return uc.repo.Delete(id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone}
}
