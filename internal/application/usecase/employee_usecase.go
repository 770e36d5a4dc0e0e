package usecase

import (
	"context"
	"fmt"

	"github.com/tu-usuario/metromart-pos/internal/application/dto"
	"github.com/tu-usuario/metromart-pos/internal/domain"
	"github.com/tu-usuario/metromart-pos/internal/domain/entity"
	"github.com/tu-usuario/metromart-pos/internal/domain/repository"
)

// EmployeeUseCase casos de uso de empleados.
type EmployeeUseCase struct {
	repo repository.EmployeeRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

// CreateEmployee registra un empleado.
func (uc *EmployeeUseCase) CreateEmployee(ctx context.Context, in dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	employee := &entity.Employee{
		Name:         in.Name,
		Role:         in.Role,
		DepartmentID: in.DepartmentID,
		Active:       true,
	}
	if err := uc.repo.Create(employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// GetEmployee devuelve un empleado por id.
func (uc *EmployeeUseCase) GetEmployee(ctx context.Context, id int64) (*dto.EmployeeResponse, error) {
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, fmt.Errorf("%w: empleado %d", domain.ErrNotFound, id)
	}
	return toEmployeeResponse(employee), nil
}

// UpdateEmployee actualiza los datos del empleado.
func (uc *EmployeeUseCase) UpdateEmployee(ctx context.Context, id int64, in dto.EmployeeRequest) (*dto.EmployeeResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, fmt.Errorf("%w: empleado %d", domain.ErrNotFound, id)
	}
	employee.Name = in.Name
	employee.Role = in.Role
	employee.DepartmentID = in.DepartmentID
	if err := uc.repo.Update(employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// ListEmployees lista empleados; onlyActive excluye los dados de baja.
func (uc *EmployeeUseCase) ListEmployees(ctx context.Context, onlyActive bool, page dto.PageRequest) ([]dto.EmployeeResponse, error) {
	page.DefaultPage()
	employees, err := uc.repo.List(onlyActive, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, *toEmployeeResponse(e))
	}
	return out, nil
}

// DeactivateEmployee baja lógica: conserva el historial de ventas.
func (uc *EmployeeUseCase) DeactivateEmployee(ctx context.Context, id int64) error {
	employee, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if employee == nil {
		return fmt.Errorf("%w: empleado %d", domain.ErrNotFound, id)
	}
	return uc.repo.Deactivate(id)
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:           e.ID,
		Name:         e.Name,
		Role:         e.Role,
		DepartmentID: e.DepartmentID,
		Active:       e.Active,
	}
}
