package usecase

import (
	"context"
	"fmt"

	"github.com/tu-usuario/metromart-pos/internal/application/dto"
	"github.com/tu-usuario/metromart-pos/internal/domain"
	"github.com/tu-usuario/metromart-pos/internal/domain/entity"
	"github.com/tu-usuario/metromart-pos/internal/domain/repository"
)

// DepartmentUseCase casos de uso de departamentos.
type DepartmentUseCase struct {
	repo repository.DepartmentRepository
}

// NewDepartmentUseCase construye el caso de uso.
func NewDepartmentUseCase(repo repository.DepartmentRepository) *DepartmentUseCase {
	return &DepartmentUseCase{repo: repo}
}

// CreateDepartment registra un departamento.
func (uc *DepartmentUseCase) CreateDepartment(ctx context.Context, in dto.DepartmentRequest) (*dto.DepartmentResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	department := &entity.Department{Name: in.Name}
	if err := uc.repo.Create(department); err != nil {
		return nil, err
	}
	return &dto.DepartmentResponse{ID: department.ID, Name: department.Name}, nil
}

// GetDepartment devuelve un departamento por id.
func (uc *DepartmentUseCase) GetDepartment(ctx context.Context, id int64) (*dto.DepartmentResponse, error) {
	department, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, fmt.Errorf("%w: departamento %d", domain.ErrNotFound, id)
	}
	return &dto.DepartmentResponse{ID: department.ID, Name: department.Name}, nil
}

// UpdateDepartment renombra un departamento.
func (uc *DepartmentUseCase) UpdateDepartment(ctx context.Context, id int64, in dto.DepartmentRequest) (*dto.DepartmentResponse, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	department, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, fmt.Errorf("%w: departamento %d", domain.ErrNotFound, id)
	}
	department.Name = in.Name
	if err := uc.repo.Update(department); err != nil {
		return nil, err
	}
	return &dto.DepartmentResponse{ID: department.ID, Name: department.Name}, nil
}

// ListDepartments lista todos los departamentos.
func (uc *DepartmentUseCase) ListDepartments(ctx context.Context) ([]dto.DepartmentResponse, error) {
	departments, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.DepartmentResponse, 0, len(departments))
	for _, d := range departments {
		out = append(out, dto.DepartmentResponse{ID: d.ID, Name: d.Name})
	}
	return out, nil
}

// DeleteDepartment elimina un departamento; productos y empleados quedan
// con la referencia en NULL.
func (uc *DepartmentUseCase) DeleteDepartment(ctx context.Context, id int64) error {
	department, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if department == nil {
		return fmt.Errorf("%w: departamento %d", domain.ErrNotFound, id)
	}
	return uc.repo.Delete(id)
}
