package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Products ──────────────────────────────────────────────────────────────────

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Code         string          `json:"product_code"`
	Name         string          `json:"product_name"`
	Price        decimal.Decimal `json:"price"`
	Stock        int64           `json:"stock"`
	ReorderLevel int64           `json:"reorder_level"`
	DepartmentID *int64          `json:"department_id,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:code.
// Stock no se actualiza aquí: solo vía ventas, devoluciones y recepciones.
type UpdateProductRequest struct {
	Name         *string          `json:"product_name,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	ReorderLevel *int64           `json:"reorder_level,omitempty"`
	DepartmentID *int64           `json:"department_id,omitempty"`
	Active       *bool            `json:"is_active,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	Code         string          `json:"product_code"`
	Name         string          `json:"product_name"`
	Price        decimal.Decimal `json:"price"`
	Stock        int64           `json:"stock"`
	ReorderLevel int64           `json:"reorder_level"`
	DepartmentID *int64          `json:"department_id,omitempty"`
	Active       bool            `json:"is_active"`
	LastUpdated  time.Time       `json:"last_updated"`
}

// ── Customers ─────────────────────────────────────────────────────────────────

// CustomerRequest body para crear/actualizar clientes.
type CustomerRequest struct {
	Name  string `json:"customer_name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID    int64  `json:"customer_id"`
	Name  string `json:"customer_name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ── Employees ─────────────────────────────────────────────────────────────────

// EmployeeRequest body para crear/actualizar empleados.
type EmployeeRequest struct {
	Name         string `json:"emp_name"`
	Role         string `json:"role,omitempty"`
	DepartmentID *int64 `json:"department_id,omitempty"`
}

// EmployeeResponse empleado en respuestas.
type EmployeeResponse struct {
	ID           int64  `json:"emp_id"`
	Name         string `json:"emp_name"`
	Role         string `json:"role,omitempty"`
	DepartmentID *int64 `json:"department_id,omitempty"`
	Active       bool   `json:"is_active"`
}

// ── Departments ───────────────────────────────────────────────────────────────

// DepartmentRequest body para crear/actualizar departamentos.
type DepartmentRequest struct {
	Name string `json:"dep_name"`
}

// DepartmentResponse departamento en respuestas.
type DepartmentResponse struct {
	ID   int64  `json:"dep_id"`
	Name string `json:"dep_name"`
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

// SupplierRequest body para crear/actualizar proveedores.
type SupplierRequest struct {
	Name    string `json:"supplier_name"`
	Contact string `json:"contact_name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// SupplierResponse proveedor en respuestas.
type SupplierResponse struct {
	ID      int64  `json:"supplier_id"`
	Name    string `json:"supplier_name"`
	Contact string `json:"contact_name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Active  bool   `json:"is_active"`
}
