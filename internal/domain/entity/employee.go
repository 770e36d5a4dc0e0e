package entity

import "time"

// Employee representa un empleado (vendedor o responsable de devoluciones).
type Employee struct {
	ID           int64
	Name         string
	Role         string
	DepartmentID *int64
	Active       bool
	HiredAt      time.Time
}

// Department agrupa productos y empleados.
type Department struct {
	ID   int64
	Name string
}
