package entity

import "time"

// Customer representa un cliente registrado. Las ventas sin cliente se
// muestran como "Walk-in Customer" en las vistas.
type Customer struct {
	ID        int64
	Name      string
	Email     string
	Phone     string
	CreatedAt time.Time
}
