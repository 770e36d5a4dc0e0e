// seed crea el esquema de MetroMart POS y carga datos de ejemplo
// (departamentos, empleados, clientes, proveedores y productos).
//
// Uso: go run ./cmd/seed
// Idempotente: el esquema usa IF NOT EXISTS y los datos ON CONFLICT DO NOTHING.
package main

import (
	"context"
	_ "embed"

	"github.com/tu-usuario/metromart-pos/internal/infrastructure/postgres"
	"github.com/tu-usuario/metromart-pos/pkg/config"
	"github.com/tu-usuario/metromart-pos/pkg/logger"
)

//go:embed schema.sql
var schemaSQL string

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}
	log.Info().Msg("esquema creado")

	seeds := []string{
		`INSERT INTO departments (dep_name) VALUES
			('Electrónica'), ('Abarrotes'), ('Hogar')
		 ON CONFLICT (dep_name) DO NOTHING`,

		`INSERT INTO employees (emp_name, role, department_id)
		 SELECT v.name, v.role, d.dep_id
		 FROM (VALUES
			('Asha Rao', 'cashier', 'Electrónica'),
			('Luis Pérez', 'cashier', 'Abarrotes'),
			('María Gómez', 'manager', 'Hogar')
		 ) AS v(name, role, dep)
		 JOIN departments d ON d.dep_name = v.dep
		 WHERE NOT EXISTS (SELECT 1 FROM employees e WHERE e.emp_name = v.name)`,

		`INSERT INTO customers (customer_name, email, phone)
		 SELECT * FROM (VALUES
			('Carlos Ruiz', 'carlos@example.com', '555-0101'),
			('Ana Torres', 'ana@example.com', '555-0102')
		 ) AS v(name, email, phone)
		 WHERE NOT EXISTS (SELECT 1 FROM customers c WHERE c.customer_name = v.name)`,

		`INSERT INTO suppliers (supplier_name, contact_name, email, phone)
		 SELECT * FROM (VALUES
			('TechnoDistribuciones', 'Jorge Díaz', 'ventas@technodist.example', '555-0201'),
			('Mayorista Central', 'Lucía Fernández', 'pedidos@mayocentral.example', '555-0202')
		 ) AS v(name, contact, email, phone)
		 WHERE NOT EXISTS (SELECT 1 FROM suppliers s WHERE s.supplier_name = v.name)`,

		`INSERT INTO products (product_code, product_name, price, stock, reorder_level, department_id)
		 SELECT v.code, v.name, v.price::numeric, v.stock, v.reorder, d.dep_id
		 FROM (VALUES
			('PC001', 'Teclado mecánico', '230.00', 25, 5, 'Electrónica'),
			('PC002', 'Mouse inalámbrico', '185.00', 40, 8, 'Electrónica'),
			('PC003', 'Monitor 24"', '1450.00', 10, 2, 'Electrónica'),
			('HG001', 'Juego de sábanas', '320.00', 15, 3, 'Hogar'),
			('AB001', 'Café molido 500g', '95.50', 60, 12, 'Abarrotes')
		 ) AS v(code, name, price, stock, reorder, dep)
		 JOIN departments d ON d.dep_name = v.dep
		 ON CONFLICT (product_code) DO NOTHING`,
	}

	for _, q := range seeds {
		if _, err := pool.Exec(ctx, q); err != nil {
			log.Fatal().Err(err).Msg("cargar datos de ejemplo")
		}
	}
	log.Info().Msg("datos de ejemplo cargados")
}
