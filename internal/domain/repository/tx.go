package repository

import "context"

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Productos   ProductoRepository
	Movimientos MovimientoRepository
	Ventas      VentaRepository
	Compras     CompraRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn retorna nil, Rollback en otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
