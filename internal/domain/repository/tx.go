package repository

import "context"

// TxRepositories repositorios atados a una misma transacción.
type TxRepositories struct {
	Categories    CategoryRepository
	Products      ProductRepository
	Movements     MovementRepository
	StagedImports StagedImportRepository
	ImportLogs    ImportLogRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD: Commit si fn devuelve nil, Rollback si no.
// Garantiza que las escrituras de un request se confirman juntas o no se confirman.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepositories) error) error
}
