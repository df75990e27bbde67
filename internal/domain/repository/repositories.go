package repository

// Repositories conjunto de adaptadores de persistencia fuera de transacción
// más el TxRunner del mismo backend (postgres o sqlite).
type Repositories struct {
	Users         UserRepository
	Categories    CategoryRepository
	Products      ProductRepository
	Movements     MovementRepository
	Sales         SaleRepository
	StagedImports StagedImportRepository
	ImportLogs    ImportLogRepository
	Tx            TxRunner
}
