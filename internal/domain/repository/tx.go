package repository

import "gorm.io/gorm"

// TxManager управляет границей транзакции начисления и пересчёта.
// fn получает открытую транзакцию и передает её tx-методам репозиториев;
// возврат ошибки откатывает транзакцию, nil - коммитит.
type TxManager interface {
	WithinTransaction(fn func(tx *gorm.DB) error) error
}
