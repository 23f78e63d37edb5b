package service

import "errors"

// Определяем кастомные ошибки для сервисов
var (
	// ErrDuplicateAssignment - участнику уже выдан набор вопросов в этом
	// соревновании. Восстановимо: вызывающий читает существующий набор.
	ErrDuplicateAssignment = errors.New("participant already has an assigned question set")

	// ErrInsufficientPool - в пуле меньше вопросов, чем требует конфигурация
	// соревнования. Ошибка конфигурации, не ретраится автоматически.
	ErrInsufficientPool = errors.New("question pool is smaller than the configured question count")

	// ErrPropagationFailed - запись о попытке сохранена, но транзакция
	// начисления очков не завершилась. Восстановимо идемпотентным повтором
	// только шага начисления (RetryPropagation).
	ErrPropagationFailed = errors.New("score propagation failed, submission attempt is recorded")

	// ErrNotTeamMember - пользователь не состоит ни в одной команде соревнования.
	ErrNotTeamMember = errors.New("user is not a member of any team in this competition")
)
