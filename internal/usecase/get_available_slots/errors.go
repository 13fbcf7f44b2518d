package get_available_slots

import "errors"

var (
	// ErrMenuNotFound возвращается, когда услуга не найдена или неактивна.
	// Единственная жёсткая ошибка расчёта доступности: все прочие случаи
	// «нет доступности» дают пустой результат, не ошибку.
	ErrMenuNotFound = errors.New("get_available_slots: service menu not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
