package calculate_bill

import "errors"

var (
	// ErrMemberNotFound возвращается, когда участник не найден или неактивен
	ErrMemberNotFound = errors.New("calculate_bill: member not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("calculate_bill: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("calculate_bill: internal error")
)
