package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не существует
	// или принадлежит другому участнику. Несовпадение владельца не
	// различимо снаружи: существование чужих бронирований не раскрывается.
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = errors.New("cancel_booking: booking is already cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
