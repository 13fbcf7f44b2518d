package create_booking

import "errors"

var (
	// ErrMemberNotFound возвращается, когда участник не найден или неактивен
	ErrMemberNotFound = errors.New("create_booking: member not found")

	// ErrStaffNotFound возвращается, когда сотрудник не найден или неактивен
	ErrStaffNotFound = errors.New("create_booking: staff not found")

	// ErrMenuNotFound возвращается, когда услуга не найдена или неактивна
	ErrMenuNotFound = errors.New("create_booking: service menu not found")

	// ErrHorizonExceeded возвращается, когда дата выходит за горизонт
	// бронирования плана участника
	ErrHorizonExceeded = errors.New("create_booking: date is beyond the plan booking horizon")

	// ErrTooLateToBook возвращается при попытке забронировать слот
	// менее чем за 24 часа до начала
	ErrTooLateToBook = errors.New("create_booking: less than 24 hours before start")

	// ErrStaffUnavailable возвращается, когда слот не попадает
	// в эффективную смену сотрудника (выходной, нет смены, вне часов)
	ErrStaffUnavailable = errors.New("create_booking: staff is not on shift for this slot")

	// ErrSlotConflict возвращается, когда слот пересекается с существующим
	// бронированием сотрудника, при проверке или при конкурентной вставке
	ErrSlotConflict = errors.New("create_booking: slot conflicts with an existing booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
