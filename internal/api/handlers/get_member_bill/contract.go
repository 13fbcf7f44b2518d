package get_member_bill

import (
	"context"

	calculateBill "github.com/m04kA/GMS-BookingService/internal/usecase/calculate_bill"
)

type CalculateBillUseCase interface {
	Execute(ctx context.Context, req *calculateBill.Request) (*calculateBill.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
