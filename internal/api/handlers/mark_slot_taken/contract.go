package mark_slot_taken

import "context"

type BookingService interface {
	MarkSlotTaken(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
