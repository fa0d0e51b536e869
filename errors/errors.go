package errors

import "fmt"

var (
	ErrLockPoison  = fmt.Errorf("cannot lock: registry poisoned")
	ErrWorkerPanic = fmt.Errorf("worker panic")
)
