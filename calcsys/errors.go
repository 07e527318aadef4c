package calcsys

import (
	"fmt"

	"bincalc.org/bincalc"
)

type ErrCalcNotFound struct {
	ID bincalc.CID
}

func (e ErrCalcNotFound) Error() string {
	return fmt.Sprintf("calculation %v not found", e.ID)
}
