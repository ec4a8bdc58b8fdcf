package ocr

import "fmt"

type ErrBadStatus struct {
	StatusCode int
}

func (e *ErrBadStatus) Error() string {
	return fmt.Sprintf("bad status code from external sever: status code %d", e.StatusCode)
}
