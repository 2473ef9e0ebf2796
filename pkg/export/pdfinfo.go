package export

import (
	"bytes"
	"fmt"

	pdf "github.com/ledongthuc/pdf"
)

// CountPages reads a PDF and returns its page count.
func CountPages(data []byte) (int, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("read pdf: %w", err)
	}
	return r.NumPage(), nil
}
