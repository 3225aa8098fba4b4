package fs

import (
	"innkeep/internal/blob/core"
)

func putOpts() core.PutOptions {
	return core.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"reservations": "0"},
	}
}

func presignOpts(method string) core.SignedURLOptions {
	return core.SignedURLOptions{Method: method}
}
