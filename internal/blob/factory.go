package blob

import (
	"context"
	"fmt"
	"os"
)

// Open selects a blob.Store implementation. The driver and filesystem root
// arguments (typically from the [blob] config section) take precedence;
// empty values fall back to environment variables, then defaults.
//
//	INNKEEP_BLOB_DRIVER: fs|s3|memory (default fs)
//	INNKEEP_BLOB_FS_ROOT: directory root when driver=fs (default ./ledger-archive)
//	(S3 specific variables documented in s3.go)
func Open(ctx context.Context, driver, fsRoot string) (Store, error) {
	if driver == "" {
		driver = os.Getenv("INNKEEP_BLOB_DRIVER")
	}
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		if fsRoot == "" {
			fsRoot = os.Getenv("INNKEEP_BLOB_FS_ROOT")
		}
		return NewFilesystem(fsRoot)
	case DriverS3:
		return OpenS3FromEnv(ctx)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}
