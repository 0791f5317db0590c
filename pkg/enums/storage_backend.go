package enums

import "fmt"

// StorageBackend selects where stores persist their snapshots.
type StorageBackend string

const (
	StorageBackendFile   StorageBackend = "file"
	StorageBackendSQL    StorageBackend = "sql"
	StorageBackendRedis  StorageBackend = "redis"
	StorageBackendMemory StorageBackend = "memory"
)

var validStorageBackends = []StorageBackend{
	StorageBackendFile,
	StorageBackendSQL,
	StorageBackendRedis,
	StorageBackendMemory,
}

// String implements fmt.Stringer.
func (b StorageBackend) String() string {
	return string(b)
}

// IsValid reports whether the value is a known StorageBackend.
func (b StorageBackend) IsValid() bool {
	for _, candidate := range validStorageBackends {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseStorageBackend converts raw input into a StorageBackend.
func ParseStorageBackend(value string) (StorageBackend, error) {
	for _, candidate := range validStorageBackends {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid storage backend %q", value)
}
