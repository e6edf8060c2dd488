package logger

import "time"

// Common field constructors for structured logging

// String creates a string field
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Int64 creates an int64 field
func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a bool field
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Err creates an error field
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Duration creates a duration field in milliseconds
func Duration(key string, d time.Duration) Field {
	return Field{Key: key, Value: d.Milliseconds()}
}

// Any creates a field with any value
func Any(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// --- Domain-specific field helpers ---

// ActorID creates an actor_id field
func ActorID(id int64) Field {
	return Field{Key: "actor_id", Value: id}
}

// ContentID creates a content_id field
func ContentID(id int64) Field {
	return Field{Key: "content_id", Value: id}
}

// ContentUUID creates a content_uuid field
func ContentUUID(id string) Field {
	return Field{Key: "content_uuid", Value: id}
}

// ContentType creates a content_type field
func ContentType(t string) Field {
	return Field{Key: "content_type", Value: t}
}

// Page creates a page field
func Page(page int) Field {
	return Field{Key: "page", Value: page}
}

// Limit creates a limit field
func Limit(limit int) Field {
	return Field{Key: "limit", Value: limit}
}

// Count creates a count field
func Count(count int) Field {
	return Field{Key: "count", Value: count}
}

// BatchSize creates a batch_size field
func BatchSize(size int) Field {
	return Field{Key: "batch_size", Value: size}
}

// CreatedCount creates a created_count field
func CreatedCount(count int) Field {
	return Field{Key: "created_count", Value: count}
}

// FailedCount creates a failed_count field
func FailedCount(count int) Field {
	return Field{Key: "failed_count", Value: count}
}

// Status creates a status field
func Status(status int) Field {
	return Field{Key: "status", Value: status}
}

// Method creates an HTTP method field
func Method(method string) Field {
	return Field{Key: "method", Value: method}
}

// Path creates an HTTP path field
func Path(path string) Field {
	return Field{Key: "path", Value: path}
}

// RemoteIP creates a remote_ip field
func RemoteIP(ip string) Field {
	return Field{Key: "remote_ip", Value: ip}
}

// Operation creates an operation field
func Operation(op string) Field {
	return Field{Key: "operation", Value: op}
}
