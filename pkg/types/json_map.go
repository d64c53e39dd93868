package types

// JSONMap is a loose string map persisted as jsonb via the GORM json
// serializer. Used for per-line selected option ids.
type JSONMap map[string]string
