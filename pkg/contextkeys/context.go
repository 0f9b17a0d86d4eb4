package contextkeys

type contextKey string

// DBContextKey holds the request-scoped *gorm.DB.
const DBContextKey = contextKey("db")

// UserIDKey is the gin context key under which auth middleware stores the caller id (uint).
const UserIDKey = "userID"
