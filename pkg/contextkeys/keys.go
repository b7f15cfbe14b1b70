package contextkeys

type contextKey string

const (
	ActorKey     contextKey = "Actor"
	RequestIDKey contextKey = "RequestID"
)

// LoggerKey is the echo.Context key under which the request-scoped logger lives.
const LoggerKey = "logger"
