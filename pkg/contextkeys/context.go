package contextkeys

type contextKey string

// Keys shared by middleware and handlers. Gin stores them with c.Set.
const (
	IdentityKey  = "identity"
	RequestIDKey = "request_id"
)

// IdentityContextKey stores auth.Identity in a context.Context for code outside gin.
const IdentityContextKey = contextKey("identity")
