package dto

// RequestMeta carries caller details recorded in audit logs.
type RequestMeta struct {
	ActorEmail string
	IP         string
	UserAgent  string
}
