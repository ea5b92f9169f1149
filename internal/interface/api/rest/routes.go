package rest

const (
	RouteUsers = "/users"
	RouteUser  = RouteUsers + "/:user_id"

	// static photos
	RouteUploads = "/uploads"
	RouteUpload  = RouteUploads + "/:name"

	// ops
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"
)
