package models

// Route names understood by the presentation layer.
const (
	RouteHome      = "home"
	RouteSearch    = "search"
	RouteProvider  = "provider"
	RouteDashboard = "dashboard"
	RouteEnquiry   = "enquiry"
	RouteBooking   = "booking"
	RouteLogin     = "login"
	RouteRegister  = "register"
	RoutePricing   = "pricing"
)

// Frame is a (route, params) pair.
type Frame struct {
	Route  string            `json:"route" validate:"required"`
	Params map[string]string `json:"params,omitempty"`
}

// Clone returns a copy of f that does not share its params map.
func (f Frame) Clone() Frame {
	out := Frame{Route: f.Route}
	if f.Params != nil {
		out.Params = make(map[string]string, len(f.Params))
		for k, v := range f.Params {
			out.Params[k] = v
		}
	}
	return out
}
