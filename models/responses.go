package models

// ErrorResponse is the JSON body returned for every failed request.
// The message text is selected from the error dictionary in the caller's
// requested language.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is the JSON body returned for successful mutations with
// no natural payload (delete, status update). Returning an explicit
// confirmation instead of an empty body is a deliberate API convention.
type StatusResponse struct {
	Message string `json:"message"`
}

// AuthResponse is returned by register and login: the public account
// document alongside a freshly signed token.
type AuthResponse struct {
	User  Document `json:"user"`
	Token string   `json:"token"`
}
