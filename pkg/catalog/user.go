package catalog

// User is a user record sourced entirely from the remote record store.
// Users are read-only from this system's perspective.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}
