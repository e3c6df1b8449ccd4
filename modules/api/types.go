package api

// ErrorResponse is the error body for every failure response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse confirms an operation with no entity to return.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterBody is the request body for POST /auth/register.
type RegisterBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginBody is the request body for POST /auth/login.
type LoginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshBody is the request body for POST /auth/refresh.
type RefreshBody struct {
	RefreshToken string `json:"refreshToken"`
}

// CreateTagBody is the request body for POST /tags.
type CreateTagBody struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CreateTaskBody is the request body for POST /tasks. DueDate accepts
// RFC 3339 timestamps or plain YYYY-MM-DD dates.
type CreateTaskBody struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    string   `json:"priority"`
	DueDate     string   `json:"dueDate"`
	TagIDs      []string `json:"tagIds"`
}

// UpdateTaskBody is the request body for PUT /tasks. Omitted fields are left
// unchanged; TagIDs, when present, replaces the task's full tag set.
type UpdateTaskBody struct {
	ID          string    `json:"id"`
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Priority    *string   `json:"priority"`
	DueDate     *string   `json:"dueDate"`
	Completed   *bool     `json:"completed"`
	TagIDs      *[]string `json:"tagIds"`
}
