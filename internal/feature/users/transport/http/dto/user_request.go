// Package dto defines data transfer objects for the users HTTP API.
package dto

// CreateUserReq represents the request body for POST /users.
type CreateUserReq struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// UpdateUserReq represents the request body for PUT /users/:id.
// Absent fields are left unchanged.
type UpdateUserReq struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
