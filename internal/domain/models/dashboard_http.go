package models

// Requests for the dashboard HTTP endpoints.

type ActionRequest struct {
	Action string `param:"action" json:"action" validate:"required,oneof=load refresh predict"`
}
