package documents

import "strings"

type CreateRequest struct {
	Subject string `form:"subject"`
	Notes   string `form:"notes"`
}

func (r *CreateRequest) Normalize() {
	r.Subject = strings.TrimSpace(r.Subject)
	r.Notes = strings.TrimSpace(r.Notes)
}

func (r *CreateRequest) Validate() map[string]string {
	errors := make(map[string]string)
	if strings.TrimSpace(r.Subject) == "" {
		errors["subject"] = "The subject is required."
	}
	return errors
}
