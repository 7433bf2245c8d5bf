package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"campusreport/internal/domain"
	"campusreport/internal/identity"
	"campusreport/pkg/domainerrors"
)

// userResponse is the wire shape of a user. The password digest never leaves
// the process.
type userResponse struct {
	ID        string         `json:"id"`
	Email     string         `json:"email"`
	Role      identity.Role  `json:"role"`
	Name      string         `json:"name,omitempty"`
	StudentID string         `json:"studentId,omitempty"`
	College   domain.College `json:"college,omitempty"`
}

func toUserResponse(u identity.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      u.Role,
		Name:      u.Name,
		StudentID: u.StudentID,
		College:   u.College,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError centralizes domain error translation so every handler produces
// the same JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	code := domainerrors.CodeInternal
	message := "internal error"

	var de *domainerrors.Error
	if errors.As(err, &de) {
		code = de.Code
		message = de.Message
	}

	writeJSON(w, domainerrors.ToHTTPStatus(code), map[string]string{
		"error":   string(code),
		"message": message,
	})
}
