package validation

import (
	"strings"

	"github.com/mdelacruz/Church-Fund-Manager-Backend/internal/api/request"
)

// ValidateRegisterTreasurer validates a treasurer registration request.
//
// Required fields:
//   - username: non-empty, at most 30 characters
//   - email: non-empty, must contain an "@"
func ValidateRegisterTreasurer(req request.RegisterTreasurerRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.Username) == "" {
		errors["username"] = "username is required"
	} else if len(req.Username) > 30 {
		errors["username"] = "username must be 30 characters or less"
	}

	if strings.TrimSpace(req.Email) == "" {
		errors["email"] = "email is required"
	} else if !strings.Contains(req.Email, "@") {
		errors["email"] = "email must be a valid address"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}

// ValidateUpdateProfile validates a treasurer profile update.
// All fields are optional, but if provided they must meet length limits.
func ValidateUpdateProfile(req request.UpdateProfileRequest) error {
	errors := make(map[string]string)

	if req.Email != nil {
		if strings.TrimSpace(*req.Email) == "" {
			errors["email"] = "email cannot be empty"
		} else if !strings.Contains(*req.Email, "@") {
			errors["email"] = "email must be a valid address"
		}
	}

	if req.FirstName != nil && len(*req.FirstName) > 30 {
		errors["firstName"] = "firstName must be 30 characters or less"
	}
	if req.LastName != nil && len(*req.LastName) > 30 {
		errors["lastName"] = "lastName must be 30 characters or less"
	}
	if req.PhoneNumber != nil && len(*req.PhoneNumber) > 15 {
		errors["phoneNumber"] = "phoneNumber must be 15 characters or less"
	}
	if req.ChurchBranch != nil && len(*req.ChurchBranch) > 100 {
		errors["churchBranch"] = "churchBranch must be 100 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}

	return nil
}
