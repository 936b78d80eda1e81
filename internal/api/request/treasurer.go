package request

type RegisterTreasurerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type UpdateProfileRequest struct {
	FirstName    *string `json:"firstName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	PhoneNumber  *string `json:"phoneNumber,omitempty"`
	ChurchBranch *string `json:"churchBranch,omitempty"`
	Email        *string `json:"email,omitempty"`
}
