package validate

// SignUpInput is the sign-up payload. All fields are required.
type SignUpInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
}

func (in *SignUpInput) rules() []rule {
	return []rule{
		{"firstName", in.FirstName != nil, func(e *Errors) { strMin(e, "firstName", *in.FirstName, 3) }},
		{"lastName", in.LastName != nil, func(e *Errors) { strMin(e, "lastName", *in.LastName, 3) }},
		{"email", in.Email != nil, func(e *Errors) { emailOK(e, "email", *in.Email) }},
		{"password", in.Password != nil, func(e *Errors) { strMin(e, "password", *in.Password, 8) }},
	}
}

// Validate enforces the sign-up constraints: name fields at least 3
// characters, a well-formed email and a password of at least 8 characters.
func (in *SignUpInput) Validate() Errors {
	return runCreate(in.rules(), "firstName", "lastName", "email", "password")
}

// SignInInput is the sign-in payload.
type SignInInput struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Validate enforces the sign-in constraints. The password rule mirrors
// sign-up so obviously-too-short inputs are rejected before hitting the
// store.
func (in *SignInInput) Validate() Errors {
	rules := []rule{
		{"email", in.Email != nil, func(e *Errors) { emailOK(e, "email", *in.Email) }},
		{"password", in.Password != nil, func(e *Errors) { strMin(e, "password", *in.Password, 8) }},
	}
	return runCreate(rules, "email", "password")
}
