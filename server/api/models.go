package api

// LoginRequest is the body of a request to create a new login session.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is the body returned after a successful login or token
// refresh.
type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// UserModel is the JSON projection of a user account returned and accepted by
// the user-management endpoints.
type UserModel struct {
	URI            string `json:"uri"`
	ID             string `json:"id,omitempty"`
	Username       string `json:"username,omitempty"`
	Password       string `json:"password,omitempty"`
	Email          string `json:"email,omitempty"`
	Role           string `json:"role,omitempty"`
	Created        string `json:"created,omitempty"`
	Modified       string `json:"modified,omitempty"`
	LastLogoutTime string `json:"last_logout,omitempty"`
	LastLoginTime  string `json:"last_login,omitempty"`
}

// UpdateString is a field in an update request that distinguishes "not
// present" from "present and set to the zero value".
type UpdateString struct {
	Update bool   `json:"u,omitempty"`
	Value  string `json:"v,omitempty"`
}

// UserUpdateRequest carries a partial update to a user entity; only fields
// with Update set to true are applied.
type UserUpdateRequest struct {
	ID       UpdateString `json:"id,omitempty"`
	Username UpdateString `json:"username,omitempty"`
	Password UpdateString `json:"password,omitempty"`
	Email    UpdateString `json:"email,omitempty"`
	Role     UpdateString `json:"role,omitempty"`
}

// SystemModel is the JSON projection of a transition system uploaded by a
// user for checking.
type SystemModel struct {
	URI      string `json:"uri"`
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Source   string `json:"source,omitempty"`
	Created  string `json:"created,omitempty"`
	Modified string `json:"modified,omitempty"`
}

// FormulaModel is the JSON projection of a mu-calculus formula uploaded by a
// user for checking.
type FormulaModel struct {
	URI      string `json:"uri"`
	ID       string `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	Source   string `json:"source,omitempty"`
	Created  string `json:"created,omitempty"`
	Modified string `json:"modified,omitempty"`
}

// CheckRequest is the body of a request to run a model check of a formula
// against a system.
type CheckRequest struct {
	SystemID  string `json:"system_id"`
	FormulaID string `json:"formula_id"`
	Algorithm string `json:"algorithm,omitempty"`
}

// CheckModel is the JSON projection of a completed check's verdict and
// diagnostics.
type CheckModel struct {
	URI        string `json:"uri"`
	ID         string `json:"id,omitempty"`
	SystemID   string `json:"system_id,omitempty"`
	FormulaID  string `json:"formula_id,omitempty"`
	Algorithm  string `json:"algorithm,omitempty"`
	Satisfied  bool   `json:"satisfied"`
	Iterations int    `json:"iterations"`
	Created    string `json:"created,omitempty"`
}

// InfoModel describes the running server and API for unauthenticated
// discovery requests.
type InfoModel struct {
	Version struct {
		Server string `json:"server"`
		Engine string `json:"engine"`
	} `json:"version"`
}
