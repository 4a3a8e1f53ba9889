package device

// UnknownModel is reported when a listing line carries no model token.
const UnknownModel = "Unknown"

// Record is one attached device as seen in a single discovery scan.
type Record struct {
	Serial   string `json:"serial"`
	Model    string `json:"model"`
	State    string `json:"state,omitempty"`
	Product  string `json:"product,omitempty"`
	Codename string `json:"codename,omitempty"`
	Family   bool   `json:"family"`
}
