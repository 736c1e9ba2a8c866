package entity

// Credit is the account balance as reported by the registrar.
type Credit struct {
	Amount   float64 `yaml:"amount"`
	Currency string  `yaml:"currency"`
}

// PollEvent is one asynchronous registrar notification (transfer state,
// expiration warning, ...). Events stay queued until acknowledged.
type PollEvent struct {
	ID      int    `yaml:"id"`
	Type    string `yaml:"type"`
	Message string `yaml:"message,omitempty"`
	Created string `yaml:"created,omitempty"`
}

// Contact mirrors the registrar contact object. One of ID or RegID
// identifies an existing contact.
type Contact struct {
	ID      string `yaml:"id,omitempty"`
	RegID   string `yaml:"regid,omitempty"`
	Name    string `yaml:"name,omitempty"`
	Surname string `yaml:"surname,omitempty"`
	Org     string `yaml:"org,omitempty"`
	Street  string `yaml:"street,omitempty"`
	City    string `yaml:"city,omitempty"`
	PC      string `yaml:"pc,omitempty"`
	CC      string `yaml:"cc,omitempty"`
	Phone   string `yaml:"phone,omitempty"`
	Email   string `yaml:"email,omitempty"`
}

// User is one sub-account visible to the reseller login.
type User struct {
	ID       string  `yaml:"id,omitempty"`
	Login    string  `yaml:"login"`
	Credit   float64 `yaml:"credit,omitempty"`
	Currency string  `yaml:"currency,omitempty"`
}

// Pricelist is one price table defined on the account.
type Pricelist struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Currency string `yaml:"currency,omitempty"`
	Default  bool   `yaml:"default,omitempty"`
}

// Document is a file uploaded or generated on the account, identification
// papers and registration requests mostly.
type Document struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Type     string `yaml:"type,omitempty"`
	Filetype string `yaml:"filetype,omitempty"`
}
