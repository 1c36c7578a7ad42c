package domain

// Traveler mirrors the provider's traveler shape. The full payload is passed
// through to the booking call untouched; these types exist so submissions can
// be schema-checked on the fields the provider will reject anyway, and so the
// notification mail can name travelers.
type Traveler struct {
	DateOfBirth string             `json:"dateOfBirth" validate:"required"`
	Name        TravelerName       `json:"name" validate:"required"`
	Gender      string             `json:"gender" validate:"required"`
	Contact     TravelerContact    `json:"contact" validate:"required"`
	Documents   []TravelerDocument `json:"documents" validate:"min=1,dive"`
}

type TravelerName struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
}

type TravelerContact struct {
	EmailAddress string           `json:"emailAddress" validate:"required,email"`
	Phones       []TravelerPhone  `json:"phones" validate:"min=1,dive"`
}

type TravelerPhone struct {
	DeviceType         string `json:"deviceType" validate:"required"`
	CountryCallingCode string `json:"countryCallingCode" validate:"required,numeric"`
	Number             string `json:"number" validate:"required"`
}

type TravelerDocument struct {
	DocumentType     string `json:"documentType" validate:"required"`
	BirthPlace       string `json:"birthPlace" validate:"required,iso3166_1_alpha2"`
	IssuanceLocation string `json:"issuanceLocation" validate:"required,iso3166_1_alpha2"`
	IssuanceDate     string `json:"issuanceDate" validate:"required"`
	Number           string `json:"number" validate:"required"`
	ExpiryDate       string `json:"expiryDate" validate:"required"`
	IssuanceCountry  string `json:"issuanceCountry" validate:"required,iso3166_1_alpha2"`
	ValidityCountry  string `json:"validityCountry" validate:"required,iso3166_1_alpha2"`
	Nationality      string `json:"nationality" validate:"required,iso3166_1_alpha2"`
	Holder           bool   `json:"holder"`
}
