package models

// SocialLinks are the optional web presence links of a beneficiary
type SocialLinks struct {
	Website   string `json:"website,omitempty"`
	Twitter   string `json:"twitterUrl,omitempty"`
	Facebook  string `json:"facebookUrl,omitempty"`
	Instagram string `json:"instagramUrl,omitempty"`
	Github    string `json:"githubUrl,omitempty"`
	LinkedIn  string `json:"linkedinUrl,omitempty"`
}

// BeneficiaryApplication is the off-chain metadata document stored on IPFS
type BeneficiaryApplication struct {
	OrganizationName   string      `json:"organizationName"`
	MissionStatement   string      `json:"missionStatement"`
	BeneficiaryAddress string      `json:"beneficiaryAddress"`
	ProofOfOwnership   string      `json:"proofOfOwnership,omitempty"`
	ProfileImage       string      `json:"profileImage"`
	HeaderImage        string      `json:"headerImage"`
	AdditionalImages   []string    `json:"additionalImages"`
	ImpactReports      []string    `json:"impactReports"`
	Links              SocialLinks `json:"links"`
}

// ApplicationForm is the shared state of the beneficiary application wizard
type ApplicationForm struct {
	OrganizationName string      `json:"organizationName"`
	EthereumAddress  string      `json:"ethereumAddress"`
	MissionStatement string      `json:"missionStatement"`
	ProofOfOwnership string      `json:"proofOfOwnership"`
	ProfileImage     string      `json:"profileImage"`
	HeaderImage      string      `json:"headerImage"`
	AdditionalImages []string    `json:"additionalImages"`
	ImpactReports    []string    `json:"impactReports"`
	Links            SocialLinks `json:"links"`
}
