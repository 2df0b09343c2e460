// Package wizard models the beneficiary application form as an explicit step
// machine over an immutable form state.
package wizard

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"grants-governance/internal/models"
)

var (
	// ErrUnknownField is returned when a patch names a field the form does not have
	ErrUnknownField = errors.New("unknown form field")
	// ErrInvalidValue is returned when a patch value has the wrong type or format
	ErrInvalidValue = errors.New("invalid field value")
	// ErrStepIncomplete is returned when leaving or submitting a step whose required fields are empty
	ErrStepIncomplete = errors.New("current step is incomplete")
	// ErrNoNextStep is returned by Next on the review step
	ErrNoNextStep = errors.New("no step after review")
	// ErrNoPreviousStep is returned by Back on the intro step
	ErrNoPreviousStep = errors.New("no step before intro")
	// ErrUnknownStep is returned for step values outside the wizard
	ErrUnknownStep = errors.New("unknown step")
)

// Step is one screen of the application wizard
type Step int

const (
	StepIntro Step = iota
	StepOrganizationName
	StepEthereumAddress
	StepMissionStatement
	StepProofOfOwnership
	StepProfileImage
	StepHeaderImage
	StepAdditionalImages
	StepImpactReports
	StepSocialMedia
	StepReview
)

var stepNames = map[Step]string{
	StepIntro:            "intro",
	StepOrganizationName: "organization-name",
	StepEthereumAddress:  "ethereum-address",
	StepMissionStatement: "mission-statement",
	StepProofOfOwnership: "proof-of-ownership",
	StepProfileImage:     "profile-image",
	StepHeaderImage:      "header-image",
	StepAdditionalImages: "additional-images",
	StepImpactReports:    "impact-reports",
	StepSocialMedia:      "social-media",
	StepReview:           "review",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

// Valid reports whether s is a known step
func (s Step) Valid() bool {
	_, ok := stepNames[s]
	return ok
}

// transitions is the ordered forward table; Review is terminal (submit).
var transitions = map[Step]Step{
	StepIntro:            StepOrganizationName,
	StepOrganizationName: StepEthereumAddress,
	StepEthereumAddress:  StepMissionStatement,
	StepMissionStatement: StepProofOfOwnership,
	StepProofOfOwnership: StepProfileImage,
	StepProfileImage:     StepHeaderImage,
	StepHeaderImage:      StepAdditionalImages,
	StepAdditionalImages: StepImpactReports,
	StepImpactReports:    StepSocialMedia,
	StepSocialMedia:      StepReview,
}

// requirement is a required field: its display label and the check that it is filled in.
type requirement struct {
	label string
	ok    func(models.ApplicationForm) bool
}

var requirements = map[Step][]requirement{
	StepOrganizationName: {{"Organization name", func(f models.ApplicationForm) bool { return notBlank(f.OrganizationName) }}},
	StepEthereumAddress:  {{"Ethereum address", func(f models.ApplicationForm) bool { return common.IsHexAddress(f.EthereumAddress) }}},
	StepMissionStatement: {{"Mission statement", func(f models.ApplicationForm) bool { return notBlank(f.MissionStatement) }}},
	StepProofOfOwnership: {{"Proof of ownership", func(f models.ApplicationForm) bool { return notBlank(f.ProofOfOwnership) }}},
	StepProfileImage:     {{"Profile image", func(f models.ApplicationForm) bool { return notBlank(f.ProfileImage) }}},
	StepHeaderImage:      {{"Header image", func(f models.ApplicationForm) bool { return notBlank(f.HeaderImage) }}},
	StepSocialMedia:      {{"Social media links", func(f models.ApplicationForm) bool { return validLinks(f.Links) }}},
}

// CanContinue reports whether the "continue" control is offered on step for form.
// On Review it reports whether the application can be submitted.
func CanContinue(step Step, form models.ApplicationForm) bool {
	if step == StepReview {
		return len(MissingFields(form)) == 0
	}
	for _, r := range requirements[step] {
		if !r.ok(form) {
			return false
		}
	}
	return step.Valid()
}

// Next advances one step when the current step's required input is present
func Next(step Step, form models.ApplicationForm) (Step, error) {
	if !step.Valid() {
		return step, fmt.Errorf("%w: %d", ErrUnknownStep, int(step))
	}
	next, ok := transitions[step]
	if !ok {
		return step, ErrNoNextStep
	}
	if !CanContinue(step, form) {
		return step, fmt.Errorf("%w: %s", ErrStepIncomplete, step)
	}
	return next, nil
}

// Back moves one step backwards without validation
func Back(step Step) (Step, error) {
	if !step.Valid() {
		return step, fmt.Errorf("%w: %d", ErrUnknownStep, int(step))
	}
	for from, to := range transitions {
		if to == step {
			return from, nil
		}
	}
	return step, ErrNoPreviousStep
}

// Steps returns every step in wizard order
func Steps() []Step {
	steps := []Step{StepIntro}
	for s := StepIntro; ; {
		next, ok := transitions[s]
		if !ok {
			return steps
		}
		steps = append(steps, next)
		s = next
	}
}

// MissingFields lists the labels of unmet required fields in step order
func MissingFields(form models.ApplicationForm) []string {
	var missing []string
	for _, step := range Steps() {
		for _, r := range requirements[step] {
			if !r.ok(form) {
				missing = append(missing, r.label)
			}
		}
	}
	return missing
}

// ToApplication builds the metadata document submitted for the nomination
func ToApplication(form models.ApplicationForm) models.BeneficiaryApplication {
	form = clone(form)
	return models.BeneficiaryApplication{
		OrganizationName:   strings.TrimSpace(form.OrganizationName),
		MissionStatement:   strings.TrimSpace(form.MissionStatement),
		BeneficiaryAddress: common.HexToAddress(form.EthereumAddress).Hex(),
		ProofOfOwnership:   form.ProofOfOwnership,
		ProfileImage:       form.ProfileImage,
		HeaderImage:        form.HeaderImage,
		AdditionalImages:   form.AdditionalImages,
		ImpactReports:      form.ImpactReports,
		Links:              form.Links,
	}
}

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// validLinks accepts empty links; filled ones must be absolute http(s) URLs.
func validLinks(l models.SocialLinks) bool {
	for _, link := range []string{l.Website, l.Twitter, l.Facebook, l.Instagram, l.Github, l.LinkedIn} {
		if link == "" {
			continue
		}
		u, err := url.Parse(link)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return false
		}
	}
	return true
}
