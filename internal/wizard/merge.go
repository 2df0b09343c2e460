package wizard

import (
	"fmt"
	"sort"

	"grants-governance/internal/models"
)

// Merge returns a copy of form with one field replaced. form itself is never modified.
func Merge(form models.ApplicationForm, field string, value interface{}) (models.ApplicationForm, error) {
	next := clone(form)

	var err error
	switch field {
	case "organizationName":
		next.OrganizationName, err = asString(field, value)
	case "ethereumAddress":
		next.EthereumAddress, err = asString(field, value)
	case "missionStatement":
		next.MissionStatement, err = asString(field, value)
	case "proofOfOwnership":
		next.ProofOfOwnership, err = asString(field, value)
	case "profileImage":
		next.ProfileImage, err = asString(field, value)
	case "headerImage":
		next.HeaderImage, err = asString(field, value)
	case "additionalImages":
		next.AdditionalImages, err = asStrings(field, value)
	case "impactReports":
		next.ImpactReports, err = asStrings(field, value)
	case "links.website":
		next.Links.Website, err = asString(field, value)
	case "links.twitterUrl":
		next.Links.Twitter, err = asString(field, value)
	case "links.facebookUrl":
		next.Links.Facebook, err = asString(field, value)
	case "links.instagramUrl":
		next.Links.Instagram, err = asString(field, value)
	case "links.githubUrl":
		next.Links.Github, err = asString(field, value)
	case "links.linkedinUrl":
		next.Links.LinkedIn, err = asString(field, value)
	default:
		return form, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if err != nil {
		return form, err
	}
	return next, nil
}

// MergePatch applies every field of patch, all or nothing, in key order
func MergePatch(form models.ApplicationForm, patch map[string]interface{}) (models.ApplicationForm, error) {
	keys := make([]string, 0, len(patch))
	for k := range patch {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	next := form
	for _, k := range keys {
		var err error
		if next, err = Merge(next, k, patch[k]); err != nil {
			return form, err
		}
	}
	return next, nil
}

func clone(form models.ApplicationForm) models.ApplicationForm {
	form.AdditionalImages = copyStrings(form.AdditionalImages)
	form.ImpactReports = copyStrings(form.ImpactReports)
	return form
}

func copyStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func asString(field string, value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrInvalidValue, field, value)
	}
}

func asStrings(field string, value interface{}) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return copyStrings(v), nil
	case []interface{}:
		out := make([]string, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d] must be a string, got %T", ErrInvalidValue, field, i, item)
			}
			out[i] = s
		}
		return out, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %s must be a list of strings, got %T", ErrInvalidValue, field, value)
	}
}
