package generate

import (
	"fmt"
	"strings"
)

// SocialLink is one profile link supplied by the user.
type SocialLink struct {
	ID       string `json:"id"`
	Platform string `json:"platform" binding:"required"`
	URL      string `json:"url" binding:"required"`
}

// Request is the content-generation input.
type Request struct {
	Name          string       `json:"name" binding:"required"`
	Bio           string       `json:"bio" binding:"required"`
	Skills        string       `json:"skills" binding:"required"`
	Projects      string       `json:"projects" binding:"required"`
	TemplateStyle string       `json:"templateStyle,omitempty"`
	ProfileImage  string       `json:"profileImage,omitempty"`
	SocialLinks   []SocialLink `json:"socialLinks,omitempty" binding:"omitempty,dive"`
}

// Validate reports ErrInvalidRequest when a required field is blank.
func (r Request) Validate() error {
	var missing []string
	for _, f := range []struct {
		name, value string
	}{
		{"name", r.Name},
		{"bio", r.Bio},
		{"skills", r.Skills},
		{"projects", r.Projects},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidRequest, strings.Join(missing, ", "))
	}
	return nil
}
